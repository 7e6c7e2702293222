package utils

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePrefixedSlug(t *testing.T) {
	t.Run("Length and sentinel", func(t *testing.T) {
		slug := GeneratePrefixedSlug(6)
		assert.Len(t, slug, 6)
		assert.Equal(t, byte(SlugSentinel), slug[0])
	})

	t.Run("Body drawn from alphanumeric charset", func(t *testing.T) {
		slug := GeneratePrefixedSlug(16)
		for _, r := range slug[1:] {
			assert.True(t, strings.ContainsRune(slugCharset, r), "unexpected character %q", r)
		}
	})

	t.Run("Minimum length clamp", func(t *testing.T) {
		slug := GeneratePrefixedSlug(0)
		assert.Len(t, slug, 2)
		assert.Equal(t, byte(SlugSentinel), slug[0])
	})

	t.Run("Concurrent generation", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					slug := GeneratePrefixedSlug(8)
					assert.Len(t, slug, 8)
				}
			}()
		}
		wg.Wait()
	})
}
