package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://example.org/page"))
	assert.True(t, ValidURL("http://a.io"))
	assert.False(t, ValidURL("ftp://example.org"))
	assert.False(t, ValidURL("https://x"))
	assert.False(t, ValidURL("example.org"))
	assert.False(t, ValidURL(""))
}

func TestValidSlug(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		assert.True(t, ValidSlug("test1234"))
		assert.True(t, ValidSlug("abcd"))
		assert.True(t, ValidSlug("ABCDEFGHIJKLMNOP")) // 16 chars
		assert.True(t, ValidSlug("v1.2"))             // digit after dot is fine
		assert.True(t, ValidSlug("短链测试"))             // CJK counts per rune
	})

	t.Run("Rejected", func(t *testing.T) {
		assert.False(t, ValidSlug("abc"))                // too short
		assert.False(t, ValidSlug("ABCDEFGHIJKLMNOPQ"))  // too long
		assert.False(t, ValidSlug(".abcd"))              // leading dot
		assert.False(t, ValidSlug("abcd."))              // trailing dot
		assert.False(t, ValidSlug("file.txt"))           // extension-shaped tail
		assert.False(t, ValidSlug("a.b.css"))            // extension anywhere after a dot
		assert.False(t, ValidSlug("-abcdef"))            // sentinel is machine-only
		assert.False(t, ValidSlug("ab cd"))
		assert.False(t, ValidSlug("ab/cd"))
	})
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("secret"))
	assert.True(t, ValidPassword(`Aa1~!@#$%^&*()[]{}-+_=."'?/`))
	assert.False(t, ValidPassword("short"))                           // 5 chars
	assert.False(t, ValidPassword("thirtythreecharacterslongpassword")) // 33 chars
	assert.False(t, ValidPassword("has space"))
	assert.False(t, ValidPassword(""))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("info@example.com"))
	assert.True(t, ValidEmail("a.b-c@mail.example.org"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail(""))
}
