package utils

import (
	"math/rand"
)

const slugCharset = "1234567890abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SlugSentinel is the fixed first character of every machine-generated slug.
// The custom-slug grammar never allows it, so the generated namespace cannot
// collide with user-chosen slugs.
const SlugSentinel = '-'

// GeneratePrefixedSlug returns a random slug of the given total length,
// sentinel included. Safe for concurrent use: the top-level rand functions
// share a locked source.
func GeneratePrefixedSlug(length int) string {
	if length < 2 {
		length = 2
	}
	b := make([]byte, length)
	b[0] = SlugSentinel
	for i := 1; i < length; i++ {
		b[i] = slugCharset[rand.Intn(len(slugCharset))]
	}
	return string(b)
}
