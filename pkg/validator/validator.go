package validator

import (
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Target URLs only need a scheme and a minimal host part; everything else is
// the denylist's problem.
var urlPattern = regexp.MustCompile(`^https?://.{3,}`)

// Slug segments are alphanumeric or CJK. A dot may separate segments, but a
// segment after a dot must not start with a letter, so a tail like ".txt"
// can never mimic a file extension.
var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9\x{4e00}-\x{9fa5}\x{3400}-\x{4dbf}]+(\.[0-9\x{4e00}-\x{9fa5}\x{3400}-\x{4dbf}][a-zA-Z0-9\x{4e00}-\x{9fa5}\x{3400}-\x{4dbf}]*)*$`)

var passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9~!@#$%^&*()\[\]{}\-+_=."'?/]{6,32}$`)

// ValidURL reports whether s looks like a shortenable http(s) target.
func ValidURL(s string) bool {
	return urlPattern.MatchString(s)
}

// ValidSlug reports whether s is an acceptable user-chosen slug:
// 4-16 characters, slug grammar, no leading or trailing dot.
func ValidSlug(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < 4 || n > 16 {
		return false
	}
	return slugPattern.MatchString(s)
}

// ValidPassword reports whether s is an acceptable management password.
func ValidPassword(s string) bool {
	return passwordPattern.MatchString(s)
}

// ValidEmail reports whether s has a standard email shape.
func ValidEmail(s string) bool {
	return validate.Var(s, "email") == nil
}
