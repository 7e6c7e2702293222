package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var ipv4Pattern = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)

// Classifier extracts the registrable domain of a target URL, the unit the
// denylist is keyed on. It is pure: creation-time and resolution-time checks
// must classify the same URL identically.
type Classifier struct {
	suffixes []string
}

// NewClassifier builds a classifier over the configured multi-label public
// suffixes. Order is preserved; the first matching suffix wins.
func NewClassifier(specialSuffixes []string) *Classifier {
	return &Classifier{suffixes: specialSuffixes}
}

// RegistrableDomain returns the policy-relevant domain of rawURL:
// an IPv4 literal verbatim, one label beyond a matching special suffix,
// or the last two labels otherwise.
func (c *Classifier) RegistrableDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("classify: no hostname in %q", rawURL)
	}

	if ipv4Pattern.MatchString(host) {
		return host, nil
	}

	parts := strings.Split(host, ".")
	for _, suffix := range c.suffixes {
		n := len(strings.Split(suffix, "."))
		if len(parts) > n && strings.Join(parts[len(parts)-n:], ".") == suffix {
			return strings.Join(parts[len(parts)-n-1:], "."), nil
		}
	}

	if len(parts) < 2 {
		return host, nil
	}
	return strings.Join(parts[len(parts)-2:], "."), nil
}
