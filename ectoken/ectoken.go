// Package ectoken parses and normalizes express-checkout payment tokens.
//
// A canonical token is a 17-character uppercase alphanumeric identifier,
// optionally prefixed "EC-". Merchant input arrives either as a bare token
// or as a redirect URL carrying a token= query parameter; no other shapes
// are valid.
package ectoken

import "regexp"

// Token is an opaque express-checkout payment identifier. Immutable once
// parsed.
type Token string

var (
	bareToken     = regexp.MustCompile(`^(?:EC-)?[A-Z0-9]{17}$`)
	embeddedToken = regexp.MustCompile(`token=((?:EC-)?[A-Z0-9]{17})`)
)

// Parse extracts the canonical token from raw merchant input. Bare canonical
// tokens are returned verbatim; otherwise the input is scanned for a
// token=<canonical> substring. Empty input and inputs without a match report
// ok=false; callers decide whether that means "no token available" or a
// protocol violation. Pure, case-sensitive, no fuzzy matching.
func Parse(raw string) (Token, bool) {
	if raw == "" {
		return "", false
	}
	if bareToken.MatchString(raw) {
		return Token(raw), true
	}
	if match := embeddedToken.FindStringSubmatch(raw); match != nil {
		return Token(match[1]), true
	}
	return "", false
}

// IsCanonical reports whether raw is itself a bare canonical token.
func IsCanonical(raw string) bool {
	return bareToken.MatchString(raw)
}

// IsURLForm reports whether raw should be treated as a redirect URL rather
// than as the token itself.
func IsURLForm(raw string) bool {
	return raw != "" && !bareToken.MatchString(raw)
}

// RedirectURL builds the full-page checkout destination for raw input: a
// bare token is appended to the base checkout URL, a URL-form input passes
// through unchanged.
func RedirectURL(raw, base string) string {
	if IsURLForm(raw) {
		return raw
	}
	return base + "?token=" + raw
}
