// Package contact holds the normalization and validation rules for the
// booking form. Everything here is pure; side effects live in the handler.
package contact

import "strings"

// Field length limits
const (
	MaxName       = 80
	MaxEmail      = 254
	MaxMessage    = 4000
	MaxLocation   = 120
	MaxPhone      = 40
	MaxCustomText = 500
)

// ClampTrim trims surrounding whitespace and truncates to max characters.
func ClampTrim(v string, max int) string {
	v = strings.TrimSpace(v)
	runes := []rune(v)
	if len(runes) > max {
		return string(runes[:max])
	}
	return v
}

// NormalizeEmail trims, clamps and lower-cases an email address.
func NormalizeEmail(v string) string {
	return strings.ToLower(ClampTrim(v, MaxEmail))
}

// Digits strips every non-digit character.
func Digits(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders a US number as (AAA) BBB-CCCC, or
// +1 (AAA) BBB-CCCC when an 11th leading-1 digit is present. Anything
// else comes back unchanged.
func FormatPhone(v string) string {
	d := Digits(v)
	if len(d) == 10 {
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	}
	if len(d) == 11 && d[0] == '1' {
		return "+1 (" + d[1:4] + ") " + d[4:7] + "-" + d[7:]
	}
	return v
}
