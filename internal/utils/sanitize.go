package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var keyCharPattern = regexp.MustCompile(`[^a-zA-Z0-9\-\s]+`)

// BaseName strips the extension and turns separators into spaces, giving
// a human-ish name to derive labels and storage keys from.
func BaseName(filename string) string {
	ext := filepath.Ext(filename)
	clean := strings.TrimSuffix(filepath.Base(filename), ext)
	clean = strings.ReplaceAll(clean, "_", " ")
	clean = strings.ReplaceAll(clean, "-", " ")
	return clean
}

// SanitizeKey reduces text to a safe storage key segment. Falls back to
// def when nothing survives.
func SanitizeKey(text, def string) string {
	clean := keyCharPattern.ReplaceAllString(text, "")
	clean = strings.ReplaceAll(strings.TrimSpace(clean), " ", "_")
	if clean == "" {
		return def
	}
	return clean
}
