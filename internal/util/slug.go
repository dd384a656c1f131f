// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose helpers, currently URL slug
// generation with Unicode normalization.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a string to a URL-friendly slug: accents are
// decomposed and stripped, the result lowercased, spaces become hyphens
// and anything outside [a-z0-9-] is dropped.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, _ := transform.String(t, s)

	out = strings.ToLower(out)
	out = strings.ReplaceAll(out, " ", "-")
	out = nonSlugChars.ReplaceAllString(out, "")
	out = repeatedHyphens.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// IsValidSlug reports whether s is a well-formed slug: non-empty,
// lowercase alphanumerics and single hyphens, no leading or trailing
// hyphen.
func IsValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	if strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
