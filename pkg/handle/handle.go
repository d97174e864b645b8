// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

// Package handle normalizes arbitrary Unicode strings into ASCII channel handles.
//
// # Usage
//
// Handles are the human-readable identifiers for channels (e.g., "le.minh.duc").
// This package handles normalization, accent removal, and character sanitization
// so that registration input like "Lê Minh Đức" becomes "le.minh.duc".
package handle

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowed matches any character outside the handle alphabet.
	disallowed = regexp.MustCompile(`[^a-z0-9._]+`)
	// multiDot collapses consecutive separator dots into one.
	multiDot = regexp.MustCompile(`\.{2,}`)

	// dStroke maps the Vietnamese đ, which has no NFD decomposition.
	dStroke = strings.NewReplacer("đ", "d", "Đ", "D")
)

// From converts an arbitrary Unicode string into a lowercase ASCII handle.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Replaces whitespace runs with a single dot separator.
// 5. Strips remaining disallowed characters and trims leading/trailing dots.
func From(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, dStroke.Replace(s))

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Whitespace becomes the dot separator
	result = strings.Join(strings.Fields(result), ".")

	// 4. Clean up the remaining alphabet
	result = disallowed.ReplaceAllString(result, "")
	result = multiDot.ReplaceAllString(result, ".")
	result = strings.Trim(result, "._")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
