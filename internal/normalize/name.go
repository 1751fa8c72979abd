// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentFold removes combining marks after NFD decomposition, so
// "José" and "Jose" collapse to the same key.
var accentFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CanonicalName is the dedup key for person names: accent-folded,
// case-folded, whitespace-collapsed.
func CanonicalName(name string) string {
	folded, _, err := transform.String(accentFold, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// CanonicalHeader normalizes a column header for synonym lookup:
// accent-folded, case-folded, with separator runes collapsed to single
// spaces.
func CanonicalHeader(header string) string {
	folded, _, err := transform.String(accentFold, header)
	if err != nil {
		folded = header
	}
	folded = strings.ToLower(folded)
	folded = strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.', '/':
			return ' '
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}
