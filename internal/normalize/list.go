// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"encoding/json"
	"regexp"
	"strings"
)

// listSeparators splits on either ';' or ',' with equal precedence.
var listSeparators = regexp.MustCompile(`[;,]`)

// ParseList turns one raw cell into a list of trimmed, non-empty
// strings. It is total (never fails) and idempotent on already-clean
// values.
//
// Accepted shapes:
//   - nil, "", "[]": empty list
//   - an actual []string or []any
//   - a JSON-array-looking string, single quotes tolerated; when JSON
//     parsing fails the brackets are stripped and the remainder split
//   - anything else: split on ';' or ',' (same precedence)
func ParseList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanTokens(t)
	case []any:
		tokens := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := Cell(item); ok {
				tokens = append(tokens, s)
			}
		}
		return tokens
	}

	s, ok := Cell(v)
	if !ok || s == "[]" {
		return []string{}
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		normalized := strings.ReplaceAll(s, "'", `"`)
		var arr []any
		if err := json.Unmarshal([]byte(normalized), &arr); err == nil {
			tokens := make([]string, 0, len(arr))
			for _, item := range arr {
				if str, ok := Cell(item); ok {
					tokens = append(tokens, str)
				}
			}
			return tokens
		}
		// Malformed JSON: strip the brackets and fall through to the
		// separator split.
		s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		s = strings.ReplaceAll(s, `"`, "")
		s = strings.ReplaceAll(s, "'", "")
	}

	return cleanTokens(listSeparators.Split(s, -1))
}

func cleanTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || missingSentinels[strings.ToLower(tok)] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// UnionLists merges lists preserving first-seen order and removing
// duplicates by canonical name.
func UnionLists(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, item := range list {
			key := CanonicalName(item)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
