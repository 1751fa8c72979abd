// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"fmt"
	"strings"
)

// missingSentinels are string values that spreadsheets use to mean
// "no value". They are converted to a true missing value exactly once,
// here at the parsing boundary; downstream code never re-checks string
// literals.
var missingSentinels = map[string]bool{
	"":          true,
	"null":      true,
	"undefined": true,
	"nan":       true,
	"n/a":       true,
	"-":         true,
}

// Cell converts one raw spreadsheet value into a trimmed string plus a
// presence flag. Numbers are rendered without a trailing ".0" when they
// are integral, which is how XLSX readers hand back numeric cells.
func Cell(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			s = fmt.Sprintf("%d", int64(t))
		} else {
			s = fmt.Sprintf("%v", t)
		}
	case int:
		s = fmt.Sprintf("%d", t)
	case int64:
		s = fmt.Sprintf("%d", t)
	case bool:
		if t {
			s = "true"
		} else {
			s = "false"
		}
	default:
		s = strings.TrimSpace(fmt.Sprintf("%v", t))
	}
	if missingSentinels[strings.ToLower(s)] {
		return "", false
	}
	return s, true
}

// CellOrDefault returns the cleaned cell value, or def when missing.
func CellOrDefault(v any, def string) string {
	s, ok := Cell(v)
	if !ok {
		return def
	}
	return s
}
