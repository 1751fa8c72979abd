// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"fmt"
	"regexp"
	"strconv"
)

// DateStatus tags the outcome of FixDate.
type DateStatus string

const (
	DateCanonical   DateStatus = "canonical"   // already yyyy-MM-dd, nothing to do
	DateFixed       DateStatus = "fixed"       // rewritten to yyyy-MM-dd
	DateUnparseable DateStatus = "unparseable" // no known format matched
)

// DateFix is the tagged result of a date repair.
type DateFix struct {
	Status     DateStatus
	Value      string // yyyy-MM-dd when Status != DateUnparseable
	Confidence float64
	Format     string // name of the matched input format
}

// datePattern couples a structural regex with the capture order and the
// confidence assigned to a match. Patterns are tried in order; the
// first structural match wins and is then calendar-validated.
type datePattern struct {
	name       string
	re         *regexp.Regexp
	order      [3]int // indexes of year, month, day within the submatches
	twoDigitYY bool
	confidence float64
}

var datePatterns = []datePattern{
	{"dd/MM/yyyy", regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`), [3]int{3, 2, 1}, false, 0.95},
	{"yyyy-MM-dd", regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`), [3]int{1, 2, 3}, false, 0.98},
	{"dd-MM-yyyy", regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`), [3]int{3, 2, 1}, false, 0.90},
	{"dd.MM.yyyy", regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`), [3]int{3, 2, 1}, false, 0.90},
	{"d/M/yy", regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`), [3]int{3, 2, 1}, true, 0.80},
	{"d/M/yyyy", regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`), [3]int{3, 2, 1}, false, 0.85},
	{"yyyyMMdd", regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`), [3]int{1, 2, 3}, false, 0.80},
	{"ddMMyyyy", regexp.MustCompile(`^(\d{2})(\d{2})(\d{4})$`), [3]int{3, 2, 1}, false, 0.80},
}

var canonicalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FixDate parses one raw date cell and normalizes it to yyyy-MM-dd.
// Already-canonical values are reported as such without rewriting.
// Confidence is format-dependent, with a penalty for implausible years.
func FixDate(raw string) DateFix {
	s, ok := Cell(raw)
	if !ok {
		return DateFix{Status: DateUnparseable}
	}

	if canonicalDate.MatchString(s) {
		if y, m, d, err := splitDate(s[0:4], s[5:7], s[8:10], false); err == nil && validDay(y, m, d) {
			return DateFix{Status: DateCanonical, Value: s, Confidence: 0.98, Format: "yyyy-MM-dd"}
		}
		return DateFix{Status: DateUnparseable}
	}

	for _, p := range datePatterns {
		sub := p.re.FindStringSubmatch(s)
		if sub == nil {
			continue
		}
		y, m, d, err := splitDate(sub[p.order[0]], sub[p.order[1]], sub[p.order[2]], p.twoDigitYY)
		if err != nil || !validDay(y, m, d) {
			// Structural match but impossible calendar date: let a later
			// pattern reinterpret the digits (e.g. 15042023 fails as
			// yyyyMMdd but parses as ddMMyyyy).
			continue
		}

		conf := p.confidence
		if y < 1950 || y > 2050 {
			conf -= 0.15
			if conf < 0 {
				conf = 0
			}
		}
		return DateFix{
			Status:     DateFixed,
			Value:      fmt.Sprintf("%04d-%02d-%02d", y, m, d),
			Confidence: conf,
			Format:     p.name,
		}
	}

	return DateFix{Status: DateUnparseable}
}

func splitDate(ys, ms, ds string, twoDigitYY bool) (int, int, int, error) {
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, 0, err
	}
	if twoDigitYY {
		// Pivot: 00-49 => 2000s, 50-99 => 1900s.
		if y < 50 {
			y += 2000
		} else {
			y += 1900
		}
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return 0, 0, 0, err
	}
	d, err := strconv.Atoi(ds)
	if err != nil {
		return 0, 0, 0, err
	}
	return y, m, d, nil
}

func validDay(y, m, d int) bool {
	if m < 1 || m > 12 || d < 1 {
		return false
	}
	days := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	max := days[m-1]
	if m == 2 && isLeap(y) {
		max = 29
	}
	return d <= max
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
