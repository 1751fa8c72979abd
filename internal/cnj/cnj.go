// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cnj validates, formats and repairs the standardized 20-digit
// Brazilian judicial case number (numeração única CNJ).
//
// Layout of the cleaned 20-digit string:
//
//	[0:7)   sequence
//	[7:9)   check digits
//	[9:13)  year
//	[13:14) segment (judicial branch)
//	[14:16) tribunal
//	[16:20) origin unit
package cnj

import (
	"fmt"
	"strings"
)

// Mode selects how strict Validate is.
type Mode string

const (
	// ModeCorrection accepts >=15 digits and right-pads to 20. Used while
	// importing, before any repair heuristics ran.
	ModeCorrection Mode = "correction"
	// ModeFinal requires exactly 20 digits with valid check digits.
	ModeFinal Mode = "final"
)

// Result is the outcome of a validation.
type Result struct {
	IsValid   bool
	Cleaned   string // digits only, padded in correction mode
	Formatted string // NNNNNNN-DD.AAAA.J.TR.OOOO, empty when not derivable
	Errors    []string
}

// checkWeights are applied left to right over each 6-digit slice.
var checkWeights = [6]int{2, 3, 4, 5, 6, 7}

// Clean strips everything but digits.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// checkDigit computes one verifier digit from a 6-digit slice using the
// weighted mod-11 scheme: sum(digit[i]*weight[i]) mod 11, mapped to 0
// when the remainder is below 2, else 11-remainder.
func checkDigit(slice string) int {
	sum := 0
	for i := 0; i < len(slice) && i < 6; i++ {
		sum += int(slice[i]-'0') * checkWeights[i]
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

// CheckDigits computes the two verifier digits for the 18 informational
// digits (sequence+year+segment+tribunal+origin, in that order). The
// first digit is derived from the leading 6 sequence digits, the second
// from the trailing tribunal+origin block.
func CheckDigits(info18 string) (string, error) {
	if len(info18) != 18 || Clean(info18) != info18 {
		return "", fmt.Errorf("cnj: esperados 18 dígitos informacionais, recebidos %d", len(info18))
	}
	d1 := checkDigit(info18[0:6])
	d2 := checkDigit(info18[12:18])
	return fmt.Sprintf("%d%d", d1, d2), nil
}

// Fields splits a cleaned 20-digit CNJ into its 5 informational fields
// plus the embedded check digits.
type Fields struct {
	Sequence string
	Check    string
	Year     string
	Segment  string
	Tribunal string
	Origin   string
}

// Split breaks a cleaned 20-digit string into fields. The input must be
// exactly 20 digits.
func Split(cleaned string) (Fields, error) {
	if len(cleaned) != 20 {
		return Fields{}, fmt.Errorf("cnj: esperados 20 dígitos, recebidos %d", len(cleaned))
	}
	return Fields{
		Sequence: cleaned[0:7],
		Check:    cleaned[7:9],
		Year:     cleaned[9:13],
		Segment:  cleaned[13:14],
		Tribunal: cleaned[14:16],
		Origin:   cleaned[16:20],
	}, nil
}

// Join reassembles a 20-digit string from fields, recomputing nothing.
func (f Fields) Join() string {
	return f.Sequence + f.Check + f.Year + f.Segment + f.Tribunal + f.Origin
}

// Info returns the 18 informational digits in check-digit input order.
func (f Fields) Info() string {
	return f.Sequence + f.Year + f.Segment + f.Tribunal + f.Origin
}

// HasValidCheck reports whether the embedded check digits match the
// recomputed value.
func HasValidCheck(cleaned string) bool {
	f, err := Split(cleaned)
	if err != nil {
		return false
	}
	want, err := CheckDigits(f.Info())
	if err != nil {
		return false
	}
	return f.Check == want
}

// Format renders a 20-digit string as NNNNNNN-DD.AAAA.J.TR.OOOO.
func Format(cnj string) string {
	cleaned := Clean(cnj)
	if len(cleaned) != 20 {
		return cnj
	}
	f, _ := Split(cleaned)
	return fmt.Sprintf("%s-%s.%s.%s.%s.%s", f.Sequence, f.Check, f.Year, f.Segment, f.Tribunal, f.Origin)
}

// Parse strips formatting and returns the 20 digits, or an error when
// the input does not carry exactly 20 digits.
func Parse(formatted string) (string, error) {
	cleaned := Clean(formatted)
	if len(cleaned) != 20 {
		return "", fmt.Errorf("cnj: %q não contém 20 dígitos", formatted)
	}
	return cleaned, nil
}

// Validate checks a raw CNJ value under the given mode.
//
// ModeCorrection is forgiving: anything with at least 15 digits is
// accepted and right-padded with zeros to 20, so the import can carry
// the value forward into the repair heuristics. ModeFinal is strict:
// exactly 20 digits and matching check digits.
func Validate(raw string, mode Mode) Result {
	cleaned := Clean(raw)

	if mode == ModeCorrection {
		if len(cleaned) < 15 {
			return Result{
				IsValid: false,
				Cleaned: cleaned,
				Errors:  []string{fmt.Sprintf("CNJ com %d dígitos; mínimo de 15 para correção", len(cleaned))},
			}
		}
		if len(cleaned) < 20 {
			cleaned += strings.Repeat("0", 20-len(cleaned))
		}
		cleaned = cleaned[:20]
		return Result{IsValid: true, Cleaned: cleaned, Formatted: Format(cleaned)}
	}

	var errs []string
	if len(cleaned) != 20 {
		errs = append(errs, fmt.Sprintf("CNJ deve ter 20 dígitos, possui %d", len(cleaned)))
	} else if !HasValidCheck(cleaned) {
		f, _ := Split(cleaned)
		want, _ := CheckDigits(f.Info())
		errs = append(errs, fmt.Sprintf("dígitos verificadores inválidos: esperado %s, encontrado %s", want, f.Check))
	}
	if len(errs) > 0 {
		return Result{IsValid: false, Cleaned: cleaned, Errors: errs}
	}
	return Result{IsValid: true, Cleaned: cleaned, Formatted: Format(cleaned)}
}
