// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cnj

import (
	"fmt"
	"strconv"
	"strings"
)

// CorrectionStatus tags the outcome of a repair attempt.
type CorrectionStatus string

const (
	NoCorrectionNeeded CorrectionStatus = "no_correction_needed"
	Corrected          CorrectionStatus = "corrected"
	Unrecoverable      CorrectionStatus = "unrecoverable"
)

// Correction is the tagged result of Correct. Callers thread Confidence
// into the row's quality metrics instead of re-deriving it.
type Correction struct {
	Status     CorrectionStatus
	Original   string
	Value      string  // cleaned 20 digits when Status != Unrecoverable
	Formatted  string
	Confidence float64 // 0-1; 1.0 when no correction was needed
	Method     string
	Reason     string // set when Unrecoverable
}

// NeedsCorrection reports whether the input required any repair.
func (c Correction) NeedsCorrection() bool {
	return c.Status == Corrected
}

// Correct attempts a best-effort reconstruction of a garbled CNJ.
//
// Heuristics, in order:
//   - 20 digits, valid check: nothing to do.
//   - 20 digits, invalid check: recompute the two verifier digits from
//     the informational fields (assumes the check block was mistyped).
//   - 18 digits: assume the check digits were dropped; recompute and
//     reinsert them.
//   - 19 digits: assume a leading zero of the sequence was dropped;
//     left-pad the sequence and recompute the check digits.
//   - 15-17 digits: re-slice from the right (origin, tribunal, segment,
//     year are positional from the end; the remainder is the sequence,
//     left-padded with zeros) and recompute the check digits.
//
// An already valid CNJ is never rewritten.
func Correct(raw string) Correction {
	cleaned := Clean(raw)

	switch {
	case len(cleaned) == 20:
		if HasValidCheck(cleaned) {
			return Correction{
				Status:     NoCorrectionNeeded,
				Original:   raw,
				Value:      cleaned,
				Formatted:  Format(cleaned),
				Confidence: 1.0,
			}
		}
		f, _ := Split(cleaned)
		return rebuild(raw, f, 0.95, "recalculo_digitos_verificadores")

	case len(cleaned) == 18:
		// sequence(7) + year(4) + segment(1) + tribunal(2) + origin(4),
		// check digits missing.
		f := Fields{
			Sequence: cleaned[0:7],
			Year:     cleaned[7:11],
			Segment:  cleaned[11:12],
			Tribunal: cleaned[12:14],
			Origin:   cleaned[14:18],
		}
		return rebuild(raw, f, 0.97, "digitos_verificadores_ausentes")

	case len(cleaned) == 19:
		// Assume a leading zero of the sequence was dropped: layout is
		// seq(6) check(2) year(4) seg(1) trib(2) orig(4). The embedded
		// check block is discarded and recomputed.
		f := Fields{
			Sequence: "0" + cleaned[0:6],
			Year:     cleaned[8:12],
			Segment:  cleaned[12:13],
			Tribunal: cleaned[13:15],
			Origin:   cleaned[15:19],
		}
		return rebuild(raw, f, 0.65, "sequencial_com_zero_suprimido")

	case len(cleaned) >= 15 && len(cleaned) <= 17:
		n := len(cleaned)
		f := Fields{
			Origin:   cleaned[n-4:],
			Tribunal: cleaned[n-6 : n-4],
			Segment:  cleaned[n-7 : n-6],
			Year:     cleaned[n-11 : n-7],
			Sequence: leftPad(cleaned[:n-11], 7),
		}
		conf := 0.60 + 0.05*float64(n-15)
		return rebuild(raw, f, conf, "refatiamento_de_campos")

	default:
		return Correction{
			Status:   Unrecoverable,
			Original: raw,
			Reason:   fmt.Sprintf("%d dígitos é insuficiente para reconstrução (mínimo 15)", len(cleaned)),
		}
	}
}

// rebuild recomputes check digits for the informational fields and
// assembles the corrected value, sanity-checking the year.
func rebuild(raw string, f Fields, confidence float64, method string) Correction {
	year, err := strconv.Atoi(f.Year)
	if err != nil || year < 1900 || year > 2099 {
		return Correction{
			Status:   Unrecoverable,
			Original: raw,
			Reason:   fmt.Sprintf("ano reconstruído implausível: %q", f.Year),
		}
	}

	check, err := CheckDigits(f.Info())
	if err != nil {
		return Correction{Status: Unrecoverable, Original: raw, Reason: err.Error()}
	}
	f.Check = check
	value := f.Join()

	return Correction{
		Status:     Corrected,
		Original:   raw,
		Value:      value,
		Formatted:  Format(value),
		Confidence: confidence,
		Method:     method,
	}
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}
