// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package mask redacts personal identifiers at the export boundary.
// The pipeline always computes on cleartext; masking is applied to a
// copy of the report just before it is rendered or persisted, so
// enabling it never changes validation or detection results.
package mask

import (
	"fmt"
	"regexp"
	"strings"

	"assistjur/internal/record"
)

var (
	cpfPattern   = regexp.MustCompile(`\b(\d{3})\.?(\d{3})\.?(\d{3})-?(\d{2})\b`)
	cnpjPattern  = regexp.MustCompile(`\b(\d{2})\.?(\d{3})\.?(\d{3})/?(\d{4})-?(\d{2})\b`)
	emailPattern = regexp.MustCompile(`\b([A-Za-z0-9._%+-]+)@([A-Za-z0-9.-]+\.[A-Za-z]{2,})\b`)
)

// CPF keeps the first three and last two digits: 123.***.***-45.
// Input that is not a CPF comes back unchanged.
func CPF(s string) string {
	return cpfPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := cpfPattern.FindStringSubmatch(m)
		return fmt.Sprintf("%s.***.***-%s", parts[1], parts[4])
	})
}

// CNPJ keeps the first two and last two digits: 12.***.***/****-90.
func CNPJ(s string) string {
	return cnpjPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := cnpjPattern.FindStringSubmatch(m)
		return fmt.Sprintf("%s.***.***/****-%s", parts[1], parts[5])
	})
}

// Email keeps the first two characters of the local part and the full
// domain: ab***@example.com. One-character local parts keep that one
// character.
func Email(s string) string {
	return emailPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := emailPattern.FindStringSubmatch(m)
		local := parts[1]
		keep := 2
		if len(local) < keep {
			keep = len(local)
		}
		return local[:keep] + "***@" + parts[2]
	})
}

// Text applies every masking rule to free text, CPF before CNPJ so a
// CNPJ's middle digits are not half-eaten by the CPF pattern.
func Text(s string) string {
	return Email(CNPJ(CPF(s)))
}

// Masker masks a validation report. The zero value masks nothing.
type Masker struct {
	Enabled bool
}

// Apply returns the report with personal identifiers masked. When
// masking is disabled the input is returned as-is; otherwise the
// report is deep-copied so the caller's copy stays cleartext.
func (m Masker) Apply(rep *record.ValidationReport) *record.ValidationReport {
	if !m.Enabled || rep == nil {
		return rep
	}

	out := *rep
	out.Cases = make([]record.CaseRecord, len(rep.Cases))
	for i, c := range rep.Cases {
		out.Cases[i] = maskCase(c)
	}
	out.Issues = make([]record.ValidationIssue, len(rep.Issues))
	for i, iss := range rep.Issues {
		iss.Original = Text(iss.Original)
		iss.Fixed = Text(iss.Fixed)
		iss.Message = Text(iss.Message)
		out.Issues[i] = iss
	}
	return &out
}

func maskCase(c record.CaseRecord) record.CaseRecord {
	c.ReclamanteCPF = CPF(c.ReclamanteCPF)
	if len(c.Unmapped) > 0 {
		unmapped := make(map[string]string, len(c.Unmapped))
		for k, v := range c.Unmapped {
			if isSensitiveColumn(k) {
				unmapped[k] = Text(v)
			} else {
				unmapped[k] = v
			}
		}
		c.Unmapped = unmapped
	}
	return c
}

// isSensitiveColumn matches unmapped column names that carry documents
// or contact data. Unknown columns are passed through untouched so the
// export stays reviewable.
func isSensitiveColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, frag := range []string{"cpf", "cnpj", "email", "e-mail", "documento", "rg"} {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
