// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"assistjur/internal/record"
)

// DeriveWitnesses materializes the witness records of one batch from
// its case records and merges them with any rows read from a
// "Por Testemunha" sheet. Witness identity is the canonical name.
// A case-only import still yields the full witness view: per-side CNJ
// lists, deposition counts and the claimant cross-reference all come
// from the cases themselves. Sheet rows keep their provenance and
// declared fields; case-derived data fills and extends them.
func DeriveWitnesses(cases []record.CaseRecord, fromSheet []record.WitnessRecord) []record.WitnessRecord {
	claimants := make(map[string]bool)
	for i := range cases {
		if !cases[i].FinalValid {
			continue
		}
		if key := CanonicalName(cases[i].ReclamanteNome); key != "" {
			claimants[key] = true
		}
	}

	derived := make(map[string]*record.WitnessRecord)
	var order []string
	add := func(name, cnjID string, side record.Side) {
		key := CanonicalName(name)
		if key == "" {
			return
		}
		w := derived[key]
		if w == nil {
			w = &record.WitnessRecord{Nome: name, NomeCanonico: key}
			derived[key] = w
			order = append(order, key)
		}
		switch side {
		case record.SideAtivo:
			w.CNJsComoTestemunhaAtivo = append(w.CNJsComoTestemunhaAtivo, cnjID)
		case record.SidePassivo:
			w.CNJsComoTestemunhaPassivo = append(w.CNJsComoTestemunhaPassivo, cnjID)
		}
		w.CNJsComoTestemunha = append(w.CNJsComoTestemunha, cnjID)
	}

	for i := range cases {
		c := &cases[i]
		if !c.FinalValid || c.CNJ == "" {
			continue
		}
		sided := make(map[string]bool)
		for _, name := range c.TestemunhasAtivo {
			add(name, c.CNJ, record.SideAtivo)
			sided[CanonicalName(name)] = true
		}
		for _, name := range c.TestemunhasPassivo {
			add(name, c.CNJ, record.SidePassivo)
			sided[CanonicalName(name)] = true
		}
		for _, name := range c.TodasTestemunhas {
			if !sided[CanonicalName(name)] {
				add(name, c.CNJ, "")
			}
		}
	}

	for _, key := range order {
		w := derived[key]
		w.CNJsComoTestemunhaAtivo = UnionLists(w.CNJsComoTestemunhaAtivo)
		w.CNJsComoTestemunhaPassivo = UnionLists(w.CNJsComoTestemunhaPassivo)
		w.CNJsComoTestemunha = UnionLists(w.CNJsComoTestemunha)
		w.QtdDepoimentos = len(w.CNJsComoTestemunha)
		w.JaFoiReclamante = claimants[key]
		w.FoiTestemunhaEmAmbosPolos = len(w.CNJsComoTestemunhaAtivo) > 0 &&
			len(w.CNJsComoTestemunhaPassivo) > 0
		w.Quality = record.DataQualityMetrics{
			Confidence:   1.0,
			Completeness: 1.0,
			Consistency:  0.95,
		}
	}

	out := make([]record.WitnessRecord, 0, len(fromSheet)+len(order))
	for i := range fromSheet {
		w := fromSheet[i]
		if d, ok := derived[w.NomeCanonico]; ok {
			w.CNJsComoTestemunhaAtivo = UnionLists(w.CNJsComoTestemunhaAtivo, d.CNJsComoTestemunhaAtivo)
			w.CNJsComoTestemunhaPassivo = UnionLists(w.CNJsComoTestemunhaPassivo, d.CNJsComoTestemunhaPassivo)
			w.CNJsComoTestemunha = UnionLists(w.CNJsComoTestemunha, d.CNJsComoTestemunha)
			if len(w.CNJsComoTestemunha) > w.QtdDepoimentos {
				w.QtdDepoimentos = len(w.CNJsComoTestemunha)
			}
			w.JaFoiReclamante = w.JaFoiReclamante || d.JaFoiReclamante
			w.FoiTestemunhaEmAmbosPolos = w.FoiTestemunhaEmAmbosPolos ||
				(len(w.CNJsComoTestemunhaAtivo) > 0 && len(w.CNJsComoTestemunhaPassivo) > 0)
			delete(derived, w.NomeCanonico)
		}
		out = append(out, w)
	}
	for _, key := range order {
		if w, ok := derived[key]; ok {
			out = append(out, *w)
		}
	}
	return out
}
