// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"assistjur/internal/record"
)

// detectHomonimos flags names whose appearances look like two or more
// different people: far-apart comarcas, disjoint attorney pools, long
// temporal gaps, and a common given name all push the score up. The
// weighting is tunable; the monotonicity of the combination is the
// contract (raising any mismatch factor never lowers the score).
func (d *Detector) detectHomonimos(g *Graph) []record.Homonimo {
	h := d.cfg.Homonimos
	common := make(map[string]bool, len(h.NomesComuns))
	for _, n := range h.NomesComuns {
		common[n] = true
	}

	var out []record.Homonimo
	for _, name := range g.Witnesses() {
		apps := g.Appearances(name)
		if len(apps) < 2 {
			continue
		}

		fComarca := comarcaMismatch(apps)
		fAdvogado := attorneyMismatch(apps)
		fTemporal := temporalGap(apps, h.GapAnos)
		fNome := 0.0
		if first := strings.SplitN(name, " ", 2)[0]; common[first] {
			fNome = 1.0
		}

		score := h.PesoComarcaUF*fComarca +
			h.PesoAdvogado*fAdvogado +
			h.PesoTemporal*fTemporal +
			h.PesoNomeComum*fNome

		prob := record.ProbBaixa
		switch {
		case score >= h.CorteAlta:
			prob = record.ProbAlta
		case score >= h.CorteMedia:
			prob = record.ProbMedia
		}
		if prob == record.ProbBaixa {
			continue
		}

		var fatores []string
		if fComarca > 0 {
			fatores = append(fatores, fmt.Sprintf("comarca_uf %.2f", fComarca))
		}
		if fAdvogado > 0 {
			fatores = append(fatores, fmt.Sprintf("advogado_ativo %.2f", fAdvogado))
		}
		if fTemporal > 0 {
			fatores = append(fatores, fmt.Sprintf("temporalidade %.2f", fTemporal))
		}
		if fNome > 0 {
			fatores = append(fatores, "nome_comum")
		}

		out = append(out, record.Homonimo{
			Nome:          g.Display(name),
			Score:         score,
			Probabilidade: prob,
			Fatores:       fatores,
			CNJs:          g.CNJs(name),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out
}

// comarcaMismatch is the share of appearances outside the most common
// comarca/UF context: 0 when every appearance shares one context,
// approaching 1 as contexts diverge.
func comarcaMismatch(apps []Appearance) float64 {
	counts := make(map[string]int)
	total := 0
	for _, app := range apps {
		if app.Comarca == "" && app.UF == "" {
			continue
		}
		counts[app.Comarca+"/"+app.UF]++
		total++
	}
	if total < 2 {
		return 0
	}
	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	return 1.0 - float64(best)/float64(total)
}

// attorneyMismatch is the fraction of appearance pairs with no
// attorney in common.
func attorneyMismatch(apps []Appearance) float64 {
	pairs, disjoint := 0, 0
	for i := 0; i < len(apps); i++ {
		for j := i + 1; j < len(apps); j++ {
			pairs++
			if !shareAttorney(apps[i].Advogados, apps[j].Advogados) {
				disjoint++
			}
		}
	}
	if pairs == 0 {
		return 0
	}
	return float64(disjoint) / float64(pairs)
}

func shareAttorney(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, x := range a {
		set[x] = true
	}
	for _, y := range b {
		if set[y] {
			return true
		}
	}
	return false
}

// temporalGap scales the widest hearing-date gap against the
// configured threshold, saturating at 1.
func temporalGap(apps []Appearance, gapYears float64) float64 {
	if gapYears <= 0 {
		return 0
	}
	var min, max time.Time
	for _, app := range apps {
		if app.Data == "" {
			continue
		}
		ts, err := time.Parse("2006-01-02", app.Data)
		if err != nil {
			continue
		}
		if min.IsZero() || ts.Before(min) {
			min = ts
		}
		if max.IsZero() || ts.After(max) {
			max = ts
		}
	}
	if min.IsZero() || max.IsZero() {
		return 0
	}
	gap := max.Sub(min).Hours() / 24 / 365.25
	f := gap / gapYears
	if f > 1 {
		f = 1
	}
	return f
}
