// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"sort"

	"assistjur/internal/normalize"
	"assistjur/internal/record"
)

// detectProvaEmprestada flags likely professional witnesses: a high
// deposition count concentrated on a few recurring attorneys and/or a
// single comarca. The thresholds are configuration, not law.
func (d *Detector) detectProvaEmprestada(g *Graph, witnesses []record.WitnessRecord) []record.ProvaEmprestada {
	var out []record.ProvaEmprestada
	covered := make(map[string]bool)

	for _, name := range g.Witnesses() {
		apps := g.Appearances(name)
		cnjs := g.CNJs(name)
		if len(cnjs) == 0 {
			continue
		}

		advCount := make(map[string]int)
		comarcaCount := make(map[string]int)
		for _, app := range apps {
			for _, adv := range app.Advogados {
				advCount[adv]++
			}
			if app.Comarca != "" {
				comarcaCount[normalize.CanonicalName(app.Comarca)]++
			}
		}

		advConcentration, topAdvs := concentration(advCount, len(cnjs))
		comarcaConcentration, _ := concentration(comarcaCount, len(cnjs))

		alerta := len(cnjs) > d.cfg.MinDepoimentos &&
			(advConcentration >= d.cfg.ConcentracaoMinima || comarcaConcentration >= d.cfg.ConcentracaoMinima)
		if !alerta {
			continue
		}

		covered[name] = true
		recorrentes := make([]string, 0, len(topAdvs))
		for _, adv := range topAdvs {
			recorrentes = append(recorrentes, g.AttorneyDisplay(adv))
		}
		out = append(out, record.ProvaEmprestada{
			Nome:                 g.Display(name),
			QtdDepoimentos:       len(cnjs),
			CNJs:                 cnjs,
			AdvogadosRecorrentes: recorrentes,
			ConcentracaoComarca:  comarcaConcentration,
			Alerta:               true,
		})
	}

	// Witness records can exceed the threshold through cases that are
	// not part of this batch; flag them too, without concentration
	// data. When the graph saw every deposition the record claims, its
	// verdict above stands.
	for _, w := range witnesses {
		key := w.NomeCanonico
		if key == "" || covered[key] || w.QtdDepoimentos <= len(g.CNJs(key)) {
			continue
		}
		if w.QtdDepoimentos > d.cfg.MinDepoimentos {
			out = append(out, record.ProvaEmprestada{
				Nome:           w.Nome,
				QtdDepoimentos: w.QtdDepoimentos,
				CNJs:           w.CNJsComoTestemunha,
				Alerta:         true,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out
}

// concentration returns the highest share any single key holds of the
// total, plus the keys at that share, sorted.
func concentration(counts map[string]int, total int) (float64, []string) {
	if total == 0 {
		return 0, nil
	}
	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	if best == 0 {
		return 0, nil
	}
	var top []string
	for k, n := range counts {
		if n == best {
			top = append(top, k)
		}
	}
	sort.Strings(top)
	return float64(best) / float64(total), top
}
