// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"sort"

	"assistjur/internal/record"
)

// detectDuploPapel finds people who are claimants in some cases and
// witnesses in others. Testifying for the defendant side ("polo
// passivo") raises the risk tier.
func (d *Detector) detectDuploPapel(g *Graph) []record.DuploPapel {
	var out []record.DuploPapel

	for name, claimantCNJs := range g.claimants {
		apps := g.byWitness[name]
		if len(apps) == 0 {
			continue
		}

		// Witness appearances in cases other than their own.
		var witnessCNJs []string
		poloPassivo := false
		seen := make(map[string]bool)
		for _, app := range apps {
			if claimantCNJs[app.CNJ] || seen[app.CNJ] {
				continue
			}
			seen[app.CNJ] = true
			witnessCNJs = append(witnessCNJs, app.CNJ)
			if app.Side == record.SidePassivo {
				poloPassivo = true
			}
		}
		if len(witnessCNJs) == 0 {
			continue
		}

		risco := record.TierMedio
		if poloPassivo {
			risco = record.TierAlto
		}

		sort.Strings(witnessCNJs)
		out = append(out, record.DuploPapel{
			Nome:               g.Display(name),
			CNJsComoReclamante: sortedKeys(claimantCNJs),
			CNJsComoTestemunha: witnessCNJs,
			PoloPassivo:        poloPassivo,
			Risco:              risco,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out
}
