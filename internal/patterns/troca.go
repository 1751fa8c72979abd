// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"fmt"
	"sort"
	"strings"

	"assistjur/internal/record"
)

// detectTrocaDireta finds reciprocal witness pairs: A and B form a
// "troca direta" when a shared attorney represents one case where A
// testifies and a different case where B testifies, a 2-cycle in the
// testifies-for-a-case-represented-by relation. One attorney is enough;
// co-witnesses of a single case are never a pair.
//
// Candidate pairs come from the attorney index, never from scanning
// all witness pairs: only witnesses that co-occur in some attorney's
// case pool can be linked at all.
func (d *Detector) detectTrocaDireta(g *Graph) []record.TrocaDireta {
	type pairKey struct{ a, b string }
	candidates := make(map[pairKey]bool)

	for _, adv := range g.attorneys() {
		names := g.witnessesOfAttorney(adv)
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				a, b := names[i], names[j]
				if a > b {
					a, b = b, a
				}
				candidates[pairKey{a, b}] = true
			}
		}
	}

	var out []record.TrocaDireta
	for pair := range candidates {
		shared := g.sharedAttorneys(pair.a, pair.b)
		if len(shared) == 0 {
			continue
		}

		advDisplay := make([]string, 0, len(shared))
		for _, adv := range shared {
			advDisplay = append(advDisplay, g.AttorneyDisplay(adv))
		}

		t := record.TrocaDireta{
			TestemunhaA:     g.Display(pair.a),
			TestemunhaB:     g.Display(pair.b),
			CNJsA:           g.CNJs(pair.a),
			CNJsB:           g.CNJs(pair.b),
			AdvogadosComuns: advDisplay,
		}
		t.Desenho = fmt.Sprintf("%s ⇄ %s (advogados em comum: %s)",
			t.TestemunhaA, t.TestemunhaB, strings.Join(advDisplay, ", "))
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TestemunhaA != out[j].TestemunhaA {
			return out[i].TestemunhaA < out[j].TestemunhaA
		}
		return out[i].TestemunhaB < out[j].TestemunhaB
	})
	return out
}
