// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"sort"

	"assistjur/internal/normalize"
	"assistjur/internal/record"
)

// Appearance is one witness-in-case edge of the bipartite graph,
// tagged with the side and the claimant-side attorneys of record.
type Appearance struct {
	CNJ       string
	Side      record.Side // empty when the source sheet gave no side
	Advogados []string    // canonical attorney names
	Comarca   string
	UF        string
	Data      string // hearing date, yyyy-MM-dd, may be empty
}

// Graph indexes one normalized batch for pattern detection. Everything
// is keyed by canonical (accent/case-folded) names so homonyms and
// spelling variants collapse onto one node.
type Graph struct {
	// witness canonical name -> appearances, in case order
	byWitness map[string][]Appearance
	// attorney canonical name -> set of CNJs they represent (claimant side)
	byAttorney map[string]map[string]bool
	// claimant canonical name -> set of CNJs where they are the claimant
	claimants map[string]map[string]bool
	// case index
	cases map[string]*record.CaseRecord
	order []string // CNJ insertion order, for deterministic output

	// first-seen display spellings
	witnessDisplay  map[string]string
	attorneyDisplay map[string]string

	// final-invalid cases that could not be placed in the graph
	skipped []string
}

// BuildGraph indexes the batch. Cases that failed final validation are
// recorded as skipped, never an error: the detector degrades
// gracefully on data it cannot cross-reference.
func BuildGraph(cases []record.CaseRecord) *Graph {
	g := &Graph{
		byWitness:       make(map[string][]Appearance),
		byAttorney:      make(map[string]map[string]bool),
		claimants:       make(map[string]map[string]bool),
		cases:           make(map[string]*record.CaseRecord),
		witnessDisplay:  make(map[string]string),
		attorneyDisplay: make(map[string]string),
	}

	for i := range cases {
		c := &cases[i]
		if !c.FinalValid || c.CNJ == "" {
			g.skipped = append(g.skipped, c.CNJ)
			continue
		}
		if _, dup := g.cases[c.CNJ]; dup {
			g.skipped = append(g.skipped, c.CNJ)
			continue
		}
		g.cases[c.CNJ] = c
		g.order = append(g.order, c.CNJ)

		advs := make([]string, 0, len(c.AdvogadosAtivo))
		for _, adv := range c.AdvogadosAtivo {
			key := normalize.CanonicalName(adv)
			if key == "" {
				continue
			}
			advs = append(advs, key)
			if _, ok := g.attorneyDisplay[key]; !ok {
				g.attorneyDisplay[key] = adv
			}
			if g.byAttorney[key] == nil {
				g.byAttorney[key] = make(map[string]bool)
			}
			g.byAttorney[key][c.CNJ] = true
		}

		if key := normalize.CanonicalName(c.ReclamanteNome); key != "" {
			if g.claimants[key] == nil {
				g.claimants[key] = make(map[string]bool)
			}
			g.claimants[key][c.CNJ] = true
		}

		g.addAppearances(c, c.TestemunhasAtivo, record.SideAtivo, advs)
		g.addAppearances(c, c.TestemunhasPassivo, record.SidePassivo, advs)
		g.addAppearances(c, sideless(c), "", advs)
	}
	return g
}

// sideless returns the witnesses present only in the union list.
func sideless(c *record.CaseRecord) []string {
	known := make(map[string]bool)
	for _, w := range c.TestemunhasAtivo {
		known[normalize.CanonicalName(w)] = true
	}
	for _, w := range c.TestemunhasPassivo {
		known[normalize.CanonicalName(w)] = true
	}
	var out []string
	for _, w := range c.TodasTestemunhas {
		if !known[normalize.CanonicalName(w)] {
			out = append(out, w)
		}
	}
	return out
}

func (g *Graph) addAppearances(c *record.CaseRecord, names []string, side record.Side, advs []string) {
	for _, name := range names {
		key := normalize.CanonicalName(name)
		if key == "" {
			continue
		}
		if _, ok := g.witnessDisplay[key]; !ok {
			g.witnessDisplay[key] = name
		}
		g.byWitness[key] = append(g.byWitness[key], Appearance{
			CNJ:       c.CNJ,
			Side:      side,
			Advogados: advs,
			Comarca:   c.Comarca,
			UF:        c.UF,
			Data:      c.DataAudiencia,
		})
	}
}

// Witnesses returns the canonical witness names in sorted order.
func (g *Graph) Witnesses() []string {
	names := make([]string, 0, len(g.byWitness))
	for name := range g.byWitness {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Appearances returns the edge list for one canonical witness name.
func (g *Graph) Appearances(name string) []Appearance {
	return g.byWitness[name]
}

// CNJs returns the deduplicated case list for one witness.
func (g *Graph) CNJs(name string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, app := range g.byWitness[name] {
		if !seen[app.CNJ] {
			seen[app.CNJ] = true
			out = append(out, app.CNJ)
		}
	}
	return out
}

// Display returns the first-seen spelling for a canonical witness name.
func (g *Graph) Display(name string) string {
	if d, ok := g.witnessDisplay[name]; ok {
		return d
	}
	return name
}

// AttorneyDisplay returns the first-seen spelling for an attorney.
func (g *Graph) AttorneyDisplay(name string) string {
	if d, ok := g.attorneyDisplay[name]; ok {
		return d
	}
	return name
}

// attorneys returns the canonical attorney names in sorted order.
func (g *Graph) attorneys() []string {
	names := make([]string, 0, len(g.byAttorney))
	for name := range g.byAttorney {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// witnessesOfAttorney returns the witnesses that appear in any case
// represented by the given attorney, sorted.
func (g *Graph) witnessesOfAttorney(adv string) []string {
	cnjs := g.byAttorney[adv]
	seen := make(map[string]bool)
	var out []string
	for cnjID := range cnjs {
		for _, name := range g.witnessesOfCase(cnjID) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// witnessesOfCase returns the canonical witness names of one case.
func (g *Graph) witnessesOfCase(cnjID string) []string {
	c := g.cases[cnjID]
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, name := range c.TodasTestemunhas {
		key := normalize.CanonicalName(name)
		if key != "" && !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// linkedThrough reports whether a and b are linked by the given
// attorney: a testifies in one of adv's cases and b in a different
// one. Co-witnesses of a single case are not linked.
func (g *Graph) linkedThrough(a, b, adv string) bool {
	pool := g.byAttorney[adv]
	if pool == nil {
		return false
	}
	var casesA, casesB []string
	for _, app := range g.byWitness[a] {
		if pool[app.CNJ] {
			casesA = append(casesA, app.CNJ)
		}
	}
	for _, app := range g.byWitness[b] {
		if pool[app.CNJ] {
			casesB = append(casesB, app.CNJ)
		}
	}
	for _, ca := range casesA {
		for _, cb := range casesB {
			if ca != cb {
				return true
			}
		}
	}
	return false
}

// sharedAttorneys returns the attorneys g through whom a and b are
// linked: g represents a case where a testifies and a different case
// where b testifies. Two witnesses inside the same single case do not
// count as linked.
func (g *Graph) sharedAttorneys(a, b string) []string {
	byAdvA := make(map[string]map[string]bool) // attorney -> CNJs of a
	for _, app := range g.byWitness[a] {
		for _, adv := range app.Advogados {
			if byAdvA[adv] == nil {
				byAdvA[adv] = make(map[string]bool)
			}
			byAdvA[adv][app.CNJ] = true
		}
	}

	shared := make(map[string]bool)
	for _, app := range g.byWitness[b] {
		for _, adv := range app.Advogados {
			cnjsA := byAdvA[adv]
			if cnjsA == nil {
				continue
			}
			// Require at least one pair of distinct cases.
			for cnjA := range cnjsA {
				if cnjA != app.CNJ {
					shared[adv] = true
					break
				}
			}
		}
	}

	out := make([]string, 0, len(shared))
	for adv := range shared {
		out = append(out, adv)
	}
	sort.Strings(out)
	return out
}
