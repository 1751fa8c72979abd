// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"fmt"
	"sort"
	"strings"

	"assistjur/internal/record"
)

// witnessEdge is one link of the witness-level relation: two witnesses
// testifying for distinct cases of the same attorney.
type witnessEdge struct {
	to        string
	advogados []string
}

// detectTriangulacao finds witness cycles of length >= 3 in the
// testifies-for-a-case-represented-by relation, by DFS with path
// tracking over the attorney-linked witness graph. Cycles are
// deduplicated by their canonical rotation.
func (d *Detector) detectTriangulacao(g *Graph) []record.Triangulacao {
	adj := d.buildWitnessAdjacency(g)

	maxLen := d.cfg.MaxCiclo
	if maxLen < 3 {
		maxLen = 3
	}

	seen := make(map[string]bool)
	var out []record.Triangulacao

	witnesses := g.Witnesses()
	for _, start := range witnesses {
		path := []string{start}
		onPath := map[string]bool{start: true}
		d.dfsCycles(g, adj, start, start, path, onPath, maxLen, seen, &out)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.Join(out[i].Ciclo, "|") < strings.Join(out[j].Ciclo, "|")
	})
	return out
}

// buildWitnessAdjacency projects the bipartite graph onto witnesses:
// an edge a->b exists when a and b are linked through any attorney.
// Built from the attorney index, not by scanning witness pairs.
func (d *Detector) buildWitnessAdjacency(g *Graph) map[string][]witnessEdge {
	linked := make(map[string]map[string]map[string]bool) // a -> b -> attorney set
	for _, adv := range g.attorneys() {
		names := g.witnessesOfAttorney(adv)
		if len(names) < 2 {
			continue
		}
		for i := 0; i < len(names); i++ {
			for j := 0; j < len(names); j++ {
				if i == j {
					continue
				}
				a, b := names[i], names[j]
				if !g.linkedThrough(a, b, adv) {
					continue
				}
				if linked[a] == nil {
					linked[a] = make(map[string]map[string]bool)
				}
				if linked[a][b] == nil {
					linked[a][b] = make(map[string]bool)
				}
				linked[a][b][adv] = true
			}
		}
	}

	adj := make(map[string][]witnessEdge, len(linked))
	for a, targets := range linked {
		for b, advs := range targets {
			edge := witnessEdge{to: b}
			for adv := range advs {
				edge.advogados = append(edge.advogados, adv)
			}
			sort.Strings(edge.advogados)
			adj[a] = append(adj[a], edge)
		}
		sort.Slice(adj[a], func(i, j int) bool { return adj[a][i].to < adj[a][j].to })
	}
	return adj
}

// dfsCycles walks simple paths from start; closing back onto start
// with length >= 3 yields one cycle.
func (d *Detector) dfsCycles(g *Graph, adj map[string][]witnessEdge, start, current string,
	path []string, onPath map[string]bool, maxLen int, seen map[string]bool, out *[]record.Triangulacao) {

	for _, edge := range adj[current] {
		if edge.to == start && len(path) >= 3 {
			d.emitCycle(g, adj, path, seen, out)
			continue
		}
		// Only expand toward lexicographically larger names than the
		// start node, so every cycle is discovered exactly once from
		// its smallest member.
		if edge.to <= start || onPath[edge.to] || len(path) >= maxLen {
			continue
		}
		onPath[edge.to] = true
		d.dfsCycles(g, adj, start, edge.to, append(path, edge.to), onPath, maxLen, seen, out)
		delete(onPath, edge.to)
	}
}

func (d *Detector) emitCycle(g *Graph, adj map[string][]witnessEdge, path []string, seen map[string]bool, out *[]record.Triangulacao) {
	key := cycleKey(path)
	if seen[key] {
		return
	}
	seen[key] = true

	advSet := make(map[string]bool)
	cnjSet := make(map[string]bool)
	comarcaSet := make(map[string]bool)
	display := make([]string, 0, len(path))

	for i, name := range path {
		display = append(display, g.Display(name))
		next := path[(i+1)%len(path)]
		for _, edge := range adj[name] {
			if edge.to != next {
				continue
			}
			for _, adv := range edge.advogados {
				advSet[adv] = true
			}
		}
		for _, app := range g.Appearances(name) {
			cnjSet[app.CNJ] = true
			if app.Comarca != "" {
				comarcaSet[app.Comarca] = true
			}
		}
	}

	tri := record.Triangulacao{
		Ciclo:    display,
		CNJs:     sortedKeys(cnjSet),
		Comarcas: sortedKeys(comarcaSet),
	}
	for adv := range advSet {
		tri.Advogados = append(tri.Advogados, g.AttorneyDisplay(adv))
	}
	sort.Strings(tri.Advogados)
	tri.Desenho = fmt.Sprintf("%s → %s (ciclo de %d testemunhas, advogados: %s, comarcas: %s)",
		strings.Join(display, " → "), display[0], len(display),
		strings.Join(tri.Advogados, ", "), strings.Join(tri.Comarcas, ", "))

	*out = append(*out, tri)
}

// cycleKey is the canonical form of a cycle: rotated so the smallest
// name comes first, direction-normalized.
func cycleKey(path []string) string {
	n := len(path)
	min := 0
	for i := 1; i < n; i++ {
		if path[i] < path[min] {
			min = i
		}
	}
	forward := make([]string, n)
	backward := make([]string, n)
	for i := 0; i < n; i++ {
		forward[i] = path[(min+i)%n]
		backward[i] = path[(min-i+n)%n]
	}
	f := strings.Join(forward, "|")
	b := strings.Join(backward, "|")
	if b < f {
		return b
	}
	return f
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
