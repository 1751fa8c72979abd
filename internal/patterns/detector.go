// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package patterns cross-references a normalized batch and flags the
// five collusion patterns tracked by the análise de testemunhas:
// troca direta, triangulação, duplo papel, prova emprestada and
// homônimos. Detection is additive: it annotates records, it never
// mutates the normalized fields.
package patterns

import (
	"sort"

	"assistjur/internal/normalize"
	"assistjur/internal/record"
)

// Detector runs the pattern analysis with one fixed configuration.
type Detector struct {
	cfg Config
}

// NewDetector validates the configuration and returns a detector.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg}, nil
}

// Detect builds the case-witness graph from the batch and runs the
// five detectors over it. Only cases that passed final CNJ validation
// enter the graph; the rest are reported in Skipped. Every graphed
// case receives an annotation and a score, even when nothing fired.
func (d *Detector) Detect(cases []record.CaseRecord, witnesses []record.WitnessRecord) *record.PatternResult {
	g := BuildGraph(cases)

	res := &record.PatternResult{
		Cases:     make(map[string]*record.CaseAnnotation, len(g.cases)),
		Witnesses: make(map[string]*record.WitnessAnnotation),
		Skipped:   g.skipped,
	}
	for _, cnjID := range g.order {
		res.Cases[cnjID] = &record.CaseAnnotation{}
	}

	res.TrocasDiretas = d.detectTrocaDireta(g)
	res.Triangulacoes = d.detectTriangulacao(g)
	res.DuplosPapeis = d.detectDuploPapel(g)
	res.ProvasEmprestadas = d.detectProvaEmprestada(g, witnesses)
	res.Homonimos = d.detectHomonimos(g)

	d.annotateTrocas(res)
	d.annotateTriangulacoes(res)
	d.annotateDuplosPapeis(res)
	d.annotateProvas(res)
	d.annotateHomonimos(res)

	for _, a := range res.Cases {
		a.Score = d.buildBreakdown(a)
		a.ClassificacaoFinal = a.Score.Tier
	}
	for _, w := range res.Witnesses {
		w.ClassificacaoEstrategica = witnessTier(w)
	}

	res.Agregados = d.aggregate(g, res)
	return res
}

func (d *Detector) annotateTrocas(res *record.PatternResult) {
	for _, t := range res.TrocasDiretas {
		for _, name := range []string{t.TestemunhaA, t.TestemunhaB} {
			w := witnessAnnotation(res, name)
			w.ParticipouTrocaDireta = true
		}
		cnjs := append(append([]string{}, t.CNJsA...), t.CNJsB...)
		for _, cnjID := range cnjs {
			a := res.Cases[cnjID]
			if a == nil {
				continue
			}
			a.TrocaDireta = true
			if a.DesenhoTroca == "" {
				a.DesenhoTroca = t.Desenho
			}
			a.CNJsTrocaDireta = mergeUnique(a.CNJsTrocaDireta, cnjs)
			a.TestemunhasTroca = mergeUnique(a.TestemunhasTroca, []string{t.TestemunhaA, t.TestemunhaB})
			a.AdvogadosTroca = mergeUnique(a.AdvogadosTroca, t.AdvogadosComuns)
		}
	}
}

func (d *Detector) annotateTriangulacoes(res *record.PatternResult) {
	for _, t := range res.Triangulacoes {
		for _, name := range t.Ciclo {
			witnessAnnotation(res, name).ParticipouTriangulacao = true
		}
		for _, cnjID := range t.CNJs {
			a := res.Cases[cnjID]
			if a == nil {
				continue
			}
			a.Triangulacao = true
			if a.DesenhoTriangulacao == "" {
				a.DesenhoTriangulacao = t.Desenho
			}
			a.CNJsTriangulacao = mergeUnique(a.CNJsTriangulacao, t.CNJs)
			a.CicloTriangulacao = mergeUnique(a.CicloTriangulacao, t.Ciclo)
			a.ComarcasTriangulacao = mergeUnique(a.ComarcasTriangulacao, t.Comarcas)
		}
	}
}

func (d *Detector) annotateDuplosPapeis(res *record.PatternResult) {
	for _, dp := range res.DuplosPapeis {
		witnessAnnotation(res, dp.Nome).DuploPapel = true
		cnjs := append(append([]string{}, dp.CNJsComoReclamante...), dp.CNJsComoTestemunha...)
		for _, cnjID := range cnjs {
			a := res.Cases[cnjID]
			if a == nil {
				continue
			}
			a.DuploPapel = true
			a.NomesDuplo = mergeUnique(a.NomesDuplo, []string{dp.Nome})
			a.CNJsDuploPapel = mergeUnique(a.CNJsDuploPapel, cnjs)
		}
	}
}

func (d *Detector) annotateProvas(res *record.PatternResult) {
	for _, p := range res.ProvasEmprestadas {
		witnessAnnotation(res, p.Nome).EProvaEmprestada = true
		for _, cnjID := range p.CNJs {
			a := res.Cases[cnjID]
			if a == nil {
				continue
			}
			a.ProvaEmprestada = true
			a.TestemunhasProva = mergeUnique(a.TestemunhasProva, []string{p.Nome})
		}
	}
}

func (d *Detector) annotateHomonimos(res *record.PatternResult) {
	for _, h := range res.Homonimos {
		w := witnessAnnotation(res, h.Nome)
		if probRank(h.Probabilidade) > probRank(w.ProbabilidadeHomonimo) {
			w.ProbabilidadeHomonimo = h.Probabilidade
		}
		for _, cnjID := range h.CNJs {
			a := res.Cases[cnjID]
			if a == nil {
				continue
			}
			a.Homonimo = true
			if probRank(h.Probabilidade) > probRank(a.ProbabilidadeHomonimo) {
				a.ProbabilidadeHomonimo = h.Probabilidade
			}
			a.NomesHomonimo = mergeUnique(a.NomesHomonimo, []string{h.Nome})
		}
	}
}

func (d *Detector) aggregate(g *Graph, res *record.PatternResult) record.PadroesAgregados {
	agg := record.PadroesAgregados{
		TotalProcessos:    len(g.cases),
		TotalTestemunhas:  len(g.byWitness),
		TrocasDiretas:     len(res.TrocasDiretas),
		Triangulacoes:     len(res.Triangulacoes),
		DuplosPapeis:      len(res.DuplosPapeis),
		ProvasEmprestadas: len(res.ProvasEmprestadas),
		Homonimos:         len(res.Homonimos),
	}

	ofensores := make(map[string]bool)
	for _, t := range res.TrocasDiretas {
		for _, adv := range t.AdvogadosComuns {
			ofensores[adv] = true
		}
	}
	for _, t := range res.Triangulacoes {
		for _, adv := range t.Advogados {
			ofensores[adv] = true
		}
	}
	agg.AdvogadosOfensores = sortedKeys(ofensores)

	porUF := make(map[string]int)
	for cnjID, a := range res.Cases {
		if a.Score.Total <= 0 {
			continue
		}
		c := g.cases[cnjID]
		if c == nil || c.UF == "" {
			continue
		}
		porUF[c.UF]++
	}
	if len(porUF) > 0 {
		agg.ConcentracaoPorUF = porUF
	}
	return agg
}

// witnessAnnotation returns (creating if needed) the annotation for a
// display name, keyed by its canonical form.
func witnessAnnotation(res *record.PatternResult, name string) *record.WitnessAnnotation {
	key := normalize.CanonicalName(name)
	w := res.Witnesses[key]
	if w == nil {
		w = &record.WitnessAnnotation{}
		res.Witnesses[key] = w
	}
	return w
}

func witnessTier(w *record.WitnessAnnotation) record.Tier {
	flags := 0
	for _, f := range []bool{w.ParticipouTrocaDireta, w.ParticipouTriangulacao, w.EProvaEmprestada, w.DuploPapel} {
		if f {
			flags++
		}
	}
	switch {
	case flags >= 3:
		return record.TierCritico
	case flags == 2:
		return record.TierAlto
	case flags == 1:
		return record.TierMedio
	case w.ProbabilidadeHomonimo == record.ProbAlta:
		return record.TierBaixo
	default:
		return record.TierMinimo
	}
}

func probRank(p record.Probability) int {
	switch p {
	case record.ProbAlta:
		return 3
	case record.ProbMedia:
		return 2
	case record.ProbBaixa:
		return 1
	}
	return 0
}

func mergeUnique(dst, add []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range add {
		if s != "" && !seen[s] {
			seen[s] = true
			dst = append(dst, s)
		}
	}
	sort.Strings(dst)
	return dst
}
