// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package record

// Tier is the risk classification ladder applied to scored cases.
type Tier string

const (
	TierCritico Tier = "CRITICO"
	TierAlto    Tier = "ALTO"
	TierMedio   Tier = "MEDIO"
	TierBaixo   Tier = "BAIXO"
	TierMinimo  Tier = "MINIMO"
)

// Probability buckets used by homonym detection.
type Probability string

const (
	ProbBaixa Probability = "BAIXA"
	ProbMedia Probability = "MEDIA"
	ProbAlta  Probability = "ALTA"
)

// Pattern names every pattern class the detector can flag.
type Pattern string

const (
	PatternDuploPapel      Pattern = "DUPLO_PAPEL"
	PatternProvaEmprestada Pattern = "PROVA_EMPRESTADA"
	PatternTrocaDireta     Pattern = "TROCA_DIRETA"
	PatternTriangulacao    Pattern = "TRIANGULACAO"
	PatternHomonimo        Pattern = "HOMONIMO"
)

// AllPatterns lists the pattern classes in scoring-weight order.
var AllPatterns = []Pattern{
	PatternDuploPapel,
	PatternProvaEmprestada,
	PatternTrocaDireta,
	PatternTriangulacao,
	PatternHomonimo,
}

// ScoreComponent is one audited term of a case score: the raw indicator,
// the configured weight and the weighted contribution to the total.
type ScoreComponent struct {
	Pattern   Pattern `json:"pattern"`
	Detected  bool    `json:"detected"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
	Rationale string  `json:"rationale,omitempty"`
}

// ScoreBreakdown exposes the full weighted-sum audit trail for one case.
// The weighted components always sum to Total.
type ScoreBreakdown struct {
	Components []ScoreComponent `json:"components"`
	Total      float64          `json:"total"` // 0-100
	Tier       Tier             `json:"tier"`
}

// CaseAnnotation holds the derived fields the pattern detector attaches
// to a case. It is additive: the normalizer never writes these fields.
type CaseAnnotation struct {
	TrocaDireta      bool     `json:"troca_direta"`
	DesenhoTroca     string   `json:"desenho_troca,omitempty"`
	CNJsTrocaDireta  []string `json:"cnjs_troca_direta,omitempty"`
	TestemunhasTroca []string `json:"testemunhas_troca,omitempty"`
	AdvogadosTroca   []string `json:"advogados_troca,omitempty"`

	Triangulacao         bool     `json:"triangulacao"`
	DesenhoTriangulacao  string   `json:"desenho_triangulacao,omitempty"`
	CNJsTriangulacao     []string `json:"cnjs_triangulacao,omitempty"`
	CicloTriangulacao    []string `json:"ciclo_triangulacao,omitempty"`
	ComarcasTriangulacao []string `json:"comarcas_triangulacao,omitempty"`

	DuploPapel     bool     `json:"duplo_papel"`
	NomesDuplo     []string `json:"nomes_duplo_papel,omitempty"`
	CNJsDuploPapel []string `json:"cnjs_duplo_papel,omitempty"`

	ProvaEmprestada  bool     `json:"prova_emprestada"`
	TestemunhasProva []string `json:"testemunhas_prova_emprestada,omitempty"`

	Homonimo              bool        `json:"homonimo"`
	ProbabilidadeHomonimo Probability `json:"probabilidade_homonimo,omitempty"`
	NomesHomonimo         []string    `json:"nomes_homonimo,omitempty"`

	Score ScoreBreakdown `json:"score"`

	// ClassificacaoFinal mirrors Score.Tier; it is always derived, never
	// set directly.
	ClassificacaoFinal Tier `json:"classificacao_final"`
}

// Detected reports whether the given pattern class fired for this case.
func (a *CaseAnnotation) Detected(p Pattern) bool {
	if a == nil {
		return false
	}
	switch p {
	case PatternDuploPapel:
		return a.DuploPapel
	case PatternProvaEmprestada:
		return a.ProvaEmprestada
	case PatternTrocaDireta:
		return a.TrocaDireta
	case PatternTriangulacao:
		return a.Triangulacao
	case PatternHomonimo:
		return a.Homonimo
	}
	return false
}

// WitnessAnnotation holds the derived fields attached to a witness.
type WitnessAnnotation struct {
	ParticipouTrocaDireta    bool        `json:"participou_troca_direta"`
	ParticipouTriangulacao   bool        `json:"participou_triangulacao"`
	EProvaEmprestada         bool        `json:"e_prova_emprestada"`
	DuploPapel               bool        `json:"duplo_papel"`
	ProbabilidadeHomonimo    Probability `json:"probabilidade_homonimo,omitempty"`
	ClassificacaoEstrategica Tier        `json:"classificacao_estrategica"`
}

// TrocaDireta describes one reciprocal witness pair.
type TrocaDireta struct {
	TestemunhaA     string   `json:"testemunha_a"`
	TestemunhaB     string   `json:"testemunha_b"`
	CNJsA           []string `json:"cnjs_a"`
	CNJsB           []string `json:"cnjs_b"`
	AdvogadosComuns []string `json:"advogados_comuns"`
	Desenho         string   `json:"desenho"`
}

// Triangulacao describes one witness cycle of length >= 3.
type Triangulacao struct {
	Ciclo     []string `json:"ciclo"`
	CNJs      []string `json:"cnjs"`
	Advogados []string `json:"advogados"`
	Comarcas  []string `json:"comarcas"`
	Desenho   string   `json:"desenho"`
}

// DuploPapel describes one person acting as both claimant and witness.
type DuploPapel struct {
	Nome               string   `json:"nome"`
	CNJsComoReclamante []string `json:"cnjs_como_reclamante"`
	CNJsComoTestemunha []string `json:"cnjs_como_testemunha"`
	PoloPassivo        bool     `json:"polo_passivo"`
	Risco              Tier     `json:"risco"`
}

// ProvaEmprestada describes one suspected professional witness.
type ProvaEmprestada struct {
	Nome                 string   `json:"nome"`
	QtdDepoimentos       int      `json:"qtd_depoimentos"`
	CNJs                 []string `json:"cnjs"`
	AdvogadosRecorrentes []string `json:"advogados_recorrentes"`
	ConcentracaoComarca  float64  `json:"concentracao_comarca"`
	Alerta               bool     `json:"alerta"`
}

// Homonimo describes one name whose appearances suggest distinct people.
type Homonimo struct {
	Nome          string      `json:"nome"`
	Score         float64     `json:"score"`
	Probabilidade Probability `json:"probabilidade"`
	Fatores       []string    `json:"fatores,omitempty"`
	CNJs          []string    `json:"cnjs"`
}

// PadroesAgregados is the batch-level pattern summary.
type PadroesAgregados struct {
	TotalProcessos     int            `json:"total_processos"`
	TotalTestemunhas   int            `json:"total_testemunhas"`
	TrocasDiretas      int            `json:"trocas_diretas"`
	Triangulacoes      int            `json:"triangulacoes"`
	DuplosPapeis       int            `json:"duplos_papeis"`
	ProvasEmprestadas  int            `json:"provas_emprestadas"`
	Homonimos          int            `json:"homonimos"`
	AdvogadosOfensores []string       `json:"advogados_ofensores,omitempty"`
	ConcentracaoPorUF  map[string]int `json:"concentracao_por_uf,omitempty"`
}

// PatternResult is the full additive output of one detector run.
type PatternResult struct {
	Cases     map[string]*CaseAnnotation    `json:"cases"`     // keyed by CNJ
	Witnesses map[string]*WitnessAnnotation `json:"witnesses"` // keyed by canonical name

	TrocasDiretas     []TrocaDireta     `json:"trocas_diretas,omitempty"`
	Triangulacoes     []Triangulacao    `json:"triangulacoes,omitempty"`
	DuplosPapeis      []DuploPapel      `json:"duplos_papeis,omitempty"`
	ProvasEmprestadas []ProvaEmprestada `json:"provas_emprestadas,omitempty"`
	Homonimos         []Homonimo        `json:"homonimos,omitempty"`

	Skipped []string `json:"skipped,omitempty"` // CNJs left out of the graph

	Agregados PadroesAgregados `json:"agregados"`
}
