// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package record

// Side identifies which pole of a case a witness testified for.
type Side string

const (
	SideAtivo   Side = "ativo"
	SidePassivo Side = "passivo"
)

// CaseRecord is the canonical representation of one judicial case ("Processo").
// It is created by the row normalizer and annotated, after the whole batch is
// normalized, by the pattern detector. All list fields hold trimmed,
// non-empty strings.
type CaseRecord struct {
	// Identity. CNJ holds the cleaned 20-digit number; CNJFormatado the
	// display form NNNNNNN-DD.AAAA.J.TR.OOOO.
	CNJ          string `json:"cnj"`
	CNJFormatado string `json:"cnj_formatado,omitempty"`

	// Jurisdiction.
	UF       string `json:"uf"`
	Comarca  string `json:"comarca"`
	Tribunal string `json:"tribunal,omitempty"`
	Vara     string `json:"vara,omitempty"`

	// Lifecycle.
	Fase   string `json:"fase,omitempty"`
	Status string `json:"status"`

	// Parties.
	ReclamanteNome  string `json:"reclamante_nome"`
	ReuNome         string `json:"reu_nome"`
	ReclamanteCPF   string `json:"reclamante_cpf,omitempty"`
	ReclamanteEmail string `json:"reclamante_email,omitempty"`

	// Attorneys of record, per side.
	AdvogadosAtivo   []string `json:"advogados_ativo"`
	AdvogadosPassivo []string `json:"advogados_passivo,omitempty"`

	// Witness lists, per side. TodasTestemunhas is always the deduplicated
	// union of the two side lists.
	TestemunhasAtivo   []string `json:"testemunhas_ativo"`
	TestemunhasPassivo []string `json:"testemunhas_passivo"`
	TodasTestemunhas   []string `json:"todas_testemunhas"`

	// Optional corroborating data.
	DataAudiencia string   `json:"data_audiencia,omitempty"` // yyyy-MM-dd
	Classificacao string   `json:"classificacao"`
	ScoreRisco    *float64 `json:"score_risco,omitempty"`

	// Normalization provenance.
	Sheet string `json:"sheet,omitempty"`
	Row   int    `json:"row,omitempty"`

	// Headers the synonym resolver could not map, preserved verbatim.
	Unmapped map[string]string `json:"unmapped,omitempty"`

	// Quality metrics computed at normalization time.
	Quality DataQualityMetrics `json:"quality"`

	// FinalValid reports whether the CNJ passed final-mode validation.
	// Only final-valid records participate in pattern detection.
	FinalValid bool `json:"final_valid"`

	// Annotations written by the pattern detector; nil until detection ran.
	Padroes *CaseAnnotation `json:"padroes,omitempty"`
}

// WitnessRecord is the canonical representation of one witness
// ("Testemunha"). Identity is the accent-folded, case-folded,
// whitespace-collapsed name; no surrogate id is assigned here.
type WitnessRecord struct {
	Nome         string `json:"nome_testemunha"`
	NomeCanonico string `json:"nome_canonico"`

	QtdDepoimentos int `json:"qtd_depoimentos"`

	CNJsComoTestemunha        []string `json:"cnjs_como_testemunha"`
	CNJsComoTestemunhaAtivo   []string `json:"cnjs_como_testemunha_ativo,omitempty"`
	CNJsComoTestemunhaPassivo []string `json:"cnjs_como_testemunha_passivo,omitempty"`

	JaFoiReclamante           bool `json:"ja_foi_reclamante"`
	FoiTestemunhaEmAmbosPolos bool `json:"foi_testemunha_em_ambos_polos"`

	Sheet string `json:"sheet,omitempty"`
	Row   int    `json:"row,omitempty"`

	Unmapped map[string]string `json:"unmapped,omitempty"`

	Quality DataQualityMetrics `json:"quality"`

	// Annotations written by the pattern detector; nil until detection ran.
	Padroes *WitnessAnnotation `json:"padroes,omitempty"`
}

// DataQualityMetrics summarizes how trustworthy one normalized row is.
// All three scores are in [0,1].
type DataQualityMetrics struct {
	Confidence    float64  `json:"confidence"`
	Completeness  float64  `json:"completeness"`
	Consistency   float64  `json:"consistency"`
	MissingFields []string `json:"missing_fields,omitempty"`
}
