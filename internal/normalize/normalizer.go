// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"fmt"
	"strings"

	"assistjur/internal/cnj"
	"assistjur/internal/record"
)

// Defaults applied when a lifecycle field is missing.
const (
	DefaultStatus        = "Em andamento"
	DefaultClassificacao = "Normal"
)

// requiredCaseFields and requiredWitnessFields are the fixed
// required-field sets per record type.
var requiredCaseFields = []string{
	"cnj", "uf", "comarca", "reclamante_nome", "reu_nome",
	"advogados_ativo", "todas_testemunhas",
}

var requiredWitnessFields = []string{
	"nome_testemunha", "qtd_depoimentos", "cnjs_como_testemunha",
}

// criticalFields earn a +0.05 confidence bonus each when present.
var criticalFields = []string{"cnj", "reclamante_nome", "status", "classificacao"}

const criticalFieldBonus = 0.05

// Normalizer turns resolved rows into canonical records plus quality
// metrics. It never fails: bad rows come out with low confidence and
// error-severity issues instead of being dropped.
type Normalizer struct {
	resolver *Resolver
}

// NewNormalizer builds a normalizer over the given resolver.
func NewNormalizer(resolver *Resolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// Resolver exposes the underlying resolver (used by the pipeline to
// pre-scan headers).
func (n *Normalizer) Resolver() *Resolver { return n.resolver }

// NormalizeCase converts one raw "Por Processo" row.
func (n *Normalizer) NormalizeCase(sheet string, rowNum int, raw map[string]any) (record.CaseRecord, []record.ValidationIssue) {
	mapped := n.resolver.MapRow(raw)
	issues := n.commonIssues(sheet, rowNum, mapped)

	rec := record.CaseRecord{
		Sheet:    sheet,
		Row:      rowNum,
		Unmapped: mapped.Unmapped,
	}

	// Identifier: correction-mode validation first, then the repair
	// heuristics, then strict final validation.
	rawCNJ, hasCNJ := Cell(mapped.Fields["cnj"])
	if hasCNJ {
		corr := cnj.Correct(rawCNJ)
		switch corr.Status {
		case cnj.NoCorrectionNeeded:
			rec.CNJ = corr.Value
		case cnj.Corrected:
			rec.CNJ = corr.Value
			issues = append(issues, record.ValidationIssue{
				Sheet: sheet, Row: rowNum, Column: "cnj",
				Severity: record.SeverityWarning,
				Rule:     "cnj_corrigido",
				Message:  fmt.Sprintf("CNJ corrigido (%s, confiança %.2f)", corr.Method, corr.Confidence),
				Original: rawCNJ,
				Fixed:    corr.Formatted,
			})
		case cnj.Unrecoverable:
			// Keep the correction-mode best effort so the value is not
			// lost, but the record cannot become final-valid.
			res := cnj.Validate(rawCNJ, cnj.ModeCorrection)
			rec.CNJ = res.Cleaned
			issues = append(issues, record.ValidationIssue{
				Sheet: sheet, Row: rowNum, Column: "cnj",
				Severity: record.SeverityError,
				Rule:     "cnj_irrecuperavel",
				Message:  corr.Reason,
				Original: rawCNJ,
			})
		}
		if final := cnj.Validate(rec.CNJ, cnj.ModeFinal); final.IsValid {
			rec.CNJFormatado = final.Formatted
			rec.FinalValid = true
		} else if corr.Status != cnj.Unrecoverable {
			issues = append(issues, record.ValidationIssue{
				Sheet: sheet, Row: rowNum, Column: "cnj",
				Severity: record.SeverityError,
				Rule:     "cnj_invalido",
				Message:  strings.Join(final.Errors, "; "),
				Original: rawCNJ,
			})
		}
	}

	rec.UF = strings.ToUpper(CellOrDefault(mapped.Fields["uf"], ""))
	rec.Comarca = CellOrDefault(mapped.Fields["comarca"], "")
	rec.Tribunal = CellOrDefault(mapped.Fields["tribunal"], "")
	rec.Vara = CellOrDefault(mapped.Fields["vara"], "")
	rec.Fase = CellOrDefault(mapped.Fields["fase"], "")
	rec.Status = CellOrDefault(mapped.Fields["status"], DefaultStatus)
	rec.ReclamanteNome = CellOrDefault(mapped.Fields["reclamante_nome"], "")
	rec.ReuNome = CellOrDefault(mapped.Fields["reu_nome"], "")
	rec.ReclamanteCPF = CellOrDefault(mapped.Fields["reclamante_cpf"], "")

	rec.AdvogadosAtivo = ParseList(mapped.Fields["advogados_ativo"])
	rec.AdvogadosPassivo = ParseList(mapped.Fields["advogados_passivo"])
	rec.TestemunhasAtivo = ParseList(mapped.Fields["testemunhas_ativo"])
	rec.TestemunhasPassivo = ParseList(mapped.Fields["testemunhas_passivo"])

	// TodasTestemunhas is the deduplicated union of the side lists.
	// Names that only appear in a provided "todas" column are kept too
	// (no data loss), so sides ⊆ todas always holds.
	rec.TodasTestemunhas = UnionLists(
		rec.TestemunhasAtivo,
		rec.TestemunhasPassivo,
		ParseList(mapped.Fields["todas_testemunhas"]),
	)

	if rawDate, ok := Cell(mapped.Fields["data_audiencia"]); ok {
		fix := FixDate(rawDate)
		switch fix.Status {
		case DateCanonical:
			rec.DataAudiencia = fix.Value
		case DateFixed:
			rec.DataAudiencia = fix.Value
			issues = append(issues, record.ValidationIssue{
				Sheet: sheet, Row: rowNum, Column: "data_audiencia",
				Severity: record.SeverityInfo,
				Rule:     "data_corrigida",
				Message:  fmt.Sprintf("data normalizada de %s (confiança %.2f)", fix.Format, fix.Confidence),
				Original: rawDate,
				Fixed:    fix.Value,
			})
		case DateUnparseable:
			issues = append(issues, record.ValidationIssue{
				Sheet: sheet, Row: rowNum, Column: "data_audiencia",
				Severity: record.SeverityWarning,
				Rule:     "data_invalida",
				Message:  "formato de data não reconhecido",
				Original: rawDate,
			})
		}
	}

	if score, ok := ParseNumber(mapped.Fields["score_risco"]); ok {
		rec.ScoreRisco = &score
	}
	rec.Classificacao = NormalizeClassificacao(rec.ScoreRisco, CellOrDefault(mapped.Fields["classificacao"], ""))

	// Required-field audit.
	missing := n.missingFields(mapped.Fields, requiredCaseFields, map[string]bool{
		"todas_testemunhas": len(rec.TodasTestemunhas) > 0,
		"advogados_ativo":   len(rec.AdvogadosAtivo) > 0,
	})
	for _, field := range missing {
		issues = append(issues, record.ValidationIssue{
			Sheet: sheet, Row: rowNum, Column: field,
			Severity: record.SeverityError,
			Rule:     "campo_obrigatorio_ausente",
			Message:  fmt.Sprintf("campo obrigatório %q ausente", field),
		})
	}

	rec.Quality = n.quality(mapped.Fields, requiredCaseFields, missing, consistencySignals{
		hasWitnesses:   len(rec.TodasTestemunhas) > 0,
		hasHearingDate: rec.DataAudiencia != "",
	})

	if hasErrors(issues) {
		rec.FinalValid = false
	}
	return rec, issues
}

// NormalizeWitness converts one raw "Por Testemunha" row.
func (n *Normalizer) NormalizeWitness(sheet string, rowNum int, raw map[string]any) (record.WitnessRecord, []record.ValidationIssue) {
	mapped := n.resolver.MapRow(raw)
	issues := n.commonIssues(sheet, rowNum, mapped)

	rec := record.WitnessRecord{
		Sheet:    sheet,
		Row:      rowNum,
		Unmapped: mapped.Unmapped,
	}

	rec.Nome = CellOrDefault(mapped.Fields["nome_testemunha"], "")
	rec.NomeCanonico = CanonicalName(rec.Nome)

	rec.CNJsComoTestemunhaAtivo = n.cleanCNJList(sheet, rowNum, "cnjs_como_testemunha_ativo", mapped.Fields["cnjs_como_testemunha_ativo"], &issues)
	rec.CNJsComoTestemunhaPassivo = n.cleanCNJList(sheet, rowNum, "cnjs_como_testemunha_passivo", mapped.Fields["cnjs_como_testemunha_passivo"], &issues)
	all := n.cleanCNJList(sheet, rowNum, "cnjs_como_testemunha", mapped.Fields["cnjs_como_testemunha"], &issues)
	rec.CNJsComoTestemunha = UnionLists(rec.CNJsComoTestemunhaAtivo, rec.CNJsComoTestemunhaPassivo, all)

	// Invariant: qtd_depoimentos equals the deduplicated CNJ count.
	declared, hasQtd := ParseNumber(mapped.Fields["qtd_depoimentos"])
	if len(rec.CNJsComoTestemunha) > 0 {
		rec.QtdDepoimentos = len(rec.CNJsComoTestemunha)
		if hasQtd && int(declared) != rec.QtdDepoimentos {
			issues = append(issues, record.ValidationIssue{
				Sheet: sheet, Row: rowNum, Column: "qtd_depoimentos",
				Severity: record.SeverityWarning,
				Rule:     "qtd_depoimentos_divergente",
				Message:  fmt.Sprintf("declarado %d, recalculado %d a partir da lista de CNJs", int(declared), rec.QtdDepoimentos),
				Original: fmt.Sprintf("%d", int(declared)),
				Fixed:    fmt.Sprintf("%d", rec.QtdDepoimentos),
			})
		}
	} else if hasQtd {
		rec.QtdDepoimentos = int(declared)
	}

	rec.JaFoiReclamante = ParseBool(mapped.Fields["ja_foi_reclamante"])
	rec.FoiTestemunhaEmAmbosPolos = ParseBool(mapped.Fields["foi_testemunha_em_ambos_polos"]) ||
		(len(rec.CNJsComoTestemunhaAtivo) > 0 && len(rec.CNJsComoTestemunhaPassivo) > 0)

	missing := n.missingFields(mapped.Fields, requiredWitnessFields, map[string]bool{
		"cnjs_como_testemunha": len(rec.CNJsComoTestemunha) > 0,
		"qtd_depoimentos":      rec.QtdDepoimentos > 0,
	})
	for _, field := range missing {
		issues = append(issues, record.ValidationIssue{
			Sheet: sheet, Row: rowNum, Column: field,
			Severity: record.SeverityError,
			Rule:     "campo_obrigatorio_ausente",
			Message:  fmt.Sprintf("campo obrigatório %q ausente", field),
		})
	}

	rec.Quality = n.quality(mapped.Fields, requiredWitnessFields, missing, consistencySignals{
		hasWitnesses:   len(rec.CNJsComoTestemunha) > 0,
		hasHearingDate: false,
	})
	return rec, issues
}

// commonIssues reports unmapped headers and advisory type mismatches.
func (n *Normalizer) commonIssues(sheet string, rowNum int, mapped MappedRow) []record.ValidationIssue {
	var issues []record.ValidationIssue
	for header := range mapped.Unmapped {
		issues = append(issues, record.ValidationIssue{
			Sheet: sheet, Row: rowNum, Column: header,
			Severity: record.SeverityWarning,
			Rule:     "coluna_nao_mapeada",
			Message:  fmt.Sprintf("coluna %q não reconhecida; valor preservado", header),
		})
	}
	for canonical, value := range mapped.Fields {
		if err := n.resolver.ValidateType(canonical, value); err != nil {
			issues = append(issues, record.ValidationIssue{
				Sheet: sheet, Row: rowNum, Column: canonical,
				Severity: record.SeverityWarning,
				Rule:     "tipo_invalido",
				Message:  err.Error(),
			})
		}
	}
	return issues
}

// cleanCNJList parses a list cell and runs every element through
// correction-mode cleaning, flagging elements that cannot be carried.
func (n *Normalizer) cleanCNJList(sheet string, rowNum int, column string, value any, issues *[]record.ValidationIssue) []string {
	raw := ParseList(value)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		res := cnj.Validate(item, cnj.ModeCorrection)
		if !res.IsValid {
			*issues = append(*issues, record.ValidationIssue{
				Sheet: sheet, Row: rowNum, Column: column,
				Severity: record.SeverityWarning,
				Rule:     "cnj_lista_invalido",
				Message:  strings.Join(res.Errors, "; "),
				Original: item,
			})
			continue
		}
		out = append(out, res.Cleaned)
	}
	return out
}

// missingFields returns the required fields that are absent. overrides
// lets list-typed fields count as present when their parsed form is
// non-empty even if the raw cell came from another column.
func (n *Normalizer) missingFields(fields map[string]any, required []string, overrides map[string]bool) []string {
	var missing []string
	for _, field := range required {
		if present, ok := overrides[field]; ok {
			if !present {
				missing = append(missing, field)
			}
			continue
		}
		if _, ok := Cell(fields[field]); !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

type consistencySignals struct {
	hasWitnesses   bool
	hasHearingDate bool
}

// quality computes the per-row DataQualityMetrics.
//
// confidence = validRequired/required, plus +0.05 for each present
// critical field, capped at 1.0. Adding a previously missing required
// field can only raise it.
func (n *Normalizer) quality(fields map[string]any, required []string, missing []string, signals consistencySignals) record.DataQualityMetrics {
	requiredCount := len(required)
	validCount := requiredCount - len(missing)

	confidence := float64(validCount) / float64(requiredCount)
	for _, field := range criticalFields {
		if _, ok := Cell(fields[field]); ok {
			confidence += criticalFieldBonus
		}
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	completeness := 1.0 - float64(len(missing))/float64(requiredCount)

	// Plausibility heuristic: corroborating fields nudge consistency up
	// toward 1.0 from a conservative base.
	consistency := 0.85
	if signals.hasWitnesses {
		consistency += 0.10
	}
	if signals.hasHearingDate {
		consistency += 0.05
	}
	if consistency > 1.0 {
		consistency = 1.0
	}

	return record.DataQualityMetrics{
		Confidence:    confidence,
		Completeness:  completeness,
		Consistency:   consistency,
		MissingFields: missing,
	}
}

// NormalizeClassificacao derives the display classification. A numeric
// risk score takes precedence via the threshold ladder; otherwise the
// raw string is keyword-matched; otherwise the default applies.
func NormalizeClassificacao(score *float64, raw string) string {
	if score != nil {
		switch {
		case *score >= 85:
			return "Crítico"
		case *score >= 70:
			return "Alto"
		case *score >= 50:
			return "Médio"
		default:
			return "Baixo"
		}
	}
	if raw == "" {
		return DefaultClassificacao
	}
	folded := CanonicalName(raw)
	switch {
	case strings.Contains(folded, "critic"):
		return "Crítico"
	case strings.Contains(folded, "alto") || strings.Contains(folded, "high"):
		return "Alto"
	case strings.Contains(folded, "medio") || strings.Contains(folded, "medium"):
		return "Médio"
	case strings.Contains(folded, "baixo") || strings.Contains(folded, "low"):
		return "Baixo"
	}
	return raw
}

func hasErrors(issues []record.ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == record.SeverityError {
			return true
		}
	}
	return false
}
