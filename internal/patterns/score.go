// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"fmt"

	"assistjur/internal/record"
)

// TierFor buckets a 0-100 score with strict lower-bound semantics:
// exactly 85 is CRITICO, 84.999 is ALTO.
func TierFor(total float64) record.Tier {
	switch {
	case total >= 85:
		return record.TierCritico
	case total >= 70:
		return record.TierAlto
	case total >= 50:
		return record.TierMedio
	case total >= 30:
		return record.TierBaixo
	default:
		return record.TierMinimo
	}
}

// buildBreakdown computes the audited weighted sum for one case from
// its pattern flags. Every component is reported, fired or not, so a
// reviewer can see exactly which pattern drove the number.
func (d *Detector) buildBreakdown(a *record.CaseAnnotation) record.ScoreBreakdown {
	breakdown := record.ScoreBreakdown{
		Components: make([]record.ScoreComponent, 0, len(record.AllPatterns)),
	}
	total := 0.0
	for _, p := range record.AllPatterns {
		weight := d.cfg.Weights[p]
		comp := record.ScoreComponent{
			Pattern:  p,
			Detected: a.Detected(p),
			Weight:   weight,
		}
		if comp.Detected {
			comp.Weighted = weight * 100
			comp.Rationale = rationaleFor(p, a)
		}
		total += comp.Weighted
		breakdown.Components = append(breakdown.Components, comp)
	}
	breakdown.Total = total
	breakdown.Tier = TierFor(total)
	return breakdown
}

func rationaleFor(p record.Pattern, a *record.CaseAnnotation) string {
	switch p {
	case record.PatternTrocaDireta:
		return a.DesenhoTroca
	case record.PatternTriangulacao:
		return a.DesenhoTriangulacao
	case record.PatternDuploPapel:
		return fmt.Sprintf("reclamante e testemunha: %v", a.NomesDuplo)
	case record.PatternProvaEmprestada:
		return fmt.Sprintf("testemunhas recorrentes: %v", a.TestemunhasProva)
	case record.PatternHomonimo:
		return fmt.Sprintf("possíveis homônimos (%s): %v", a.ProbabilidadeHomonimo, a.NomesHomonimo)
	}
	return ""
}
