// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"assistjur/internal/record"
)

// CSVFormatter renders one row per case for spreadsheet review.
type CSVFormatter struct{}

// NewCSVFormatter creates the CSV formatter.
func NewCSVFormatter() *CSVFormatter { return &CSVFormatter{} }

func (f *CSVFormatter) Name() string { return "csv" }

func (f *CSVFormatter) Description() string {
	return "Uma linha por processo, para revisão em planilha"
}

func (f *CSVFormatter) FileExtension() string { return ".csv" }

var csvHeader = []string{
	"cnj", "uf", "comarca", "reclamante", "reu",
	"testemunhas", "classificacao_final", "score",
	"troca_direta", "triangulacao", "duplo_papel", "prova_emprestada", "homonimo",
	"insight",
}

func (f *CSVFormatter) Format(rep *record.ValidationReport, options Options) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, c := range flaggedCases(rep, options) {
		if err := w.Write(caseRow(c)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("falha ao gerar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func caseRow(c record.CaseRecord) []string {
	tier := string(record.TierMinimo)
	score := 0.0
	flags := [5]bool{}
	insight := ""
	if a := c.Padroes; a != nil {
		tier = string(a.ClassificacaoFinal)
		score = a.Score.Total
		flags = [5]bool{a.TrocaDireta, a.Triangulacao, a.DuploPapel, a.ProvaEmprestada, a.Homonimo}
		insight = firstNonEmpty(a.DesenhoTroca, a.DesenhoTriangulacao)
	}
	return []string{
		c.CNJFormatado,
		c.UF,
		c.Comarca,
		c.ReclamanteNome,
		c.ReuNome,
		strings.Join(c.TodasTestemunhas, "; "),
		tier,
		fmt.Sprintf("%.1f", score),
		boolCell(flags[0]), boolCell(flags[1]), boolCell(flags[2]), boolCell(flags[3]), boolCell(flags[4]),
		insight,
	}
}

func boolCell(v bool) string {
	if v {
		return "sim"
	}
	return "nao"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
