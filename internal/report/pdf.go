// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"assistjur/internal/record"
)

// PDFFormatter renders the executive report handed to counsel.
type PDFFormatter struct{}

// NewPDFFormatter creates the PDF formatter.
func NewPDFFormatter() *PDFFormatter { return &PDFFormatter{} }

func (f *PDFFormatter) Name() string { return "pdf" }

func (f *PDFFormatter) Description() string {
	return "Relatório executivo em PDF"
}

func (f *PDFFormatter) FileExtension() string { return ".pdf" }

func (f *PDFFormatter) Format(rep *record.ValidationReport, options Options) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are Latin-1; translate so the Portuguese accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("AssistJur.IA — Análise de Testemunhas"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("AssistJur.IA — Análise de Testemunhas"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if rep.SourceFile != "" {
		pdf.CellFormat(0, 6, tr("Arquivo: "+rep.SourceFile), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, tr("Lote: "+rep.BatchID), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	f.summarySection(pdf, tr, rep)
	f.patternSection(pdf, tr, rep)
	f.caseTable(pdf, tr, rep, options)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("falha ao gerar PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *PDFFormatter) summarySection(pdf *fpdf.Fpdf, tr func(string) string, rep *record.ValidationReport) {
	s := rep.Summary
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Resumo da validação"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Planilhas: %d   Linhas: %d   Válidas: %d",
		s.TotalSheets, s.TotalRows, s.ValidRows)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Erros: %d   Avisos: %d   Taxa de sucesso: %.1f%%",
		s.ErrorCount, s.WarningCount, s.SuccessRate*100)), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (f *PDFFormatter) patternSection(pdf *fpdf.Fpdf, tr func(string) string, rep *record.ValidationReport) {
	p := rep.Padroes
	if p == nil {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Padrões detectados"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf(
		"Trocas diretas: %d   Triangulações: %d   Duplos papéis: %d   Provas emprestadas: %d   Homônimos: %d",
		p.TrocasDiretas, p.Triangulacoes, p.DuplosPapeis, p.ProvasEmprestadas, p.Homonimos)),
		"", 1, "L", false, 0, "")
	if len(p.AdvogadosOfensores) > 0 {
		pdf.MultiCell(0, 6, tr("Advogados recorrentes: "+strings.Join(p.AdvogadosOfensores, ", ")), "", "L", false)
	}
	pdf.Ln(4)
}

func (f *PDFFormatter) caseTable(pdf *fpdf.Fpdf, tr func(string) string, rep *record.ValidationReport, options Options) {
	cases := flaggedCases(rep, options)
	if len(cases) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Processos"), "", 1, "L", false, 0, "")

	widths := []float64{52, 12, 38, 22, 14, 52}
	headers := []string{"CNJ", "UF", "Reclamante", "Classificação", "Score", "Insight"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, c := range cases {
		tier := record.TierMinimo
		score := 0.0
		insight := ""
		if a := c.Padroes; a != nil {
			tier = a.ClassificacaoFinal
			score = a.Score.Total
			insight = firstNonEmpty(a.DesenhoTroca, a.DesenhoTriangulacao)
		}
		if tier == record.TierCritico || tier == record.TierAlto {
			pdf.SetTextColor(180, 0, 0)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		cols := []string{
			c.CNJFormatado, c.UF, c.ReclamanteNome,
			string(tier), fmt.Sprintf("%.0f", score), insight,
		}
		for i, col := range cols {
			pdf.CellFormat(widths[i], 6, tr(clip(col, 60)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetTextColor(0, 0, 0)
}

// clip keeps table cells on one line.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
