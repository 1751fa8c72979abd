// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"assistjur/internal/record"
)

// TextFormatter renders the human-readable console report.
type TextFormatter struct {
	colors map[string]*color.Color
}

// NewTextFormatter creates the text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *TextFormatter) Name() string { return "text" }

func (f *TextFormatter) Description() string {
	return "Relatório legível para o console, com cores"
}

func (f *TextFormatter) FileExtension() string { return ".txt" }

func (f *TextFormatter) Format(rep *record.ValidationReport, options Options) ([]byte, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder

	b.WriteString(f.colors["white"].Sprint("AssistJur.IA — Análise de Testemunhas"))
	b.WriteString("\n")
	if rep.SourceFile != "" {
		fmt.Fprintf(&b, "Arquivo: %s\n", rep.SourceFile)
	}
	fmt.Fprintf(&b, "Lote: %s\n\n", rep.BatchID)

	f.writeSummary(&b, rep)
	f.writePatterns(&b, rep)
	f.writeCases(&b, rep, options)
	if options.Verbose {
		f.writeIssues(&b, rep)
	}

	return []byte(b.String()), nil
}

func (f *TextFormatter) writeSummary(b *strings.Builder, rep *record.ValidationReport) {
	s := rep.Summary
	b.WriteString(f.colors["cyan"].Sprint("Resumo da validação"))
	b.WriteString("\n")
	fmt.Fprintf(b, "  Planilhas: %d  Linhas: %d  Válidas: %d\n", s.TotalSheets, s.TotalRows, s.ValidRows)

	errLine := fmt.Sprintf("  Erros: %d  Avisos: %d", s.ErrorCount, s.WarningCount)
	if s.ErrorCount > 0 {
		errLine = f.colors["red"].Sprint(errLine)
	} else if s.WarningCount > 0 {
		errLine = f.colors["yellow"].Sprint(errLine)
	} else {
		errLine = f.colors["green"].Sprint(errLine)
	}
	b.WriteString(errLine)
	fmt.Fprintf(b, "\n  Taxa de sucesso: %.1f%%\n\n", s.SuccessRate*100)
}

func (f *TextFormatter) writePatterns(b *strings.Builder, rep *record.ValidationReport) {
	if rep.Padroes == nil {
		return
	}
	p := rep.Padroes
	b.WriteString(f.colors["cyan"].Sprint("Padrões detectados"))
	b.WriteString("\n")
	fmt.Fprintf(b, "  Trocas diretas: %d  Triangulações: %d  Duplos papéis: %d\n",
		p.TrocasDiretas, p.Triangulacoes, p.DuplosPapeis)
	fmt.Fprintf(b, "  Provas emprestadas: %d  Homônimos: %d\n",
		p.ProvasEmprestadas, p.Homonimos)
	if len(p.AdvogadosOfensores) > 0 {
		fmt.Fprintf(b, "  Advogados recorrentes: %s\n", strings.Join(p.AdvogadosOfensores, ", "))
	}
	b.WriteString("\n")
}

func (f *TextFormatter) writeCases(b *strings.Builder, rep *record.ValidationReport, options Options) {
	cases := flaggedCases(rep, options)
	if len(cases) == 0 {
		if options.OnlyFlagged {
			b.WriteString(f.colors["green"].Sprint("Nenhum processo com padrões detectados."))
			b.WriteString("\n")
		}
		return
	}

	b.WriteString(f.colors["cyan"].Sprint("Processos"))
	b.WriteString("\n")
	for _, c := range cases {
		tier := record.TierMinimo
		total := 0.0
		if c.Padroes != nil {
			tier = c.Padroes.ClassificacaoFinal
			total = c.Padroes.Score.Total
		}
		fmt.Fprintf(b, "  %s  %s  score %.0f  %s\n",
			c.CNJFormatado, f.tierLabel(tier), total, c.ReclamanteNome)

		if options.Verbose && c.Padroes != nil {
			for _, comp := range c.Padroes.Score.Components {
				if !comp.Detected {
					continue
				}
				fmt.Fprintf(b, "      %-17s +%.0f  %s\n", comp.Pattern, comp.Weighted, comp.Rationale)
			}
		}
	}
	b.WriteString("\n")
}

func (f *TextFormatter) writeIssues(b *strings.Builder, rep *record.ValidationReport) {
	if len(rep.Issues) == 0 {
		return
	}
	b.WriteString(f.colors["cyan"].Sprint("Ocorrências"))
	b.WriteString("\n")
	for _, issue := range rep.Issues {
		line := fmt.Sprintf("  [%s] %s linha %d: %s (%s)",
			issue.Severity, issue.Sheet, issue.Row, issue.Message, issue.Rule)
		switch issue.Severity {
		case record.SeverityError:
			line = f.colors["red"].Sprint(line)
		case record.SeverityWarning:
			line = f.colors["yellow"].Sprint(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (f *TextFormatter) tierLabel(t record.Tier) string {
	label := fmt.Sprintf("[%s]", t)
	switch t {
	case record.TierCritico:
		return f.colors["red"].Sprint(label)
	case record.TierAlto:
		return f.colors["red"].Sprint(label)
	case record.TierMedio:
		return f.colors["yellow"].Sprint(label)
	default:
		return f.colors["green"].Sprint(label)
	}
}
