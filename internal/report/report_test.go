// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistjur/internal/record"
)

func sampleReport() *record.ValidationReport {
	flagged := &record.CaseAnnotation{
		TrocaDireta:  true,
		DesenhoTroca: "João Santos ⇄ Maria Oliveira (advogados em comum: Dr. Silva, Dra. Souza)",
	}
	flagged.Score = record.ScoreBreakdown{
		Components: []record.ScoreComponent{
			{Pattern: record.PatternTrocaDireta, Detected: true, Weight: 0.20, Weighted: 20},
		},
		Total: 20,
		Tier:  record.TierMinimo,
	}
	flagged.ClassificacaoFinal = record.TierMinimo

	return &record.ValidationReport{
		BatchID:    "b7b6f4a0-0000-0000-0000-000000000001",
		SourceFile: "dados.xlsx",
		Cases: []record.CaseRecord{
			{
				CNJ:              "11111111120235020001",
				CNJFormatado:     "1111111-11.2023.5.02.0001",
				UF:               "SP",
				Comarca:          "São Paulo",
				ReclamanteNome:   "Carlos Pereira",
				ReuNome:          "Empresa XYZ Ltda",
				TodasTestemunhas: []string{"João Santos"},
				FinalValid:       true,
				Padroes:          flagged,
			},
			{
				CNJ:            "22222222220235020002",
				CNJFormatado:   "2222222-22.2023.5.02.0002",
				UF:             "RJ",
				ReclamanteNome: "Pedro Lima",
				FinalValid:     true,
				Padroes:        &record.CaseAnnotation{ClassificacaoFinal: record.TierMinimo},
			},
		},
		Issues: []record.ValidationIssue{
			{Sheet: "Por Processo", Row: 3, Severity: record.SeverityWarning,
				Rule: "cnj_corrigido", Message: "dígitos verificadores recalculados"},
		},
		Summary: record.Summary{TotalSheets: 1, TotalRows: 2, ValidRows: 2, WarningCount: 1, SuccessRate: 1.0},
		Padroes: &record.PadroesAgregados{TotalProcessos: 2, TrocasDiretas: 1,
			AdvogadosOfensores: []string{"Dr. Silva", "Dra. Souza"}},
	}
}

func TestRegistryHasBuiltins(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "pdf", "text"}, DefaultRegistry.List())
	for _, name := range DefaultRegistry.List() {
		f, ok := Get(name)
		require.True(t, ok)
		assert.Equal(t, name, f.Name())
		assert.True(t, strings.HasPrefix(f.FileExtension(), "."))
		assert.NotEmpty(t, f.Description())
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export("xml", sampleReport(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatos disponíveis")
}

func TestTextFormat(t *testing.T) {
	out, err := Export("text", sampleReport(), Options{NoColor: true, Verbose: true})
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "Análise de Testemunhas")
	assert.Contains(t, text, "Taxa de sucesso: 100.0%")
	assert.Contains(t, text, "Trocas diretas: 1")
	assert.Contains(t, text, "1111111-11.2023.5.02.0001")
	assert.Contains(t, text, "Dr. Silva")
	assert.Contains(t, text, "cnj_corrigido")
}

func TestTextOnlyFlagged(t *testing.T) {
	out, err := Export("text", sampleReport(), Options{NoColor: true, OnlyFlagged: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), "1111111-11.2023.5.02.0001")
	assert.NotContains(t, string(out), "2222222-22.2023.5.02.0002")
}

func TestCSVFormat(t *testing.T) {
	out, err := Export("csv", sampleReport(), Options{})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 cases
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "1111111-11.2023.5.02.0001", rows[1][0])
	assert.Equal(t, "sim", rows[1][8]) // troca_direta
	assert.Equal(t, "nao", rows[2][8])
}

func TestJSONFormatRoundTrips(t *testing.T) {
	out, err := Export("json", sampleReport(), Options{Verbose: true})
	require.NoError(t, err)

	var decoded record.ValidationReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "b7b6f4a0-0000-0000-0000-000000000001", decoded.BatchID)
	require.Len(t, decoded.Cases, 2)
	assert.True(t, decoded.Cases[0].Padroes.TrocaDireta)
	assert.Len(t, decoded.Issues, 1)
	require.NotNil(t, decoded.Padroes)
	assert.Equal(t, 1, decoded.Padroes.TrocasDiretas)
}

func TestJSONFormatOmitsIssuesUnlessVerbose(t *testing.T) {
	out, err := Export("json", sampleReport(), Options{})
	require.NoError(t, err)
	var decoded record.ValidationReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Empty(t, decoded.Issues)
}

func TestPDFFormat(t *testing.T) {
	out, err := Export("pdf", sampleReport(), Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"), "deve gerar um PDF válido")
	assert.Greater(t, len(out), 500)
}
