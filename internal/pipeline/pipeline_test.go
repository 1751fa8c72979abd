// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistjur/internal/cnj"
	"assistjur/internal/config"
	"assistjur/internal/record"
)

// validCNJ builds a formatted CNJ with correct check digits.
func validCNJ(t *testing.T, seq string) string {
	t.Helper()
	info18 := seq + "2023" + "5" + "02" + "0001"
	require.Len(t, info18, 18)
	dd, err := cnj.CheckDigits(info18)
	require.NoError(t, err)
	return cnj.Format(seq + dd + "2023" + "5" + "02" + "0001")
}

func writeCSV(t *testing.T, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600))
	return path
}

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Defaults.Workers = 2
	p, err := New(cfg, nil)
	require.NoError(t, err)
	return p
}

func TestRunHappyPath(t *testing.T) {
	cnjA := validCNJ(t, "0000001")
	cnjB := validCNJ(t, "0000002")

	path := writeCSV(t, "processos.csv", []string{
		"CNJ,UF,Comarca,Reclamante,Réu,Advogados (Polo Ativo),Testemunhas",
		cnjA + ",SP,São Paulo,Carlos Pereira,Empresa XYZ,Dr. Silva; Dra. Souza,João Santos",
		cnjB + ",SP,São Paulo,Pedro Lima,Empresa XYZ,Dr. Silva; Dra. Souza,Maria Oliveira",
	})

	rep, err := newPipeline(t).Run(context.Background(), path)
	require.NoError(t, err)

	assert.NotEmpty(t, rep.BatchID)
	assert.Equal(t, path, rep.SourceFile)
	assert.Equal(t, 1, rep.Summary.TotalSheets)
	assert.Equal(t, 2, rep.Summary.TotalRows)
	assert.Equal(t, 2, rep.Summary.ValidRows)
	assert.Equal(t, 1.0, rep.Summary.SuccessRate)
	assert.Zero(t, rep.Summary.ErrorCount)

	require.Len(t, rep.Cases, 2)
	for _, c := range rep.Cases {
		assert.True(t, c.FinalValid)
		require.NotNil(t, c.Padroes)
		assert.True(t, c.Padroes.TrocaDireta)
	}

	require.NotNil(t, rep.Padroes)
	assert.Equal(t, 1, rep.Padroes.TrocasDiretas)
	assert.ElementsMatch(t, []string{"Dr. Silva", "Dra. Souza"}, rep.Padroes.AdvogadosOfensores)
}

func TestRunBadCNJBecomesErrorNotDrop(t *testing.T) {
	cnjA := validCNJ(t, "0000001")

	path := writeCSV(t, "processos.csv", []string{
		"CNJ,UF,Comarca,Reclamante,Réu,Advogados (Polo Ativo),Testemunhas",
		cnjA + ",SP,São Paulo,Carlos Pereira,Empresa XYZ,Dr. Silva,João Santos",
		"1234,RJ,Rio de Janeiro,Pedro Lima,Empresa ABC,Dra. Souza,Maria Oliveira",
	})

	rep, err := newPipeline(t).Run(context.Background(), path)
	require.NoError(t, err)

	// The bad row stays in the output with an error issue.
	require.Len(t, rep.Cases, 2)
	assert.Equal(t, 2, rep.Summary.TotalRows)
	assert.Equal(t, 1, rep.Summary.ValidRows)
	assert.Equal(t, 0.5, rep.Summary.SuccessRate)
	assert.Greater(t, rep.Summary.ErrorCount, 0)

	hasUnrecoverable := false
	for _, issue := range rep.Issues {
		if issue.Rule == "cnj_irrecuperavel" {
			hasUnrecoverable = true
			assert.Equal(t, record.SeverityError, issue.Severity)
		}
	}
	assert.True(t, hasUnrecoverable)
}

func TestRunCorrectsCNJWithWarning(t *testing.T) {
	full := strings.NewReplacer("-", "", ".", "").Replace(validCNJ(t, "0000001"))
	missingChecks := full[:7] + full[9:] // 18 digits, check digits dropped

	path := writeCSV(t, "processos.csv", []string{
		"CNJ,UF,Comarca,Reclamante,Réu,Advogados (Polo Ativo),Testemunhas",
		missingChecks + ",SP,São Paulo,Carlos Pereira,Empresa XYZ,Dr. Silva,João Santos",
	})

	rep, err := newPipeline(t).Run(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, rep.Cases, 1)
	assert.True(t, rep.Cases[0].FinalValid)
	assert.Equal(t, 1, rep.Summary.ValidRows)

	corrected := false
	for _, issue := range rep.Issues {
		if issue.Rule == "cnj_corrigido" {
			corrected = true
			assert.Equal(t, record.SeverityWarning, issue.Severity)
		}
	}
	assert.True(t, corrected)
}

func TestRunDerivesWitnessesFromCaseSheet(t *testing.T) {
	cnjA := validCNJ(t, "0000001")

	path := writeCSV(t, "processos.csv", []string{
		"CNJ,UF,Comarca,Reclamante,Réu,Advogados (Polo Ativo),Testemunhas",
		cnjA + ",SP,São Paulo,Carlos Pereira,Empresa XYZ,Dr. Silva,João Santos; Maria Oliveira",
	})

	rep, err := newPipeline(t).Run(context.Background(), path)
	require.NoError(t, err)

	// A case-only import still materializes the witness view.
	require.Len(t, rep.Witnesses, 2)
	names := []string{rep.Witnesses[0].NomeCanonico, rep.Witnesses[1].NomeCanonico}
	assert.ElementsMatch(t, []string{"joao santos", "maria oliveira"}, names)
	for _, w := range rep.Witnesses {
		assert.Equal(t, 1, w.QtdDepoimentos)
		assert.Len(t, w.CNJsComoTestemunha, 1)
	}

	// Derived rows are a view, not input rows.
	assert.Equal(t, 1, rep.Summary.TotalRows)
	assert.Equal(t, 1, rep.Summary.ValidRows)
}

func TestRunMissingFile(t *testing.T) {
	_, err := newPipeline(t).Run(context.Background(), filepath.Join(t.TempDir(), "nao-existe.xlsx"))
	assert.Error(t, err)
}

func TestRunWitnessCSV(t *testing.T) {
	var cnjs []string
	for i := 1; i <= 12; i++ {
		cnjs = append(cnjs, validCNJ(t, fmt.Sprintf("%07d", i)))
	}
	path := writeCSV(t, "testemunhas.csv", []string{
		"Nome da Testemunha,Qtd Depoimentos,CNJs como Testemunha",
		"Depoente Serial,12," + strings.Join(cnjs, "; "),
	})

	rep, err := newPipeline(t).Run(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, rep.Witnesses, 1)
	require.NotNil(t, rep.Padroes)
	assert.Equal(t, 1, rep.Padroes.ProvasEmprestadas)
	require.NotNil(t, rep.Witnesses[0].Padroes)
	assert.True(t, rep.Witnesses[0].Padroes.EProvaEmprestada)
}
