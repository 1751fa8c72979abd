// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistjur/internal/record"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "assistjur.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newReport(sourceFile string) *record.ValidationReport {
	return &record.ValidationReport{
		BatchID:    uuid.NewString(),
		SourceFile: sourceFile,
		Cases: []record.CaseRecord{{
			CNJ:            "11111111120235020001",
			CNJFormatado:   "1111111-11.2023.5.02.0001",
			UF:             "SP",
			ReclamanteNome: "Carlos Pereira",
			FinalValid:     true,
			Padroes:        &record.CaseAnnotation{TrocaDireta: true},
		}},
		Issues: []record.ValidationIssue{{
			Sheet: "Por Processo", Row: 2, Severity: record.SeverityWarning, Rule: "cnj_corrigido",
		}},
		Summary: record.Summary{TotalSheets: 1, TotalRows: 1, ValidRows: 1, WarningCount: 1, SuccessRate: 1.0},
	}
}

func TestSaveAndLoadReport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rep := newReport("dados.xlsx")
	require.NoError(t, s.SaveReport(ctx, rep))

	loaded, err := s.LoadReport(ctx, rep.BatchID)
	require.NoError(t, err)
	assert.Equal(t, rep.BatchID, loaded.BatchID)
	assert.Equal(t, "dados.xlsx", loaded.SourceFile)
	require.Len(t, loaded.Cases, 1)
	assert.True(t, loaded.Cases[0].Padroes.TrocaDireta)
	assert.Len(t, loaded.Issues, 1)
	assert.Equal(t, 1.0, loaded.Summary.SuccessRate)
}

func TestSaveReportUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rep := newReport("dados.xlsx")
	require.NoError(t, s.SaveReport(ctx, rep))

	rep.Summary.ValidRows = 0
	rep.Summary.SuccessRate = 0
	require.NoError(t, s.SaveReport(ctx, rep))

	batches, err := s.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Zero(t, batches[0].ValidRows)
}

func TestLoadReportMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadReport(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "não encontrado")
}

func TestSaveReportRequiresBatchID(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SaveReport(context.Background(), &record.ValidationReport{}))
	assert.Error(t, s.SaveReport(context.Background(), nil))
}

func TestListBatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := newReport("a.xlsx")
	second := newReport("b.csv")
	require.NoError(t, s.SaveReport(ctx, first))
	require.NoError(t, s.SaveReport(ctx, second))

	batches, err := s.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 2)

	files := []string{batches[0].SourceFile, batches[1].SourceFile}
	assert.ElementsMatch(t, []string{"a.xlsx", "b.csv"}, files)
	for _, b := range batches {
		assert.False(t, b.CreatedAt.IsZero())
	}
}
