// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindForSheet(t *testing.T) {
	assert.Equal(t, KindProcesso, KindForSheet("Por Processo"))
	assert.Equal(t, KindProcesso, KindForSheet("POR PROCESSO"))
	assert.Equal(t, KindTestemunha, KindForSheet("Por Testemunha"))
	assert.Equal(t, KindTestemunha, KindForSheet("por_testemunha"))
	assert.Equal(t, KindTestemunha, KindForSheet("base-testemunhas-2023"))
	assert.Equal(t, KindProcesso, KindForSheet("processos_ativos"))
	assert.Equal(t, KindUnknown, KindForSheet("Resumo"))
}

func TestReadCSV_CommaDelimited(t *testing.T) {
	in := "CNJ,UF,Reclamante\n123,SP,Maria\n456,RJ,José\n"
	table, err := ReadCSV(strings.NewReader(in), SheetProcesso, KindProcesso)
	require.NoError(t, err)

	assert.Equal(t, []string{"CNJ", "UF", "Reclamante"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Rows[0].Number)
	assert.Equal(t, "123", table.Rows[0].Cells["CNJ"])
	assert.Equal(t, "José", table.Rows[1].Cells["Reclamante"])
}

func TestReadCSV_SemicolonDelimited(t *testing.T) {
	in := "CNJ;UF;Testemunhas\n123;SP;Ana,Bia\n"
	table, err := ReadCSV(strings.NewReader(in), SheetProcesso, KindProcesso)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	// Commas inside cells survive when ';' is the delimiter.
	assert.Equal(t, "Ana,Bia", table.Rows[0].Cells["Testemunhas"])
}

func TestReadCSV_Latin1(t *testing.T) {
	// "Comarca;Réu" with Réu in ISO-8859-1 (0xE9 = é).
	in := string([]byte{'C', 'o', 'm', 'a', 'r', 'c', 'a', ';', 'R', 0xE9, 'u', '\n', 'S', 'P', ';', 'X', '\n'})
	table, err := ReadCSV(strings.NewReader(in), SheetProcesso, KindProcesso)
	require.NoError(t, err)
	assert.Equal(t, []string{"Comarca", "Réu"}, table.Headers)
}

func TestReadCSV_SkipsEmptyRows(t *testing.T) {
	in := "A,B\n1,2\n,\n3,4\n"
	table, err := ReadCSV(strings.NewReader(in), SheetProcesso, KindProcesso)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 4, table.Rows[1].Number)
}

func TestReadCSV_EmptyIsFatal(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), SheetProcesso, KindProcesso)
	assert.Error(t, err)
}

func TestReadCSV_RaggedRowsTolerated(t *testing.T) {
	in := "A,B,C\n1,2\n1,2,3,4\n"
	table, err := ReadCSV(strings.NewReader(in), SheetProcesso, KindProcesso)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	_, hasC := table.Rows[0].Cells["C"]
	assert.False(t, hasC, "short rows simply omit trailing cells")
}

func TestReadFile_UnsupportedExtension(t *testing.T) {
	_, err := ReadFile("dados.pdf", KindUnknown)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extensão não suportada")
}
