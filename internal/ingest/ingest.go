// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ingest reads uploaded spreadsheets (CSV or XLSX) into raw
// rows for normalization. Problems with file structure are batch-fatal
// here; everything row-shaped is passed through untouched so the
// normalizer can judge it.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"assistjur/internal/normalize"
)

// SheetKind selects which record type a sheet produces.
type SheetKind string

const (
	KindUnknown    SheetKind = ""
	KindProcesso   SheetKind = "processo"
	KindTestemunha SheetKind = "testemunha"
)

// Expected sheet names, compared accent- and case-insensitively.
const (
	SheetProcesso   = "Por Processo"
	SheetTestemunha = "Por Testemunha"
)

// Row is one raw spreadsheet row: arbitrary header -> raw cell value.
type Row struct {
	Sheet  string
	Number int // 1-based position in the sheet, header row is 1
	Cells  map[string]any
}

// Table is one sheet worth of rows.
type Table struct {
	Sheet   string
	Kind    SheetKind
	Headers []string
	Rows    []Row
}

// KindForSheet routes a sheet name to a record type.
func KindForSheet(name string) SheetKind {
	switch normalize.CanonicalHeader(name) {
	case "por processo", "processos", "casos":
		return KindProcesso
	case "por testemunha", "testemunhas":
		return KindTestemunha
	}
	// Filenames double as sheet names for CSV input.
	folded := normalize.CanonicalHeader(name)
	if strings.Contains(folded, "testemunha") {
		return KindTestemunha
	}
	if strings.Contains(folded, "processo") {
		return KindProcesso
	}
	return KindUnknown
}

// ReadFile dispatches on the file extension. defaultKind applies to
// CSV input whose filename does not reveal the sheet type; pass
// KindUnknown to require the filename to decide.
func ReadFile(path string, defaultKind SheetKind) ([]Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(path)
	case ".csv", ".txt":
		table, err := ReadCSVFile(path, defaultKind)
		if err != nil {
			return nil, err
		}
		return []Table{table}, nil
	default:
		return nil, fmt.Errorf("extensão não suportada: %s (esperado .csv ou .xlsx)", filepath.Ext(path))
	}
}

// buildTable assembles a Table from a header row plus data rows,
// validating the tabular structure.
func buildTable(sheet string, kind SheetKind, grid [][]string) (Table, error) {
	if len(grid) == 0 {
		return Table{}, fmt.Errorf("planilha %q vazia", sheet)
	}

	headers := make([]string, 0, len(grid[0]))
	for _, h := range grid[0] {
		headers = append(headers, strings.TrimSpace(h))
	}
	if !hasAnyHeader(headers) {
		return Table{}, fmt.Errorf("planilha %q sem linha de cabeçalho", sheet)
	}

	table := Table{Sheet: sheet, Kind: kind, Headers: headers}
	for i, cells := range grid[1:] {
		if isEmptyRow(cells) {
			continue
		}
		row := Row{Sheet: sheet, Number: i + 2, Cells: make(map[string]any, len(headers))}
		for col, header := range headers {
			if header == "" {
				continue
			}
			if col < len(cells) {
				row.Cells[header] = cells[col]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func hasAnyHeader(headers []string) bool {
	for _, h := range headers {
		if h != "" {
			return true
		}
	}
	return false
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
