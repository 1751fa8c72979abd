// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook loads the recognized sheets of an XLSX workbook. A
// workbook with no recognizable sheet is a batch-fatal structure error
// that names the sheets it does contain.
func ReadWorkbook(path string) ([]Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrindo %s: %w", path, err)
	}
	defer f.Close()

	var tables []Table
	var seen []string
	for _, sheet := range f.GetSheetList() {
		seen = append(seen, sheet)
		kind := KindForSheet(sheet)
		if kind == KindUnknown {
			continue
		}
		grid, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("lendo planilha %q: %w", sheet, err)
		}
		table, err := buildTable(sheet, kind, grid)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf(
			"nenhuma planilha reconhecida; esperado %q ou %q, encontrado: %s",
			SheetProcesso, SheetTestemunha, strings.Join(seen, ", "))
	}
	return tables, nil
}
