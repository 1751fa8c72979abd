// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadCSVFile loads one CSV file as a single table. The sheet kind is
// taken from the filename when it reveals one, otherwise defaultKind.
func ReadCSVFile(path string, defaultKind SheetKind) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("abrindo %s: %w", path, err)
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	kind := KindForSheet(base)
	if kind == KindUnknown {
		kind = defaultKind
	}
	sheet := SheetProcesso
	if kind == KindTestemunha {
		sheet = SheetTestemunha
	}

	return ReadCSV(f, sheet, kind)
}

// ReadCSV parses CSV content. Brazilian spreadsheets routinely arrive
// as ISO-8859-1 with ';' delimiters, so both the charset and the
// delimiter are sniffed before parsing.
func ReadCSV(r io.Reader, sheet string, kind SheetKind) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("lendo conteúdo: %w", err)
	}
	data = decodeCharset(data)
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")) // UTF-8 BOM

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	grid, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("arquivo não é tabular: %w", err)
	}
	return buildTable(sheet, kind, grid)
}

// decodeCharset converts Latin-1 input to UTF-8; valid UTF-8 passes
// through untouched.
func decodeCharset(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}

// sniffDelimiter picks ';' or ',' by counting occurrences in the first
// line. Ties go to the comma.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
