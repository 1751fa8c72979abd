// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"

	"assistjur/internal/record"
)

// JSONFormatter renders the full report as indented JSON. This is the
// machine-readable interchange format; it always carries everything,
// Verbose only controls the issue list.
type JSONFormatter struct{}

// NewJSONFormatter creates the JSON formatter.
func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

func (f *JSONFormatter) Name() string { return "json" }

func (f *JSONFormatter) Description() string {
	return "Relatório completo em JSON, para integração"
}

func (f *JSONFormatter) FileExtension() string { return ".json" }

func (f *JSONFormatter) Format(rep *record.ValidationReport, options Options) ([]byte, error) {
	out := *rep
	out.Cases = flaggedCases(rep, options)
	if !options.Verbose {
		out.Issues = nil
	}
	return json.MarshalIndent(&out, "", "  ")
}
