// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pipeline runs one import end to end: read the workbook,
// normalize every row over the worker pool, cross-reference the batch
// for collusion patterns and assemble the validation report.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"assistjur/internal/config"
	"assistjur/internal/ingest"
	"assistjur/internal/normalize"
	"assistjur/internal/observability"
	"assistjur/internal/parallel"
	"assistjur/internal/patterns"
	"assistjur/internal/record"
)

// Pipeline runs imports with one fixed configuration.
type Pipeline struct {
	cfg       *config.Config
	detector  *patterns.Detector
	processor *parallel.RowProcessor
	observer  *observability.Observer
}

// New wires the pipeline from the loaded configuration.
func New(cfg *config.Config, observer *observability.Observer) (*Pipeline, error) {
	detector, err := patterns.NewDetector(cfg.PatternConfig())
	if err != nil {
		return nil, err
	}
	normalizer := normalize.NewNormalizer(normalize.NewResolver(cfg.FieldRegistry()))
	return &Pipeline{
		cfg:       cfg,
		detector:  detector,
		processor: parallel.NewRowProcessor(cfg.Defaults.Workers, normalizer, observer),
		observer:  observer,
	}, nil
}

// Run imports one file and returns the cleartext validation report.
// Masking, rendering and persistence happen at the boundary, on the
// caller's side.
func (p *Pipeline) Run(ctx context.Context, path string) (*record.ValidationReport, error) {
	finish := p.observer.StartTiming("pipeline", "run", path)

	tables, err := ingest.ReadFile(path, ingest.KindProcesso)
	if err != nil {
		finish(false, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("ler %s: %w", path, err)
	}

	cases, witnesses, issues, stats := p.processor.ProcessTables(ctx, tables)
	if err := ctx.Err(); err != nil {
		finish(false, map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	rep := &record.ValidationReport{
		BatchID:    uuid.NewString(),
		SourceFile: path,
		Cases:      cases,
		Witnesses:  witnesses,
		Issues:     issues,
		Summary: record.Summary{
			TotalSheets: len(tables),
			TotalRows:   stats.TotalRows,
		},
	}
	rep.Summary.ValidRows = countValidRows(rep)
	rep.CountIssues()

	// Witness records are a view over the cases: a case-only import
	// still materializes them, and sheet rows are enriched with what
	// the cases corroborate. Derived rows are not input rows, so they
	// come after the row accounting above.
	rep.Witnesses = normalize.DeriveWitnesses(rep.Cases, rep.Witnesses)

	p.annotate(rep)

	finish(true, map[string]interface{}{
		"rows":    stats.TotalRows,
		"cases":   len(cases),
		"issues":  len(issues),
		"workers": stats.WorkerCount,
	})
	return rep, nil
}

// annotate runs pattern detection and attaches the results. Rows that
// failed validation never reach the graph, so a dirty spreadsheet
// degrades the analysis instead of breaking it.
func (p *Pipeline) annotate(rep *record.ValidationReport) {
	res := p.detector.Detect(rep.Cases, rep.Witnesses)

	for i := range rep.Cases {
		if a, ok := res.Cases[rep.Cases[i].CNJ]; ok {
			rep.Cases[i].Padroes = a
		}
	}
	for i := range rep.Witnesses {
		if a, ok := res.Witnesses[rep.Witnesses[i].NomeCanonico]; ok {
			rep.Witnesses[i].Padroes = a
		}
	}
	agg := res.Agregados
	rep.Padroes = &agg
}

// countValidRows counts rows with no error-severity issue.
func countValidRows(rep *record.ValidationReport) int {
	type rowKey struct {
		sheet string
		row   int
	}
	bad := make(map[rowKey]bool)
	for _, issue := range rep.Issues {
		if issue.Severity == record.SeverityError {
			bad[rowKey{issue.Sheet, issue.Row}] = true
		}
	}

	valid := 0
	for _, c := range rep.Cases {
		if !bad[rowKey{c.Sheet, c.Row}] {
			valid++
		}
	}
	for _, w := range rep.Witnesses {
		if !bad[rowKey{w.Sheet, w.Row}] {
			valid++
		}
	}
	return valid
}
