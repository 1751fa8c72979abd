// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel normalizes spreadsheet rows over a fixed worker
// pool. Rows are independent, so normalization is the one stage worth
// fanning out; results are reassembled in source order so the report
// is deterministic regardless of worker count.
package parallel

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"assistjur/internal/ingest"
	"assistjur/internal/normalize"
	"assistjur/internal/observability"
	"assistjur/internal/record"
)

// Job is one row to normalize.
type Job struct {
	Index int
	Kind  ingest.SheetKind
	Sheet string
	Row   ingest.Row
}

// Result is the normalized output of one row.
type Result struct {
	Index    int
	Case     *record.CaseRecord
	Witness  *record.WitnessRecord
	Issues   []record.ValidationIssue
	Duration time.Duration
}

// Stats summarizes one pool run.
type Stats struct {
	TotalRows     int           `json:"total_rows"`
	WorkerCount   int           `json:"worker_count"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// RowProcessor fans row normalization out over a worker pool.
type RowProcessor struct {
	workers    int
	normalizer *normalize.Normalizer
	observer   *observability.Observer
}

// NewRowProcessor creates a processor with the given worker count;
// zero or negative means one worker per CPU, capped at 8.
func NewRowProcessor(workers int, n *normalize.Normalizer, observer *observability.Observer) *RowProcessor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > 8 {
		workers = 8
	}
	return &RowProcessor{workers: workers, normalizer: n, observer: observer}
}

// ProcessTables normalizes every row of every table. Output order
// follows the input tables row by row. Cancelling the context stops
// feeding the pool; rows already in flight still complete.
func (p *RowProcessor) ProcessTables(ctx context.Context, tables []ingest.Table) ([]record.CaseRecord, []record.WitnessRecord, []record.ValidationIssue, *Stats) {
	start := time.Now()
	finish := p.observer.StartTiming("parallel", "process_tables", "")

	var jobs []Job
	for _, table := range tables {
		for _, row := range table.Rows {
			jobs = append(jobs, Job{
				Index: len(jobs),
				Kind:  table.Kind,
				Sheet: table.Sheet,
				Row:   row,
			})
		}
	}

	jobCh := make(chan Job)
	resultCh := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				resultCh <- p.runJob(job)
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]Result, 0, len(jobs))
	for res := range resultCh {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	var (
		cases     []record.CaseRecord
		witnesses []record.WitnessRecord
		issues    []record.ValidationIssue
	)
	for _, res := range results {
		if res.Case != nil {
			cases = append(cases, *res.Case)
		}
		if res.Witness != nil {
			witnesses = append(witnesses, *res.Witness)
		}
		issues = append(issues, res.Issues...)
	}

	stats := &Stats{
		TotalRows:     len(jobs),
		WorkerCount:   p.workers,
		TotalDuration: time.Since(start),
	}
	finish(true, map[string]interface{}{
		"total_rows":   stats.TotalRows,
		"worker_count": stats.WorkerCount,
		"duration_ms":  stats.TotalDuration.Milliseconds(),
	})
	return cases, witnesses, issues, stats
}

func (p *RowProcessor) runJob(job Job) Result {
	start := time.Now()
	res := Result{Index: job.Index}

	switch job.Kind {
	case ingest.KindTestemunha:
		w, issues := p.normalizer.NormalizeWitness(job.Sheet, job.Row.Number, job.Row.Cells)
		res.Witness = &w
		res.Issues = issues
	default:
		c, issues := p.normalizer.NormalizeCase(job.Sheet, job.Row.Number, job.Row.Cells)
		res.Case = &c
		res.Issues = issues
	}

	res.Duration = time.Since(start)
	return res
}
