// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package store persists validation reports so past imports can be
// reopened and compared. The SQLite backend keeps the scalar batch
// metadata in columns for listing, and the full report as JSON for
// lossless reload.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"assistjur/internal/record"
)

// BatchInfo is one row of the batch listing.
type BatchInfo struct {
	BatchID     string    `db:"batch_id"`
	SourceFile  string    `db:"source_file"`
	CreatedAt   time.Time `db:"created_at"`
	TotalRows   int       `db:"total_rows"`
	ValidRows   int       `db:"valid_rows"`
	ErrorCount  int       `db:"error_count"`
	SuccessRate float64   `db:"success_rate"`
}

// Store persists and retrieves validation reports.
type Store interface {
	SaveReport(ctx context.Context, rep *record.ValidationReport) error
	LoadReport(ctx context.Context, batchID string) (*record.ValidationReport, error)
	ListBatches(ctx context.Context) ([]BatchInfo, error)
	Close() error
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS batches (
	batch_id     TEXT PRIMARY KEY,
	source_file  TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL,
	total_rows   INTEGER NOT NULL DEFAULT 0,
	valid_rows   INTEGER NOT NULL DEFAULT 0,
	error_count  INTEGER NOT NULL DEFAULT 0,
	success_rate REAL NOT NULL DEFAULT 0,
	report       TEXT NOT NULL
);
`

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("criar schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveReport upserts the report under its batch id.
func (s *SQLiteStore) SaveReport(ctx context.Context, rep *record.ValidationReport) error {
	if rep == nil || rep.BatchID == "" {
		return fmt.Errorf("relatório sem batch_id")
	}
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("serializar relatório: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO batches (batch_id, source_file, created_at, total_rows, valid_rows, error_count, success_rate, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(batch_id) DO UPDATE SET
			source_file  = excluded.source_file,
			total_rows   = excluded.total_rows,
			valid_rows   = excluded.valid_rows,
			error_count  = excluded.error_count,
			success_rate = excluded.success_rate,
			report       = excluded.report`,
		rep.BatchID, rep.SourceFile, time.Now().UTC().Format(time.RFC3339),
		rep.Summary.TotalRows, rep.Summary.ValidRows, rep.Summary.ErrorCount,
		rep.Summary.SuccessRate, string(payload))
	if err != nil {
		return fmt.Errorf("gravar lote %s: %w", rep.BatchID, err)
	}
	return nil
}

// LoadReport reloads one report by batch id.
func (s *SQLiteStore) LoadReport(ctx context.Context, batchID string) (*record.ValidationReport, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload, `SELECT report FROM batches WHERE batch_id = ?`, batchID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lote %s não encontrado", batchID)
	}
	if err != nil {
		return nil, fmt.Errorf("carregar lote %s: %w", batchID, err)
	}

	var rep record.ValidationReport
	if err := json.Unmarshal([]byte(payload), &rep); err != nil {
		return nil, fmt.Errorf("decodificar lote %s: %w", batchID, err)
	}
	return &rep, nil
}

// ListBatches returns the stored batches, newest first.
func (s *SQLiteStore) ListBatches(ctx context.Context) ([]BatchInfo, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT batch_id, source_file, created_at, total_rows, valid_rows, error_count, success_rate
		FROM batches ORDER BY created_at DESC, batch_id`)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	defer rows.Close()

	var out []BatchInfo
	for rows.Next() {
		var (
			info    BatchInfo
			created string
		)
		if err := rows.Scan(&info.BatchID, &info.SourceFile, &created,
			&info.TotalRows, &info.ValidRows, &info.ErrorCount, &info.SuccessRate); err != nil {
			return nil, fmt.Errorf("ler lote: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			info.CreatedAt = ts
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
