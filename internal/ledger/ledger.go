// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists per-paper outcomes to a SQLite database so past
// runs can be inspected and summarized.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-harvester/internal/pipeline"
	"github.com/pdiddy/paper-harvester/pkg/types"
)

// Ledger is an append-only record of pipeline outcomes.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path and ensures the schema.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS outcomes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			paper_id TEXT NOT NULL,
			title TEXT,
			status TEXT NOT NULL,
			attempts INTEGER NOT NULL,
			pdf_path TEXT,
			md_path TEXT,
			error TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_query ON outcomes(query)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_paper_id ON outcomes(paper_id)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one outcome. Implements pipeline.Recorder.
func (l *Ledger) Record(ctx context.Context, o pipeline.Outcome) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO outcomes (query, paper_id, title, status, attempts, pdf_path, md_path, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.Query, o.Paper.ID, o.Paper.Title, string(o.Status), o.Attempts,
		o.PDFPath, o.MDPath, o.Err, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording outcome for %s: %w", o.Paper.ID, err)
	}
	return nil
}

// Outcomes returns the recorded outcomes for one query, oldest first.
func (l *Ledger) Outcomes(ctx context.Context, query string) ([]pipeline.Outcome, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT query, paper_id, title, status, attempts, pdf_path, md_path, error
		 FROM outcomes WHERE query = ? ORDER BY rowid`, query)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []pipeline.Outcome
	for rows.Next() {
		var o pipeline.Outcome
		var paper types.PaperRecord
		var status string
		if err := rows.Scan(&o.Query, &paper.ID, &paper.Title, &status,
			&o.Attempts, &o.PDFPath, &o.MDPath, &o.Err); err != nil {
			return nil, fmt.Errorf("scanning outcome row: %w", err)
		}
		o.Paper = paper
		o.Status = pipeline.Status(status)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
