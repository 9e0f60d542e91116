// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		strategy TEXT NOT NULL,
		role_filter TEXT NOT NULL,
		keywords TEXT NOT NULL,
		scored INTEGER NOT NULL,
		generated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL REFERENCES runs(id),
		rank INTEGER NOT NULL,
		document_id TEXT NOT NULL,
		role TEXT NOT NULL,
		score REAL NOT NULL,
		matched_keywords TEXT NOT NULL,
		resume_text TEXT NOT NULL,
		PRIMARY KEY (run_id, rank)
	)`,
	`CREATE TABLE IF NOT EXISTS failures (
		run_id TEXT NOT NULL REFERENCES runs(id),
		document_id TEXT NOT NULL,
		error TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_results_document ON results(document_id)`,
}

// writeSQLite appends rep to the report database at path.
func writeSQLite(ctx context.Context, path string, rep *Report) error {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("opening report database: %w", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating report schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	keywordsJSON, err := json.Marshal(rep.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, strategy, role_filter, keywords, scored, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rep.RunID, string(rep.Strategy), rep.Role, string(keywordsJSON), rep.Scored,
		rep.GeneratedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", rep.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, rank, document_id, role, score, matched_keywords, resume_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rep.Rows {
		matchedJSON, err := json.Marshal(r.MatchedKeywords)
		if err != nil {
			return fmt.Errorf("encoding keywords for %s: %w", r.DocumentID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			rep.RunID, r.Rank, r.DocumentID, r.Role, r.Score, string(matchedJSON), r.Text,
		); err != nil {
			return fmt.Errorf("inserting result %s: %w", r.DocumentID, err)
		}
	}

	for _, f := range rep.Failures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO failures (run_id, document_id, error) VALUES (?, ?, ?)`,
			rep.RunID, f.DocumentID, f.Error,
		); err != nil {
			return fmt.Errorf("inserting failure %s: %w", f.DocumentID, err)
		}
	}

	return tx.Commit()
}
