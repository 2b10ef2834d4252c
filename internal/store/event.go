package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Sequences are named, gap-free counters kept in the sequences table. Rows
// in llm_request_events carry one so `llm list --after` pages stay stable
// even though the AUTOINCREMENT id may skip values.
const llmEventSequence = "llm_request_events"

const sequenceSchema = `
	CREATE TABLE IF NOT EXISTS sequences (
		name TEXT PRIMARY KEY,
		next_val INTEGER NOT NULL
	);
`

// nextSequence allocates the next value of the named sequence inside tx, so
// the allocation rolls back with the insert that uses it.
func nextSequence(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO sequences (name, next_val) VALUES (?, 2)
		 ON CONFLICT(name) DO UPDATE SET next_val = next_val + 1
		 RETURNING next_val - 1`, name,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", name, err)
	}
	return seq, nil
}

// withTx runs fn in a transaction, committing when it returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
