package store

import (
	"context"
	"fmt"
)

// Append records one compile attempt. The store assigns the sequence
// number and the content-addressed ID and returns the completed record.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency - replaying an append
// with the same logical content and sequence is silently ignored.
func (s *Store) Append(ctx context.Context, functionName, graphHash, diagnostic string) (Record, error) {
	status := StatusOK
	if diagnostic != "" {
		status = StatusError
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("append compile record: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM compiles`,
	).Scan(&seq); err != nil {
		return Record{}, fmt.Errorf("append compile record: next seq: %w", err)
	}

	rec := Record{
		ID:           recordID(functionName, graphHash, status, diagnostic, seq),
		FunctionName: functionName,
		GraphHash:    graphHash,
		Status:       status,
		Diagnostic:   diagnostic,
		Seq:          seq,
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO compiles (id, function_name, graph_hash, status, diagnostic, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, rec.ID, rec.FunctionName, rec.GraphHash, rec.Status, rec.Diagnostic, rec.Seq); err != nil {
		return Record{}, fmt.Errorf("append compile record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("append compile record: %w", err)
	}
	return rec, nil
}
