package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadAll returns every compile record in deterministic order:
// ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) when the log is empty.
func (s *Store) ReadAll(ctx context.Context) ([]Record, error) {
	return s.readWhere(ctx, "", nil)
}

// ReadByGraphHash returns every compile record for one graph hash, in
// deterministic order.
func (s *Store) ReadByGraphHash(ctx context.Context, graphHash string) ([]Record, error) {
	return s.readWhere(ctx, "WHERE graph_hash = ?", []any{graphHash})
}

// ReadByFunction returns every compile record for one function name, in
// deterministic order.
func (s *Store) ReadByFunction(ctx context.Context, functionName string) ([]Record, error) {
	return s.readWhere(ctx, "WHERE function_name = ?", []any{functionName})
}

// readWhere runs the shared SELECT with an optional filter clause.
// Values are always parameterized, never interpolated.
func (s *Store) readWhere(ctx context.Context, where string, params []any) ([]Record, error) {
	query := fmt.Sprintf(`
		SELECT id, function_name, graph_hash, status, diagnostic, seq, created_at
		FROM compiles
		%s
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, where)

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query compiles: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compiles: %w", err)
	}
	return records, nil
}

// scanRecord reads one row into a Record.
func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	if err := rows.Scan(
		&rec.ID,
		&rec.FunctionName,
		&rec.GraphHash,
		&rec.Status,
		&rec.Diagnostic,
		&rec.Seq,
		&rec.CreatedAt,
	); err != nil {
		return Record{}, fmt.Errorf("scan compile record: %w", err)
	}
	return rec, nil
}
