package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists audit records in the append-only audit_events table and
// serves the audit read API. Rows are never updated or deleted.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Append writes one record to the named log.
func (s *Store) Append(ctx context.Context, log string, rec Record) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (log, occurred_at, username, role, permission, target, outcome)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, log, rec.At, rec.Username, rec.Role, rec.Permission, rec.Target, rec.Outcome)
	return err
}

// Filter narrows List results.
type Filter struct {
	Username string
	Outcome  string
}

// List returns records from one log, newest first.
func (s *Store) List(ctx context.Context, log string, filter Filter, limit, offset int) ([]Record, error) {
	query := `
    SELECT occurred_at, username, role, permission, target, outcome
    FROM audit_events
    WHERE log = $1
  `
	args := []any{log}
	if filter.Username != "" {
		args = append(args, filter.Username)
		query += fmt.Sprintf(" AND username = $%d", len(args))
	}
	if filter.Outcome != "" {
		args = append(args, filter.Outcome)
		query += fmt.Sprintf(" AND outcome = $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.At, &rec.Username, &rec.Role, &rec.Permission, &rec.Target, &rec.Outcome); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count reports the number of records in one log matching the filter.
func (s *Store) Count(ctx context.Context, log string, filter Filter) (int, error) {
	query := "SELECT COUNT(1) FROM audit_events WHERE log = $1"
	args := []any{log}
	if filter.Username != "" {
		args = append(args, filter.Username)
		query += fmt.Sprintf(" AND username = $%d", len(args))
	}
	if filter.Outcome != "" {
		args = append(args, filter.Outcome)
		query += fmt.Sprintf(" AND outcome = $%d", len(args))
	}
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
