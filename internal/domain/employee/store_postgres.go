package employee

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

type pgConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore keeps one JSONB row per record in payroll_records. Save
// replaces every row in one transaction.
type PostgresStore struct {
	DB pgConn
}

func NewPostgresStore(db pgConn) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Load(ctx context.Context) ([]json.RawMessage, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT record
    FROM payroll_records
    ORDER BY position
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []json.RawMessage{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Save(ctx context.Context, records []Record) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM payroll_records"); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	for position, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		if _, err := tx.Exec(ctx, `
    INSERT INTO payroll_records (id, position, kind, record)
    VALUES ($1,$2,$3,$4)
  `, record.ID, position, string(record.Kind), payload); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	return tx.Commit(ctx)
}
