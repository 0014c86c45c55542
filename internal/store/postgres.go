package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/logcentral/logcentral/internal/model"
)

// PostgresStore persists log records in the logs table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a PostgresStore using the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// InsertBatch writes all records in one transaction. The assigned ids are
// written back into the slice.
func (s *PostgresStore) InsertBatch(ctx context.Context, records []model.LogRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO logs (timestamp, received_at, service, severity, message, token_used)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range records {
		r := &records[i]
		if err := tx.QueryRow(ctx, query,
			r.Timestamp,
			r.ReceivedAt,
			r.Service,
			r.Severity,
			r.Message,
			r.TokenUsed,
		).Scan(&r.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Query returns records matching f, most recently received first.
func (s *PostgresStore) Query(ctx context.Context, f Filters) ([]model.LogRecord, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.TimestampFrom != nil {
		add("timestamp >= $%d", *f.TimestampFrom)
	}
	if f.TimestampTo != nil {
		add("timestamp <= $%d", *f.TimestampTo)
	}
	if f.ReceivedFrom != nil {
		add("received_at >= $%d", *f.ReceivedFrom)
	}
	if f.ReceivedTo != nil {
		add("received_at <= $%d", *f.ReceivedTo)
	}
	if f.Service != "" {
		add("service = $%d", f.Service)
	}
	if f.Severity != "" {
		add("severity = $%d", f.Severity)
	}

	query := `
		SELECT id, timestamp, received_at, service, severity, message, token_used
		FROM logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY received_at DESC, id DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.LogRecord, 0)
	for rows.Next() {
		var r model.LogRecord
		if err := rows.Scan(
			&r.ID,
			&r.Timestamp,
			&r.ReceivedAt,
			&r.Service,
			&r.Severity,
			&r.Message,
			&r.TokenUsed,
		); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}
