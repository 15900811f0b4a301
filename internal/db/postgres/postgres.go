package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/kanaconv/internal/db"
)

//go:embed schema.sql
var schemaSQL string

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
	q    querier
}

// New connects to PostgreSQL and makes sure the history schema exists.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	// History writes are small and bursty; a handful of connections is plenty.
	config.MaxConns = 5
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool, q: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// PoolStats exposes the pool counters for the metrics exporter.
func (r *Repository) PoolStats() *pgxpool.Stat {
	return r.pool.Stat()
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// Roll back on panic so the connection goes back to the pool.
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p)
		}
	}()

	err = fn(&Repository{pool: r.pool, q: tx})
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Conversion methods

const conversionColumns = `id, input, output, from_script, to_script, convention, request_id, created_at`

func (r *Repository) RecordConversion(ctx context.Context, arg db.RecordConversionParams) (db.Conversion, error) {
	if err := db.ValidateRecord(arg); err != nil {
		return db.Conversion{}, err
	}

	row := r.q.QueryRow(ctx, `
		INSERT INTO conversions (input, output, from_script, to_script, convention, request_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+conversionColumns,
		arg.Input, arg.Output, arg.FromScript, arg.ToScript, arg.Convention, toPgText(arg.RequestID))
	return scanConversion(row)
}

func (r *Repository) GetConversion(ctx context.Context, id int64) (db.Conversion, error) {
	row := r.q.QueryRow(ctx, `SELECT `+conversionColumns+` FROM conversions WHERE id = $1`, id)
	return scanConversion(row)
}

func (r *Repository) ListRecentConversions(ctx context.Context, limit int32) ([]db.Conversion, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversions []db.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}

func (r *Repository) CountConversions(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&count)
	return count, err
}

func (r *Repository) CountConversionsByDirection(ctx context.Context) ([]db.DirectionCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT from_script, to_script, COUNT(*)
		FROM conversions
		GROUP BY from_script, to_script
		ORDER BY COUNT(*) DESC, from_script, to_script
	`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.DirectionCount, error) {
		var c db.DirectionCount
		err := row.Scan(&c.FromScript, &c.ToScript, &c.Count)
		return c, err
	})
}

func (r *Repository) DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM conversions WHERE created_at < $1`, pgtype.Timestamptz{Time: before, Valid: true})
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Helper functions

func scanConversion(row pgx.Row) (db.Conversion, error) {
	var c db.Conversion
	var requestID pgtype.Text
	var createdAt pgtype.Timestamptz
	err := row.Scan(&c.ID, &c.Input, &c.Output, &c.FromScript, &c.ToScript, &c.Convention, &requestID, &createdAt)
	if err == pgx.ErrNoRows {
		return db.Conversion{}, db.ErrNoRows
	}
	if err != nil {
		return db.Conversion{}, err
	}
	c.RequestID = fromPgText(requestID)
	c.CreatedAt = createdAt.Time
	return c, nil
}

func toPgText(s sql.NullString) pgtype.Text {
	return pgtype.Text{String: s.String, Valid: s.Valid}
}

func fromPgText(t pgtype.Text) sql.NullString {
	return sql.NullString{String: t.String, Valid: t.Valid}
}

var _ db.Repository = (*Repository)(nil)
