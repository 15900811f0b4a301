package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jusunglee/kanaconv/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository implements db.Repository using SQLite
type Repository struct {
	db *sql.DB
	q  querier
}

// New opens (creating if needed) a SQLite history database. ":memory:"
// gives a private in-memory store.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	// Strip sqlite:// prefix if present
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	if dbPath == ":memory:" {
		// Each connection would otherwise get its own empty database.
		sqliteDB.SetMaxOpenConns(1)
	} else if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	slog.Debug("opened SQLite history database", "path", dbPath)

	return &Repository{db: sqliteDB, q: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Repository{db: r.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Conversion methods

func (r *Repository) RecordConversion(ctx context.Context, arg db.RecordConversionParams) (db.Conversion, error) {
	if err := db.ValidateRecord(arg); err != nil {
		return db.Conversion{}, err
	}

	result, err := r.q.ExecContext(ctx, `
		INSERT INTO conversions (input, output, from_script, to_script, convention, request_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, arg.Input, arg.Output, arg.FromScript, arg.ToScript, arg.Convention, nullString(arg.RequestID))
	if err != nil {
		return db.Conversion{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Conversion{}, err
	}

	return r.GetConversion(ctx, id)
}

func (r *Repository) GetConversion(ctx context.Context, id int64) (db.Conversion, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, input, output, from_script, to_script, convention, request_id, created_at
		FROM conversions
		WHERE id = ?
	`, id)
	return scanConversion(row)
}

func (r *Repository) ListRecentConversions(ctx context.Context, limit int32) ([]db.Conversion, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, input, output, from_script, to_script, convention, request_id, created_at
		FROM conversions
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanConversions(rows)
}

func (r *Repository) CountConversions(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&count)
	return count, err
}

func (r *Repository) CountConversionsByDirection(ctx context.Context) ([]db.DirectionCount, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT from_script, to_script, COUNT(*)
		FROM conversions
		GROUP BY from_script, to_script
		ORDER BY COUNT(*) DESC, from_script, to_script
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []db.DirectionCount
	for rows.Next() {
		var c db.DirectionCount
		if err := rows.Scan(&c.FromScript, &c.ToScript, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *Repository) DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM conversions WHERE created_at < ?`, before.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Helper functions

func scanConversion(row *sql.Row) (db.Conversion, error) {
	var c db.Conversion
	var createdAtStr string
	err := row.Scan(&c.ID, &c.Input, &c.Output, &c.FromScript, &c.ToScript, &c.Convention, &c.RequestID, &createdAtStr)
	if err == sql.ErrNoRows {
		return db.Conversion{}, db.ErrNoRows
	}
	if err != nil {
		return db.Conversion{}, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return c, nil
}

func scanConversions(rows *sql.Rows) ([]db.Conversion, error) {
	var conversions []db.Conversion
	for rows.Next() {
		var c db.Conversion
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.Input, &c.Output, &c.FromScript, &c.ToScript, &c.Convention, &c.RequestID, &createdAtStr); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}

func nullString(s sql.NullString) interface{} {
	if s.Valid {
		return s.String
	}
	return nil
}

var _ db.Repository = (*Repository)(nil)
