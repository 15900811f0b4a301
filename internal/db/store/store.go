// Package store picks a history backend from a URL and runs the
// housekeeping loops that go with it.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/kanaconv/internal/db"
	"github.com/jusunglee/kanaconv/internal/db/postgres"
	"github.com/jusunglee/kanaconv/internal/db/sqlite"
	"github.com/jusunglee/kanaconv/internal/metrics"
)

// Open returns a PostgreSQL repository for postgres:// and postgresql://
// URLs and a SQLite one for anything else (a path, "sqlite://path" or
// ":memory:").
func Open(ctx context.Context, url string) (db.Repository, error) {
	switch {
	case url == "":
		return nil, errors.New("empty database URL")
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		repo, err := postgres.New(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("creating PostgreSQL connection: %w", err)
		}
		return repo, nil
	default:
		repo, err := sqlite.New(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("creating SQLite database: %w", err)
		}
		return repo, nil
	}
}

// Prune deletes history older than retention and reports how many rows went.
func Prune(ctx context.Context, repo db.Repository, retention time.Duration, now time.Time) (int64, error) {
	n, err := repo.DeleteConversionsBefore(ctx, now.Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	metrics.HistoryPruned.Add(float64(n))
	return n, nil
}

// RunRetention prunes history every interval until ctx is done.
func RunRetention(ctx context.Context, repo db.Repository, retention, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			n, err := Prune(ctx, repo, retention, time.Now())
			if err != nil {
				log.ErrorContext(ctx, "history retention failed", "error", err)
				continue
			}
			if n > 0 {
				log.InfoContext(ctx, "pruned conversion history", "rows", n, "retention", retention)
			}
		case <-ctx.Done():
			return
		}
	}
}

type poolStater interface {
	PoolStats() *pgxpool.Stat
}

// ExportPoolStats periodically copies pgxpool stats into Prometheus gauges.
// Backends without a pool are ignored.
func ExportPoolStats(ctx context.Context, repo db.Repository, interval time.Duration) {
	ps, ok := repo.(poolStater)
	if !ok {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s := ps.PoolStats()
			metrics.DBPoolTotalConns.Set(float64(s.TotalConns()))
			metrics.DBPoolIdleConns.Set(float64(s.IdleConns()))
			metrics.DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
			metrics.DBPoolMaxConns.Set(float64(s.MaxConns()))
		case <-ctx.Done():
			return
		}
	}
}
