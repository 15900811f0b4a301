package db

import (
	"context"
	"database/sql"
	"time"
)

// Conversion is one recorded transliteration.
type Conversion struct {
	ID         int64
	Input      string
	Output     string
	FromScript string
	ToScript   string
	Convention string
	RequestID  sql.NullString
	CreatedAt  time.Time
}

type RecordConversionParams struct {
	Input      string
	Output     string
	FromScript string
	ToScript   string
	Convention string
	RequestID  sql.NullString
}

// DirectionCount is the number of recorded conversions for one direction.
type DirectionCount struct {
	FromScript string
	ToScript   string
	Count      int64
}

// Repository defines the interface for database operations
type Repository interface {
	// Conversion history
	RecordConversion(ctx context.Context, arg RecordConversionParams) (Conversion, error)
	GetConversion(ctx context.Context, id int64) (Conversion, error)
	ListRecentConversions(ctx context.Context, limit int32) ([]Conversion, error)
	CountConversions(ctx context.Context) (int64, error)
	CountConversionsByDirection(ctx context.Context) ([]DirectionCount, error)

	// Retention/Cleanup
	DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	// Lifecycle
	Close() error
}
