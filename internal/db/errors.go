package db

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNoRows is returned when a lookup finds nothing.
	ErrNoRows = errors.New("no rows in result set")
	// ErrEmptyInput is returned when recording a conversion with no input text.
	ErrEmptyInput = errors.New("conversion input is empty")
)

// IsNoRows reports whether err means "not found", whichever driver produced it.
func IsNoRows(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, pgx.ErrNoRows)
}

// ValidateRecord checks arg before either backend writes it.
func ValidateRecord(arg RecordConversionParams) error {
	if arg.Input == "" {
		return ErrEmptyInput
	}
	return nil
}
