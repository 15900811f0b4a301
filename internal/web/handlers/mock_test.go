package handlers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jusunglee/kanaconv/internal/db"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) RecordConversion(ctx context.Context, arg db.RecordConversionParams) (db.Conversion, error) {
	ret := m.Called(ctx, arg)
	return ret.Get(0).(db.Conversion), ret.Error(1)
}

func (m *MockRepository) GetConversion(ctx context.Context, id int64) (db.Conversion, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(db.Conversion), ret.Error(1)
}

func (m *MockRepository) ListRecentConversions(ctx context.Context, limit int32) ([]db.Conversion, error) {
	ret := m.Called(ctx, limit)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]db.Conversion), ret.Error(1)
}

func (m *MockRepository) CountConversions(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *MockRepository) CountConversionsByDirection(ctx context.Context) ([]db.DirectionCount, error) {
	ret := m.Called(ctx)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]db.DirectionCount), ret.Error(1)
}

func (m *MockRepository) DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error) {
	ret := m.Called(ctx, before)
	return ret.Get(0).(int64), ret.Error(1)
}

// WithTx runs fn against the mock itself.
func (m *MockRepository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	m.Called(ctx)
	return fn(m)
}

func (m *MockRepository) Close() error {
	return m.Called().Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
