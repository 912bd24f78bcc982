package stats

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/types"
)

type stubReader struct {
	mu     sync.Mutex
	orders []models.Order
	err    error
}

func (s *stubReader) FindByWeekID(ctx context.Context, weekID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *stubReader) set(orders []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

type stubSubscription struct {
	ch     chan struct{}
	closed bool
}

func (s *stubSubscription) Notifications() <-chan struct{} { return s.ch }
func (s *stubSubscription) Close() error {
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

type stubNotifier struct {
	sub *stubSubscription
	err error
}

func (s *stubNotifier) SubscribeOrdersChanged(ctx context.Context, weekID string) (Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sub, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "stats-test", Level: zerolog.Disabled, Output: io.Discard})
}

func TestWeeklySummaryValidatesWeekID(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubReader{}, nil, testLogger())
	require.NoError(t, err)

	_, err = svc.WeeklySummary(context.Background(), "not-a-week")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestWeeklySummaryAggregates(t *testing.T) {
	t.Parallel()

	reader := &stubReader{orders: []models.Order{
		{Cart: types.CartLines{{Name: "Tomate", Qty: 2}}, Subtotal: decimal.NewFromInt(20), Shipping: decimal.NewFromInt(100)},
	}}
	svc, err := NewService(reader, nil, testLogger())
	require.NoError(t, err)

	got, err := svc.WeeklySummary(context.Background(), "2025-29")
	require.NoError(t, err)
	assert.Equal(t, 1, got.OrderCount)
	assert.Equal(t, "120", got.TotalRevenue.String())
}

func TestWeeklySummaryWrapsReadError(t *testing.T) {
	t.Parallel()

	reader := &stubReader{err: errors.New("boom")}
	svc, err := NewService(reader, nil, testLogger())
	require.NoError(t, err)

	_, err = svc.WeeklySummary(context.Background(), "2025-29")
	require.Error(t, err)
	assert.ErrorContains(t, err, "2025-29")
}

func TestWatchEmitsSnapshotThenUpdates(t *testing.T) {
	t.Parallel()

	reader := &stubReader{orders: []models.Order{
		{Cart: types.CartLines{{Name: "Tomate", Qty: 1}}, Subtotal: decimal.NewFromInt(10), Shipping: decimal.NewFromInt(100)},
	}}
	sub := &stubSubscription{ch: make(chan struct{}, 1)}
	svc, err := NewService(reader, &stubNotifier{sub: sub}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := svc.Watch(ctx, "2025-29")
	require.NoError(t, err)

	first := <-stream
	assert.Equal(t, 1, first.OrderCount)

	reader.set([]models.Order{
		{Cart: types.CartLines{{Name: "Tomate", Qty: 1}}, Subtotal: decimal.NewFromInt(10), Shipping: decimal.NewFromInt(100)},
		{Cart: types.CartLines{{Name: "Cebolla", Qty: 2}}, Subtotal: decimal.NewFromInt(24), Shipping: decimal.NewFromInt(100)},
	})
	sub.ch <- struct{}{}

	second := <-stream
	assert.Equal(t, 2, second.OrderCount)
	assert.Equal(t, "244", second.TotalRevenue.String())

	cancel()
	for range stream {
	}
}

func TestWatchWithoutNotifierClosesAfterSnapshot(t *testing.T) {
	t.Parallel()

	reader := &stubReader{}
	svc, err := NewService(reader, nil, testLogger())
	require.NoError(t, err)

	stream, err := svc.Watch(context.Background(), "2025-01")
	require.NoError(t, err)

	got, ok := <-stream
	require.True(t, ok)
	assert.Equal(t, 0, got.OrderCount)

	_, ok = <-stream
	assert.False(t, ok)
}

func TestWatchSubscribeFailure(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubReader{}, &stubNotifier{err: errors.New("redis down")}, testLogger())
	require.NoError(t, err)

	_, err = svc.Watch(context.Background(), "2025-01")
	require.Error(t, err)
}

func TestCurrentWeekID(t *testing.T) {
	t.Parallel()

	got := CurrentWeekID(time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-01", got)
}
