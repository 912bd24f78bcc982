package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/ingenio-organico-app/ingenio-organico-app/internal/isoweek"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
)

// OrdersReader supplies the stored orders for one week bucket.
type OrdersReader interface {
	FindByWeekID(ctx context.Context, weekID string) ([]models.Order, error)
}

// Subscription delivers change notifications for one week bucket. Messages
// carry no payload worth reading: every notification means "re-read the
// snapshot".
type Subscription interface {
	Notifications() <-chan struct{}
	Close() error
}

// Notifier opens subscriptions to order-change notifications.
type Notifier interface {
	SubscribeOrdersChanged(ctx context.Context, weekID string) (Subscription, error)
}

// Service exposes the weekly report, both as a point read and as a live
// stream that re-aggregates on every change.
type Service interface {
	WeeklySummary(ctx context.Context, weekID string) (Summary, error)
	WeeklyShare(ctx context.Context, weekID string) (Share, error)
	Watch(ctx context.Context, weekID string) (<-chan Summary, error)
}

type service struct {
	orders   OrdersReader
	notifier Notifier
	logger   *logger.Logger
}

// NewService wires the stats service. The notifier may be nil, in which case
// Watch degrades to a single snapshot followed by channel close.
func NewService(orders OrdersReader, notifier Notifier, logg *logger.Logger) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("orders reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{orders: orders, notifier: notifier, logger: logg}, nil
}

func (s *service) WeeklySummary(ctx context.Context, weekID string) (Summary, error) {
	if _, err := isoweek.Parse(weekID); err != nil {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid week id")
	}
	orders, err := s.orders.FindByWeekID(ctx, weekID)
	if err != nil {
		return Summary{}, fmt.Errorf("loading orders for week %s: %w", weekID, err)
	}
	return Aggregate(orders), nil
}

func (s *service) WeeklyShare(ctx context.Context, weekID string) (Share, error) {
	summary, err := s.WeeklySummary(ctx, weekID)
	if err != nil {
		return Share{}, err
	}
	return ComposeShare(weekID, summary), nil
}

// Watch emits the current summary immediately, then a fresh full
// re-aggregation after every change notification. Deliberately not
// incremental: recomputing from the authoritative snapshot avoids drift
// between an in-memory running total and the store. The returned channel
// closes when ctx is done or the subscription drops.
func (s *service) Watch(ctx context.Context, weekID string) (<-chan Summary, error) {
	if _, err := isoweek.Parse(weekID); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid week id")
	}

	var sub Subscription
	if s.notifier != nil {
		var err error
		sub, err = s.notifier.SubscribeOrdersChanged(ctx, weekID)
		if err != nil {
			return nil, fmt.Errorf("subscribing to week %s: %w", weekID, err)
		}
	}

	out := make(chan Summary, 1)
	go s.stream(ctx, weekID, sub, out)
	return out, nil
}

func (s *service) stream(ctx context.Context, weekID string, sub Subscription, out chan<- Summary) {
	defer close(out)
	if sub != nil {
		defer func() {
			if err := sub.Close(); err != nil {
				s.logger.Warn(s.logger.WithWeekID(ctx, weekID), "closing stats subscription failed")
			}
		}()
	}

	if !s.emit(ctx, weekID, out) {
		return
	}
	if sub == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.Notifications():
			if !ok {
				return
			}
			if !s.emit(ctx, weekID, out) {
				return
			}
		}
	}
}

func (s *service) emit(ctx context.Context, weekID string, out chan<- Summary) bool {
	summary, err := s.WeeklySummary(ctx, weekID)
	if err != nil {
		// Keep the stream alive across transient read failures; the next
		// notification retries.
		s.logger.Error(s.logger.WithWeekID(ctx, weekID), "re-aggregating week failed", err)
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case out <- summary:
		return true
	}
}

// CurrentWeekID returns the canonical id for the week containing now.
func CurrentWeekID(now time.Time) string {
	return isoweek.Of(now).ID()
}
