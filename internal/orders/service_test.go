package orders

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/types"
)

type stubOrderRepo struct {
	Repository
	created *models.Order
	byID    map[uuid.UUID]*models.Order
	weeks   []WeekBucket
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.created = order
	return order, nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := s.byID[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) ListWeeks(ctx context.Context) ([]WeekBucket, error) {
	return s.weeks, nil
}

func (s *stubOrderRepo) UpdateCustomerName(ctx context.Context, id uuid.UUID, name string) error {
	o, ok := s.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.CustomerName = name
	return nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	channels []string
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, payload string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "orders-test", Level: zerolog.Disabled, Output: io.Discard})
}

func newTestService(repo Repository, pub Publisher, now time.Time) *service {
	return &service{
		repo:      repo,
		dbClient:  &db.Client{},
		publisher: pub,
		logger:    testLogger(),
		now:       func() time.Time { return now },
	}
}

func TestCreateStampsWeekOnce(t *testing.T) {
	repo := &stubOrderRepo{}
	pub := &recordingPublisher{}
	// Sunday night still belongs to the week that started the prior Monday.
	svc := newTestService(repo, pub, time.Date(2025, time.January, 5, 23, 30, 0, 0, time.UTC))

	got, err := svc.Create(context.Background(), CreateOrderInput{
		Cart:         types.CartLines{{Name: "Tomate", Qty: 2}},
		Subtotal:     decimal.NewFromInt(20),
		Shipping:     decimal.NewFromInt(100),
		CustomerName: "Ana",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got.WeekID != "2025-01" {
		t.Fatalf("expected week 2025-01, got %s", got.WeekID)
	}
	if got.Year != 2025 || got.WeekNumber != 1 {
		t.Fatalf("expected 2025/1, got %d/%d", got.Year, got.WeekNumber)
	}
	if got.Total.String() != "120" {
		t.Fatalf("expected total 120, got %s", got.Total.String())
	}
	if len(pub.channels) != 1 || pub.channels[0] != "ingenio:orders_changed:2025-01" {
		t.Fatalf("unexpected publishes %v", pub.channels)
	}
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, nil, time.Now())

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Subtotal: decimal.NewFromInt(10),
		Shipping: decimal.NewFromInt(100),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsNegativeAmounts(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, nil, time.Now())

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Cart:     types.CartLines{{Name: "Tomate", Qty: 1}},
		Subtotal: decimal.NewFromInt(-5),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRenameCustomer(t *testing.T) {
	id := uuid.New()
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{
		id: {ID: id, CustomerName: "", WeekID: "2025-10"},
	}}
	pub := &recordingPublisher{}
	svc := newTestService(repo, pub, time.Now())

	got, err := svc.RenameCustomer(context.Background(), id, "Carlos")
	if err != nil {
		t.Fatalf("RenameCustomer: %v", err)
	}
	if got.CustomerName != "Carlos" {
		t.Fatalf("expected Carlos, got %s", got.CustomerName)
	}
	if len(pub.channels) != 1 || pub.channels[0] != "ingenio:orders_changed:2025-10" {
		t.Fatalf("unexpected publishes %v", pub.channels)
	}
}

func TestRenameCustomerNotFound(t *testing.T) {
	svc := newTestService(&stubOrderRepo{byID: map[uuid.UUID]*models.Order{}}, nil, time.Now())

	_, err := svc.RenameCustomer(context.Background(), uuid.New(), "Carlos")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListWeekValidatesID(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, nil, time.Now())

	_, err := svc.ListWeek(context.Background(), "nope")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListWeeks(t *testing.T) {
	repo := &stubOrderRepo{weeks: []WeekBucket{
		{WeekID: "2025-29", Year: 2025, WeekNumber: 29, OrderCount: 4},
		{WeekID: "2025-28", Year: 2025, WeekNumber: 28, OrderCount: 9},
	}}
	svc := newTestService(repo, nil, time.Now())

	got, err := svc.ListWeeks(context.Background())
	if err != nil {
		t.Fatalf("ListWeeks: %v", err)
	}
	if len(got) != 2 || got[0].WeekID != "2025-29" {
		t.Fatalf("unexpected weeks %v", got)
	}
}

func TestOrderingItemsUseCreationInstantAsTieBreak(t *testing.T) {
	early := models.Order{ID: uuid.New(), CreatedAt: time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)}
	late := models.Order{ID: uuid.New(), CreatedAt: time.Date(2025, 7, 14, 18, 0, 0, 0, time.UTC)}

	items := toItems([]models.Order{late, early})
	if items[0].ID != late.ID {
		t.Fatalf("toItems must preserve input order")
	}
	// Fixed-width timestamps sort chronologically, so the ledger tie-break
	// matches creation order.
	if items[0].Name <= items[1].Name {
		t.Fatalf("later instant must sort after earlier one: %s vs %s", items[0].Name, items[1].Name)
	}
}
