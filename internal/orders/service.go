package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ingenio-organico-app/ingenio-organico-app/internal/isoweek"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/ordering"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/redis"
)

// Publisher emits the per-week change notification that live stats views
// subscribe to.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload string) error
}

// Service exposes order persistence and the admin bookkeeping operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	ListWeek(ctx context.Context, weekID string) ([]OrderDTO, error)
	ListWeeks(ctx context.Context) ([]WeekBucket, error)
	RenameCustomer(ctx context.Context, orderID uuid.UUID, name string) (*OrderDTO, error)
	Move(ctx context.Context, orderID uuid.UUID, direction ordering.Direction) ([]OrderDTO, error)
	Reorder(ctx context.Context, weekID string, fromIndex, toIndex int) ([]OrderDTO, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

type service struct {
	repo      Repository
	dbClient  *db.Client
	publisher Publisher
	logger    *logger.Logger
	now       func() time.Time
}

// NewService constructs the orders service. The publisher may be nil; live
// views then simply miss change notifications.
func NewService(repo Repository, dbClient *db.Client, publisher Publisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		publisher: publisher,
		logger:    logg,
		now:       time.Now,
	}, nil
}

// Create stamps the order into the ISO week containing its creation instant
// and persists it. The week fields are written once and never recomputed, so
// reports stay stable even if week derivation rules were ever revisited.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if len(input.Cart) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart cannot be empty")
	}
	if input.Subtotal.IsNegative() || input.Shipping.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amounts cannot be negative")
	}

	now := s.now()
	week := isoweek.Of(now)
	order := &models.Order{
		Cart:         input.Cart,
		Subtotal:     input.Subtotal,
		Shipping:     input.Shipping,
		Total:        input.Subtotal.Add(input.Shipping),
		CustomerName: input.CustomerName,
		WeekID:       week.ID(),
		WeekNumber:   week.Number,
		Year:         week.Year,
		CreatedAt:    now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	s.notifyWeek(ctx, created.WeekID)
	dto := NewOrderDTO(created)
	return &dto, nil
}

func (s *service) ListWeek(ctx context.Context, weekID string) ([]OrderDTO, error) {
	if _, err := isoweek.Parse(weekID); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid week id")
	}
	rows, err := s.repo.FindByWeekID(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("listing week %s: %w", weekID, err)
	}
	return newOrderDTOs(rows), nil
}

func (s *service) ListWeeks(ctx context.Context) ([]WeekBucket, error) {
	weeks, err := s.repo.ListWeeks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing weeks: %w", err)
	}
	return weeks, nil
}

func (s *service) RenameCustomer(ctx context.Context, orderID uuid.UUID, name string) (*OrderDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if err := s.repo.UpdateCustomerName(ctx, orderID, name); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, fmt.Errorf("renaming order: %w", err)
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reloading order: %w", err)
	}
	s.notifyWeek(ctx, order.WeekID)
	dto := NewOrderDTO(order)
	return &dto, nil
}

func (s *service) Move(ctx context.Context, orderID uuid.UUID, direction ordering.Direction) ([]OrderDTO, error) {
	if !direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "direction must be up or down")
	}
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var result []OrderDTO
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		week, err := repo.FindByWeekID(ctx, order.WeekID)
		if err != nil {
			return err
		}
		items := ordering.MoveWithinGroup(toItems(week), orderID, direction)
		if err := repo.UpdatePositions(ctx, toPositions(items)); err != nil {
			return err
		}
		result = reorderedDTOs(week, items)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("moving order: %w", err)
	}

	s.notifyWeek(ctx, order.WeekID)
	return result, nil
}

func (s *service) Reorder(ctx context.Context, weekID string, fromIndex, toIndex int) ([]OrderDTO, error) {
	if _, err := isoweek.Parse(weekID); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid week id")
	}

	var result []OrderDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		week, err := repo.FindByWeekID(ctx, weekID)
		if err != nil {
			return err
		}
		items := ordering.ReorderAfterDrag(toItems(week), fromIndex, toIndex)
		if err := repo.UpdatePositions(ctx, toPositions(items)); err != nil {
			return err
		}
		result = reorderedDTOs(week, items)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reordering week %s: %w", weekID, err)
	}

	s.notifyWeek(ctx, weekID)
	return result, nil
}

func (s *service) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return fmt.Errorf("deleting order: %w", err)
	}
	s.notifyWeek(ctx, order.WeekID)
	return nil
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, fmt.Errorf("loading order: %w", err)
	}
	return order, nil
}

// notifyWeek is fire-and-forget: a missed notification only delays a live
// view until the next change, it never loses data.
func (s *service) notifyWeek(ctx context.Context, weekID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, redis.OrdersChangedChannel(weekID), "changed"); err != nil {
		s.logger.Error(s.logger.WithWeekID(ctx, weekID), "publishing orders changed failed", err)
	}
}

// Ordering helpers: orders sort by manual position with unplaced rows last;
// the tie-break key is the creation instant so ledger math stays stable for
// rows that were never dragged.
func toItems(rows []models.Order) []ordering.Item {
	items := make([]ordering.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, ordering.Item{
			ID:       row.ID,
			Name:     row.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000"),
			Position: row.ManualPosition,
		})
	}
	return items
}

func toPositions(items []ordering.Item) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		if it.Position != nil {
			out[it.ID] = *it.Position
		}
	}
	return out
}

func reorderedDTOs(rows []models.Order, items []ordering.Item) []OrderDTO {
	byID := make(map[uuid.UUID]*models.Order, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	out := make([]OrderDTO, 0, len(items))
	for _, it := range items {
		row, ok := byID[it.ID]
		if !ok {
			continue
		}
		row.ManualPosition = it.Position
		out = append(out, NewOrderDTO(row))
	}
	return out
}
