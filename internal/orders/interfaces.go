package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
)

// Repository defines persistence operations for stored orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByWeekID(ctx context.Context, weekID string) ([]models.Order, error)
	ListWeeks(ctx context.Context) ([]WeekBucket, error)
	UpdateCustomerName(ctx context.Context, id uuid.UUID, name string) error
	UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WeekBucket is one row of the week index: an ISO week that has at least one
// stored order.
type WeekBucket struct {
	WeekID     string `gorm:"column:week_id" json:"week_id"`
	Year       int    `gorm:"column:year" json:"year"`
	WeekNumber int    `gorm:"column:week_number" json:"week_number"`
	OrderCount int    `gorm:"column:order_count" json:"order_count"`
}
