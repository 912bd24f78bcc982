package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByWeekID(ctx context.Context, weekID string) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Order("manual_position ASC NULLS LAST, created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) ListWeeks(ctx context.Context) ([]WeekBucket, error) {
	var out []WeekBucket
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("week_id, year, week_number, COUNT(*) AS order_count").
		Group("week_id, year, week_number").
		Order("year DESC, week_number DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpdateCustomerName(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("customer_name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	for id, pos := range positions {
		err := r.db.WithContext(ctx).
			Model(&models.Order{}).
			Where("id = ?", id).
			Update("manual_position", pos).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
