package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/enums"
)

// Product represents one catalog listing. Position is the sparse manual sort
// key; nil means the product sorts after every positioned one.
type Product struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name       string            `gorm:"column:name;not null"`
	Price      decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	Unit       enums.ProductUnit `gorm:"column:unit;not null;default:'unit'"`
	GramAmount *int              `gorm:"column:gram_amount"`
	Extra      bool              `gorm:"column:extra;not null;default:false"`
	Weighed    bool              `gorm:"column:weighed;not null;default:false"`
	Available  bool              `gorm:"column:available;not null;default:true"`
	Position   *int              `gorm:"column:position"`
	Icon       *string           `gorm:"column:icon"`
	ImageRef   *string           `gorm:"column:image_ref"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
