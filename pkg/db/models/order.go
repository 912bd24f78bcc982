package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/types"
)

// Order captures one checkout event. WeekID/WeekNumber/Year are stamped once
// from CreatedAt when the row is written and are never recomputed on read.
type Order struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Cart           types.CartLines `gorm:"column:cart;type:jsonb"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Shipping       decimal.Decimal `gorm:"column:shipping;type:numeric(12,2);not null"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	CustomerName   string          `gorm:"column:customer_name;not null;default:''"`
	WeekID         string          `gorm:"column:week_id;not null;index"`
	WeekNumber     int             `gorm:"column:week_number;not null"`
	Year           int             `gorm:"column:year;not null"`
	ManualPosition *int            `gorm:"column:manual_position"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
