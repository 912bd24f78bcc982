package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/types"
)

// OrderDTO is the wire shape for one stored order.
type OrderDTO struct {
	ID             uuid.UUID       `json:"id"`
	Cart           types.CartLines `json:"cart"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Shipping       decimal.Decimal `json:"shipping"`
	Total          decimal.Decimal `json:"total"`
	CustomerName   string          `json:"customer_name"`
	WeekID         string          `json:"week_id"`
	WeekNumber     int             `json:"week_number"`
	Year           int             `json:"year"`
	ManualPosition *int            `json:"manual_position,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateOrderInput is the payload to persist one checkout.
type CreateOrderInput struct {
	Cart         types.CartLines `json:"cart" validate:"required,min=1"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	CustomerName string          `json:"customer_name" validate:"max=120"`
}

// NewOrderDTO maps an order row to its wire shape.
func NewOrderDTO(order *models.Order) OrderDTO {
	return OrderDTO{
		ID:             order.ID,
		Cart:           order.Cart,
		Subtotal:       order.Subtotal,
		Shipping:       order.Shipping,
		Total:          order.Total,
		CustomerName:   order.CustomerName,
		WeekID:         order.WeekID,
		WeekNumber:     order.WeekNumber,
		Year:           order.Year,
		ManualPosition: order.ManualPosition,
		CreatedAt:      order.CreatedAt,
	}
}

func newOrderDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewOrderDTO(&rows[i]))
	}
	return out
}
