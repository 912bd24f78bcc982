package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ingenio-organico-app/ingenio-organico-app/internal/orders"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/types"
)

// CartItemInput is one submitted cart row, priced server-side from the
// catalog.
type CartItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty" validate:"required,gt=0"`
}

// CheckoutInput is the payload for placing an order.
type CheckoutInput struct {
	Items        []CartItemInput `json:"items" validate:"required,min=1,dive"`
	CustomerName string          `json:"customer_name" validate:"max=120"`
}

// QuoteDTO is the priced cart before (or after) persistence.
type QuoteDTO struct {
	Cart        types.CartLines `json:"cart"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Shipping    decimal.Decimal `json:"shipping"`
	Total       decimal.Decimal `json:"total"`
	Weighed     []string        `json:"weighed,omitempty"`
	Message     string          `json:"message"`
	WhatsAppURL string          `json:"whatsapp_url"`
}

// CheckoutResultDTO couples the stored order with the outbound hand-off.
type CheckoutResultDTO struct {
	Order       orders.OrderDTO `json:"order"`
	Message     string          `json:"message"`
	WhatsAppURL string          `json:"whatsapp_url"`
}
