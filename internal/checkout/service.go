package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ingenio-organico-app/ingenio-organico-app/internal/orders"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/types"
)

// ProductLoader resolves submitted product ids against the catalog.
type ProductLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// OrderWriter persists the priced order.
type OrderWriter interface {
	Create(ctx context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error)
}

// Service prices carts and places orders.
type Service interface {
	Quote(ctx context.Context, input CheckoutInput) (*QuoteDTO, error)
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResultDTO, error)
}

type service struct {
	products ProductLoader
	orders   OrderWriter
	cfg      config.CheckoutConfig
}

// NewService constructs the checkout service.
func NewService(products ProductLoader, orderWriter OrderWriter, cfg config.CheckoutConfig) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if orderWriter == nil {
		return nil, fmt.Errorf("order writer required")
	}
	return &service{products: products, orders: orderWriter, cfg: cfg}, nil
}

// Quote prices the submitted cart. Weighed products never contribute to the
// subtotal: their final price is settled at the scale, so the quote lists
// them by name next to the total instead.
func (s *service) Quote(ctx context.Context, input CheckoutInput) (*QuoteDTO, error) {
	cart, subtotal, weighed, err := s.price(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	shipping := decimal.NewFromInt(int64(s.cfg.ShippingFee))
	message := ComposeMessage(cart, subtotal, shipping)
	return &QuoteDTO{
		Cart:        cart,
		Subtotal:    subtotal,
		Shipping:    shipping,
		Total:       subtotal.Add(shipping),
		Weighed:     weighed,
		Message:     message,
		WhatsAppURL: WhatsAppURL(s.cfg.WhatsAppPhone, message),
	}, nil
}

// Checkout prices the cart, stores the order, and returns the hand-off link.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResultDTO, error) {
	quote, err := s.Quote(ctx, input)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, orders.CreateOrderInput{
		Cart:         quote.Cart,
		Subtotal:     quote.Subtotal,
		Shipping:     quote.Shipping,
		CustomerName: input.CustomerName,
	})
	if err != nil {
		return nil, fmt.Errorf("storing order: %w", err)
	}

	return &CheckoutResultDTO{
		Order:       *order,
		Message:     quote.Message,
		WhatsAppURL: quote.WhatsAppURL,
	}, nil
}

func (s *service) price(ctx context.Context, items []CartItemInput) (types.CartLines, decimal.Decimal, []string, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeValidation, "cart cannot be empty")
	}

	cart := make(types.CartLines, 0, len(items))
	subtotal := decimal.Zero
	var weighed []string

	for i, item := range items {
		if item.Qty <= 0 {
			return nil, decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: qty must be positive", i))
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if db.IsNotFound(err) {
				return nil, decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: unknown product", i))
			}
			return nil, decimal.Zero, nil, fmt.Errorf("loading product %s: %w", item.ProductID, err)
		}
		if !product.Available {
			return nil, decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is not available", product.Name))
		}

		line := types.CartLine{
			Name:    product.Name,
			Qty:     types.Quantity(item.Qty),
			Unit:    product.Unit.String(),
			Weighed: product.Weighed,
			Extra:   product.Extra,
		}
		if product.Icon != nil {
			line.Icon = *product.Icon
		}
		if product.ImageRef != nil {
			line.Image = *product.ImageRef
		}
		cart = append(cart, line)

		if product.Weighed {
			weighed = append(weighed, product.Name)
			continue
		}
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	return cart, subtotal, weighed, nil
}
