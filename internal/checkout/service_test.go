package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ingenio-organico-app/ingenio-organico-app/internal/orders"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/enums"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
)

type stubLoader struct {
	byID map[uuid.UUID]*models.Product
}

func (s *stubLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubWriter struct {
	input *orders.CreateOrderInput
	err   error
}

func (s *stubWriter) Create(ctx context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.input = &input
	return &orders.OrderDTO{
		ID:           uuid.New(),
		Cart:         input.Cart,
		Subtotal:     input.Subtotal,
		Shipping:     input.Shipping,
		Total:        input.Subtotal.Add(input.Shipping),
		CustomerName: input.CustomerName,
		WeekID:       "2025-29",
	}, nil
}

func newProduct(name string, price int64, weighed bool) *models.Product {
	return &models.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.NewFromInt(price),
		Unit:      enums.ProductUnitKilogram,
		Weighed:   weighed,
		Available: true,
	}
}

func testConfig() config.CheckoutConfig {
	return config.CheckoutConfig{ShippingFee: 100}
}

func TestQuotePricesCart(t *testing.T) {
	t.Parallel()

	tomato := newProduct("Tomate", 10, false)
	cheese := newProduct("Queso", 0, true)
	loader := &stubLoader{byID: map[uuid.UUID]*models.Product{tomato.ID: tomato, cheese.ID: cheese}}

	svc, err := NewService(loader, &stubWriter{}, testConfig())
	require.NoError(t, err)

	got, err := svc.Quote(context.Background(), CheckoutInput{Items: []CartItemInput{
		{ProductID: tomato.ID, Qty: 2},
		{ProductID: cheese.ID, Qty: 1},
	}})
	require.NoError(t, err)

	assert.Equal(t, "20", got.Subtotal.String())
	assert.Equal(t, "100", got.Shipping.String())
	assert.Equal(t, "120", got.Total.String())
	assert.Equal(t, []string{"Queso"}, got.Weighed)
	require.Len(t, got.Cart, 2)
	assert.Equal(t, "Tomate", got.Cart[0].Name)
	assert.Equal(t, 2, got.Cart[0].Qty.Int())
	assert.True(t, got.Cart[1].Weighed)
	assert.Contains(t, got.Message, "Total: $120 + productos a pesar (Queso)")
	assert.Contains(t, got.WhatsAppURL, "https://wa.me/?text=")
}

func TestQuoteRejectsUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubLoader{byID: map[uuid.UUID]*models.Product{}}, &stubWriter{}, testConfig())
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), CheckoutInput{Items: []CartItemInput{{ProductID: uuid.New(), Qty: 1}}})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestQuoteRejectsUnavailableProduct(t *testing.T) {
	t.Parallel()

	hidden := newProduct("Oculto", 10, false)
	hidden.Available = false
	svc, err := NewService(&stubLoader{byID: map[uuid.UUID]*models.Product{hidden.ID: hidden}}, &stubWriter{}, testConfig())
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), CheckoutInput{Items: []CartItemInput{{ProductID: hidden.ID, Qty: 1}}})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestQuoteRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubLoader{}, &stubWriter{}, testConfig())
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), CheckoutInput{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCheckoutStoresPricedOrder(t *testing.T) {
	t.Parallel()

	tomato := newProduct("Tomate", 10, false)
	onion := newProduct("Cebolla", 15, false)
	loader := &stubLoader{byID: map[uuid.UUID]*models.Product{tomato.ID: tomato, onion.ID: onion}}
	writer := &stubWriter{}

	svc, err := NewService(loader, writer, testConfig())
	require.NoError(t, err)

	got, err := svc.Checkout(context.Background(), CheckoutInput{
		Items: []CartItemInput{
			{ProductID: tomato.ID, Qty: 2},
			{ProductID: onion.ID, Qty: 1},
		},
		CustomerName: "Ana",
	})
	require.NoError(t, err)

	require.NotNil(t, writer.input)
	assert.Equal(t, "35", writer.input.Subtotal.String())
	assert.Equal(t, "Ana", writer.input.CustomerName)
	assert.Equal(t, "135", got.Order.Total.String())
	assert.Contains(t, got.Message, "• Tomate x 2")
	assert.Contains(t, got.Message, "• Cebolla x 1")
}
