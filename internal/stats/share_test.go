package stats

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/types"
)

func TestComposeShareMessage(t *testing.T) {
	t.Parallel()

	summary := Summary{
		Products: []ProductTotal{
			{Name: "Cebolla", Unit: "kg", Quantity: 3},
			{Name: "Tomate", Unit: "kg", Quantity: 5},
		},
		OrderCount: 2,
	}

	share := ComposeShare("2025-14", summary)

	want := "Resumen de productos pedidos en la semana 2025-14:\n\n" +
		"• Cebolla x 3 kg\n" +
		"• Tomate x 5 kg"
	assert.Equal(t, want, share.Message)
}

func TestComposeShareKeepsUnitSlotWhenEmpty(t *testing.T) {
	t.Parallel()

	summary := Summary{Products: []ProductTotal{{Name: "Miel", Quantity: 1}}}
	share := ComposeShare("2025-14", summary)

	assert.Equal(t, "Resumen de productos pedidos en la semana 2025-14:\n\n• Miel x 1 ", share.Message)
}

func TestComposeShareLinkEscaping(t *testing.T) {
	t.Parallel()

	summary := Summary{Products: []ProductTotal{{Name: "Tomate", Unit: "kg", Quantity: 5}}}
	share := ComposeShare("2025-14", summary)

	require.True(t, strings.HasPrefix(share.WhatsAppURL, "https://wa.me/?text="))
	assert.Contains(t, share.WhatsAppURL, "Resumen%20de%20productos")
	assert.NotContains(t, share.WhatsAppURL, "+")
	assert.NotContains(t, share.WhatsAppURL, "\n")
}

func TestWeeklyShareAggregatesStoredOrders(t *testing.T) {
	t.Parallel()

	reader := &stubReader{orders: []models.Order{
		{
			WeekID:   "2025-14",
			Subtotal: decimal.NewFromInt(100),
			Cart: types.CartLines{
				{Name: "Tomate", Unit: "kg", Qty: 2},
			},
		},
	}}
	svc, err := NewService(reader, nil, testLogger())
	require.NoError(t, err)

	share, err := svc.WeeklyShare(context.Background(), "2025-14")
	require.NoError(t, err)
	assert.Equal(t, "Resumen de productos pedidos en la semana 2025-14:\n\n• Tomate x 2 kg", share.Message)
}

func TestWeeklyShareValidatesWeekID(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubReader{}, nil, testLogger())
	require.NoError(t, err)

	_, err = svc.WeeklyShare(context.Background(), "not-a-week")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
