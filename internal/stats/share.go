package stats

import (
	"fmt"
	"strings"

	"github.com/ingenio-organico-app/ingenio-organico-app/internal/checkout"
)

// Share is the weekly report rendered as a message ready to forward over
// WhatsApp, typically to the grower who packs the orders.
type Share struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// ComposeShare renders the summary as plain text, one bullet per product
// total, and wraps it in a wa.me link with no recipient so the sender picks
// the chat.
func ComposeShare(weekID string, summary Summary) Share {
	lines := make([]string, 0, len(summary.Products))
	for _, total := range summary.Products {
		lines = append(lines, fmt.Sprintf("• %s x %d %s", total.Name, total.Quantity, total.Unit))
	}

	message := fmt.Sprintf("Resumen de productos pedidos en la semana %s:\n\n%s", weekID, strings.Join(lines, "\n"))

	return Share{
		Message:     message,
		WhatsAppURL: checkout.WhatsAppURL("", message),
	}
}
