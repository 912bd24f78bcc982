package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/types"
)

const messageSeparator = "--------------------"

// ComposeMessage renders the plain-text order summary handed to WhatsApp.
// Weighed lines are tagged "(🟰 a pesar)" and contribute nothing to the
// subtotal, which the total line calls out by listing their names.
func ComposeMessage(cart types.CartLines, subtotal, shipping decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("Hola! Te paso mi pedido:\n\n")

	var weighedNames []string
	for i, line := range cart {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(line.Name)
		b.WriteString(" x ")
		b.WriteString(strconv.Itoa(line.Qty.Int()))
		if line.Weighed {
			b.WriteString(" (🟰 a pesar)")
			weighedNames = append(weighedNames, line.Name)
		}
		if line.Extra {
			b.WriteString(" (EXTRA)")
		}
	}

	total := subtotal.Add(shipping)
	b.WriteString("\n\n")
	b.WriteString(messageSeparator)
	b.WriteString("\nSubtotal: $")
	b.WriteString(subtotal.String())
	b.WriteString("\nEnvío: $")
	b.WriteString(shipping.String())
	b.WriteString("\nTotal: $")
	b.WriteString(total.String())
	if len(weighedNames) > 0 {
		b.WriteString(" + productos a pesar (")
		b.WriteString(strings.Join(weighedNames, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// WhatsAppURL builds the wa.me hand-off link. Phone may be empty, in which
// case the recipient picker opens on the customer's device. Spaces are
// escaped as %20 because wa.me renders "+" literally.
func WhatsAppURL(phone, message string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + escaped
}
