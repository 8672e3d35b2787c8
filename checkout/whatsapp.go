// whatsapp.go - Checkout hand-off to the operator's WhatsApp chat.
//
// There is no payment gateway: checkout composes a human-readable order
// summary and opens the messaging app's chat-compose link addressed to the
// operator, who finalizes the sale manually.

package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"petstore/models"
)

// NewOrderRef generates a short order number the operator can use to
// correlate the chat with the eventual order row.
func NewOrderRef() string {
	id := uuid.New().String()
	return "PET-" + strings.ToUpper(id[:8])
}

// BuildMessage renders the plaintext summary embedded in the deep link.
func BuildMessage(orderRef string, items []models.CartItem, subtotal, shipping, total float64, email, phone string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola! Quiero comprar (pedido %s):\n\n", orderRef)
	for _, item := range items {
		fmt.Fprintf(&b, "%dx %s - $%.2f\n", item.Quantity, item.Product.Name, item.Product.Price)
	}
	fmt.Fprintf(&b, "\nSubtotal: $%.2f\n", subtotal)
	if shipping == 0 {
		b.WriteString("Envío: GRATIS\n")
	} else {
		fmt.Fprintf(&b, "Envío: $%.2f\n", shipping)
	}
	fmt.Fprintf(&b, "Total: $%.2f\n\nMi email: %s\nMi teléfono: %s", total, email, phone)
	return b.String()
}

// WhatsAppURL builds the chat-compose deep link for the operator number.
func WhatsAppURL(number, message string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}
