package whatsapp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"sikassosugu.ml/app/internal/modules/checkout"
	"sikassosugu.ml/app/internal/modules/delivery"
	"sikassosugu.ml/app/internal/modules/orders"
	"sikassosugu.ml/app/pkg/view"
)

// LinkBuilder produces wa.me deep links with a prefilled French
// message. WhatsApp is the primary contact channel for most customers,
// so every order and product screen carries one of these.
type LinkBuilder struct {
	salesNumber   string
	supportNumber string
	baseURL       string
}

// Numbers are E.164 digits without the leading "+", as wa.me expects.
func NewLinkBuilder(salesNumber, supportNumber, baseURL string) *LinkBuilder {
	return &LinkBuilder{
		salesNumber:   cleanNumber(salesNumber),
		supportNumber: cleanNumber(supportNumber),
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
}

func cleanNumber(n string) string {
	var b strings.Builder
	for _, r := range n {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func link(number, text string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

// OrderLink prefills an order-confirmation message so the customer can
// announce the payment or ask about delivery in one tap. The full
// summary goes in the text so the seller needs nothing but the chat.
func (b *LinkBuilder) OrderLink(o orders.Order, items []orders.OrderItem) string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "Bonjour Sikasso Sugu, je viens de passer la commande %s.\n", o.OrderNumber)

	var addr checkout.Address
	_ = json.Unmarshal(o.ShippingAddressJSON, &addr)
	if name := strings.TrimSpace(addr.FirstName + " " + addr.LastName); name != "" {
		fmt.Fprintf(&msg, "Client : %s", name)
		if addr.Phone != "" {
			fmt.Fprintf(&msg, " (%s)", addr.Phone)
		}
		msg.WriteString("\n")
	}
	if line := addressLine(addr, o.DeliveryZoneJSON); line != "" {
		fmt.Fprintf(&msg, "Adresse : %s\n", line)
	}
	if label := paymentLabel(o.PaymentMethod); label != "" {
		fmt.Fprintf(&msg, "Paiement : %s\n", label)
	}

	for _, it := range items {
		fmt.Fprintf(&msg, "- %d x %s\n", it.Quantity, it.ProductName)
	}
	fmt.Fprintf(&msg, "Total : %s", view.FormatFCFA(o.TotalFCFA))
	return link(b.salesNumber, msg.String())
}

func addressLine(addr checkout.Address, zoneJSON []byte) string {
	parts := make([]string, 0, 3)
	if addr.Line1 != "" {
		parts = append(parts, addr.Line1)
	}
	var z delivery.Zone
	if len(zoneJSON) > 0 {
		if err := json.Unmarshal(zoneJSON, &z); err == nil && z.Name != "" {
			parts = append(parts, z.Name)
		}
	}
	if addr.City != "" {
		parts = append(parts, addr.City)
	}
	return strings.Join(parts, ", ")
}

func paymentLabel(method string) string {
	switch method {
	case checkout.MethodMobileMoney:
		return "Mobile Money"
	case checkout.MethodCashOnDelivery:
		return "Paiement à la livraison"
	}
	return ""
}

// ProductLink prefills an availability question about one product.
func (b *LinkBuilder) ProductLink(name, slug string) string {
	msg := fmt.Sprintf("Bonjour, le produit \"%s\" est-il disponible ?", name)
	if b.baseURL != "" && slug != "" {
		msg += "\n" + b.baseURL + "/products/" + slug
	}
	return link(b.salesNumber, msg)
}

// SupportLink is the generic contact entry point.
func (b *LinkBuilder) SupportLink() string {
	return link(b.supportNumber, "Bonjour Sikasso Sugu, j'ai besoin d'aide.")
}

// Numbers returns the sales and support numbers as wa.me digits.
func (b *LinkBuilder) Numbers() (sales, support string) {
	return b.salesNumber, b.supportNumber
}
