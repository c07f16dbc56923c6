package email

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"sikassosugu.ml/app/internal/modules/checkout"
	"sikassosugu.ml/app/internal/modules/delivery"
	"sikassosugu.ml/app/internal/modules/orders"
	"sikassosugu.ml/app/pkg/view"
)

// OrderNotifier emails the back office when a new order lands. It
// implements orders.Notifier; the caller treats failures as
// best-effort.
type OrderNotifier struct {
	sender  Sender
	to      string
	baseURL string
}

func NewOrderNotifier(sender Sender, to, baseURL string) *OrderNotifier {
	return &OrderNotifier{sender: sender, to: to, baseURL: strings.TrimRight(baseURL, "/")}
}

func (n *OrderNotifier) NotifyNewOrder(ctx context.Context, o orders.Order, items []orders.OrderItem) error {
	if n.to == "" {
		return fmt.Errorf("order notification recipient not configured")
	}

	var addr checkout.Address
	_ = json.Unmarshal(o.ShippingAddressJSON, &addr)

	var zone *delivery.Zone
	if len(o.DeliveryZoneJSON) > 0 {
		var z delivery.Zone
		if err := json.Unmarshal(o.DeliveryZoneJSON, &z); err == nil && z.Name != "" {
			zone = &z
		}
	}

	subject := "Nouvelle commande " + o.OrderNumber + " - " + view.FormatFCFA(o.TotalFCFA)

	return n.sender.Send(ctx, Message{
		To:      n.to,
		Subject: subject,
		Text:    n.textBody(o, items, addr, zone),
		HTML:    n.htmlBody(o, items, addr, zone),
	})
}

func paymentLabel(method string) string {
	switch method {
	case checkout.MethodMobileMoney:
		return "Mobile Money (à vérifier)"
	case checkout.MethodCashOnDelivery:
		return "Paiement à la livraison"
	default:
		return method
	}
}

func (n *OrderNotifier) textBody(o orders.Order, items []orders.OrderItem, addr checkout.Address, zone *delivery.Zone) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Commande %s\n\n", o.OrderNumber)
	fmt.Fprintf(&b, "Client : %s %s\n", addr.FirstName, addr.LastName)
	if addr.Phone != "" {
		fmt.Fprintf(&b, "Téléphone : %s\n", addr.Phone)
	}
	if zone != nil {
		fmt.Fprintf(&b, "Zone : %s (%s)\n", zone.Name, zone.TimeRange)
	}
	if addr.Line1 != "" {
		fmt.Fprintf(&b, "Adresse : %s\n", addr.Line1)
	}
	fmt.Fprintf(&b, "Paiement : %s\n\n", paymentLabel(o.PaymentMethod))

	b.WriteString("Articles :\n")
	for _, it := range items {
		fmt.Fprintf(&b, "  %d x %s = %s\n", it.Quantity, it.ProductName, view.FormatFCFA(it.LineFCFA))
	}

	fmt.Fprintf(&b, "\nSous-total : %s\n", view.FormatFCFA(o.SubtotalFCFA))
	fmt.Fprintf(&b, "Livraison : %s\n", view.FormatFCFA(o.ShippingFCFA))
	fmt.Fprintf(&b, "Total : %s\n", view.FormatFCFA(o.TotalFCFA))

	if n.baseURL != "" {
		fmt.Fprintf(&b, "\nDétails : %s/admin/orders/%s\n", n.baseURL, o.ID)
	}
	return b.String()
}

func (n *OrderNotifier) htmlBody(o orders.Order, items []orders.OrderItem, addr checkout.Address, zone *delivery.Zone) string {
	esc := html.EscapeString

	var b strings.Builder
	b.WriteString(`<html><body style="font-family: sans-serif;">`)
	fmt.Fprintf(&b, "<h2>Commande %s</h2>", esc(o.OrderNumber))

	fmt.Fprintf(&b, "<p><strong>Client :</strong> %s %s", esc(addr.FirstName), esc(addr.LastName))
	if addr.Phone != "" {
		fmt.Fprintf(&b, "<br><strong>Téléphone :</strong> %s", esc(addr.Phone))
	}
	if zone != nil {
		fmt.Fprintf(&b, "<br><strong>Zone :</strong> %s (%s)", esc(zone.Name), esc(zone.TimeRange))
	}
	if addr.Line1 != "" {
		fmt.Fprintf(&b, "<br><strong>Adresse :</strong> %s", esc(addr.Line1))
	}
	fmt.Fprintf(&b, "<br><strong>Paiement :</strong> %s</p>", esc(paymentLabel(o.PaymentMethod)))

	b.WriteString(`<table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse;">`)
	b.WriteString("<tr><th>Article</th><th>Qté</th><th>Montant</th></tr>")
	for _, it := range items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s</td></tr>",
			esc(it.ProductName), it.Quantity, esc(view.FormatFCFA(it.LineFCFA)))
	}
	b.WriteString("</table>")

	fmt.Fprintf(&b, "<p>Sous-total : %s<br>", esc(view.FormatFCFA(o.SubtotalFCFA)))
	fmt.Fprintf(&b, "Livraison : %s<br>", esc(view.FormatFCFA(o.ShippingFCFA)))
	fmt.Fprintf(&b, "<strong>Total : %s</strong></p>", esc(view.FormatFCFA(o.TotalFCFA)))

	if n.baseURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s/admin/orders/%s">Voir la commande</a></p>`, n.baseURL, esc(o.ID))
	}
	b.WriteString("</body></html>")
	return b.String()
}
