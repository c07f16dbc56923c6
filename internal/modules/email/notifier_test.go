package email

import (
	"context"
	"strings"
	"testing"

	"gorm.io/datatypes"

	"sikassosugu.ml/app/internal/modules/orders"
)

type captureSender struct {
	sent []Message
	err  error
}

func (s *captureSender) Send(_ context.Context, m Message) error {
	s.sent = append(s.sent, m)
	return s.err
}

func sampleOrder() (orders.Order, []orders.OrderItem) {
	o := orders.Order{
		ID:            "11111111-1111-1111-1111-111111111111",
		OrderNumber:   "SKS-000042",
		Status:        orders.StatusPendingPayment,
		SubtotalFCFA:  12000,
		ShippingFCFA:  800,
		TotalFCFA:     12800,
		PaymentMethod: "mobile",
		ShippingAddressJSON: datatypes.JSON([]byte(
			`{"first_name":"Awa","last_name":"Diallo","line1":"Rue 12","city":"Sikasso","country":"ML","phone":"+22370000001"}`)),
		DeliveryZoneJSON: datatypes.JSON([]byte(
			`{"name":"Wayerma","lat":11.3,"lng":-5.68,"time_range":"9h-18h","fee_fcfa":800}`)),
	}
	items := []orders.OrderItem{
		{ProductName: "Savon artisanal", Quantity: 2, PriceFCFA: 3500, LineFCFA: 7000},
		{ProductName: "Beurre de karité", Quantity: 1, PriceFCFA: 5000, LineFCFA: 5000},
	}
	return o, items
}

func TestNotifyNewOrderBuildsFrenchEmail(t *testing.T) {
	sender := &captureSender{}
	n := NewOrderNotifier(sender, "commandes@sikassosugu.ml", "https://sikassosugu.ml")

	o, items := sampleOrder()
	if err := n.NotifyNewOrder(context.Background(), o, items); err != nil {
		t.Fatalf("NotifyNewOrder: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(sender.sent))
	}

	m := sender.sent[0]
	if m.To != "commandes@sikassosugu.ml" {
		t.Errorf("to = %q", m.To)
	}
	if !strings.Contains(m.Subject, "SKS-000042") {
		t.Errorf("subject = %q, want order number", m.Subject)
	}
	for _, want := range []string{"SKS-000042", "Awa Diallo", "Savon artisanal", "12 800 F CFA", "Mobile Money"} {
		if !strings.Contains(m.Text, want) {
			t.Errorf("text body missing %q", want)
		}
	}
	if !strings.Contains(m.HTML, "Beurre de karité") {
		t.Errorf("html body missing item name")
	}
	if !strings.Contains(m.Text, "/admin/orders/"+o.ID) {
		t.Errorf("text body missing back-office link")
	}
}

func TestNotifyNewOrderWithoutRecipientFails(t *testing.T) {
	sender := &captureSender{}
	n := NewOrderNotifier(sender, "", "https://sikassosugu.ml")

	o, items := sampleOrder()
	if err := n.NotifyNewOrder(context.Background(), o, items); err == nil {
		t.Fatal("expected error when recipient not configured")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("sent = %d messages, want 0", len(sender.sent))
	}
}
