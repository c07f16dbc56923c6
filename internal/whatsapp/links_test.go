package whatsapp

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"gorm.io/datatypes"

	"sikassosugu.ml/app/internal/modules/checkout"
	"sikassosugu.ml/app/internal/modules/delivery"
	"sikassosugu.ml/app/internal/modules/orders"
)

func TestOrderLink(t *testing.T) {
	b := NewLinkBuilder("+223 70 00 00 00", "22371111111", "https://sikassosugu.ml")

	addrJSON, _ := json.Marshal(checkout.Address{
		FirstName: "Awa", LastName: "Diallo",
		Line1: "Rue 42, porte 18", City: "Sikasso",
		Phone: "+22376000000",
	})
	zoneJSON, _ := json.Marshal(delivery.Zones()[0])
	o := orders.Order{
		OrderNumber:         "SKS-000007",
		TotalFCFA:           13500,
		PaymentMethod:       checkout.MethodMobileMoney,
		ShippingAddressJSON: datatypes.JSON(addrJSON),
		DeliveryZoneJSON:    datatypes.JSON(zoneJSON),
	}
	items := []orders.OrderItem{
		{ProductName: "Savon artisanal", Quantity: 2},
	}

	got := b.OrderLink(o, items)
	if !strings.HasPrefix(got, "https://wa.me/22370000000?text=") {
		t.Fatalf("link = %q, want wa.me sales number prefix", got)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := u.Query().Get("text")
	wants := []string{
		"SKS-000007",
		"Awa Diallo",
		"+22376000000",
		"Rue 42, porte 18",
		"Centre-ville",
		"Mobile Money",
		"2 x Savon artisanal",
		"13 500 F CFA",
	}
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Errorf("text = %q, missing %q", text, want)
		}
	}
}

func TestOrderLinkGuestWithoutAddress(t *testing.T) {
	b := NewLinkBuilder("22370000000", "22371111111", "")

	o := orders.Order{OrderNumber: "SKS-000008", TotalFCFA: 500, PaymentMethod: checkout.MethodCashOnDelivery}
	got := b.OrderLink(o, nil)

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := u.Query().Get("text")
	if strings.Contains(text, "Client :") || strings.Contains(text, "Adresse :") {
		t.Errorf("text = %q, empty address should not produce Client/Adresse lines", text)
	}
	if !strings.Contains(text, "Paiement à la livraison") {
		t.Errorf("text = %q, missing payment label", text)
	}
}

func TestProductLink(t *testing.T) {
	b := NewLinkBuilder("22370000000", "22371111111", "https://sikassosugu.ml/")

	got := b.ProductLink("Beurre de karité", "beurre-de-karite")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := u.Query().Get("text")
	if !strings.Contains(text, "Beurre de karité") {
		t.Errorf("text = %q, missing product name", text)
	}
	if !strings.Contains(text, "https://sikassosugu.ml/products/beurre-de-karite") {
		t.Errorf("text = %q, missing product URL", text)
	}
}

func TestSupportLinkUsesSupportNumber(t *testing.T) {
	b := NewLinkBuilder("22370000000", "+223 71 11 11 11", "")
	if got := b.SupportLink(); !strings.HasPrefix(got, "https://wa.me/22371111111?") {
		t.Errorf("link = %q, want support number", got)
	}
}
