package orders

import (
	"errors"
	"fmt"
	"testing"

	"sikassosugu.ml/app/internal/modules/checkout"
	"sikassosugu.ml/app/internal/modules/delivery"
)

func baseInput() CreateInput {
	return CreateInput{
		Address: checkout.Address{
			FirstName: "Awa",
			LastName:  "Diallo",
			Line1:     "Rue 12, porte 45",
			City:      "Sikasso",
			Country:   "ML",
		},
		PaymentMethod: checkout.MethodCashOnDelivery,
		Items: []checkout.Line{
			{ProductID: "p1", Name: "Sucre 5kg", PriceFCFA: 3500, Quantity: 2},
			{ProductID: "p2", Name: "Thé vert 500g", PriceFCFA: 2000, Quantity: 1},
		},
		TotalFCFA: 10500,
	}
}

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateInput)
		wantErr error
	}{
		{"valid cod", nil, nil},
		{"missing address", func(in *CreateInput) { in.Address = checkout.Address{} }, ErrMissingAddress},
		{"empty items", func(in *CreateInput) { in.Items = nil }, ErrEmptyItems},
		{"missing total", func(in *CreateInput) { in.TotalFCFA = 0 }, ErrMissingTotal},
		{"no zone no line1", func(in *CreateInput) { in.Zone = nil; in.Address.Line1 = "" }, ErrNoZoneNoLine},
		{"blank line1 counts as absent", func(in *CreateInput) { in.Address.Line1 = "   " }, ErrNoZoneNoLine},
		{
			"zone without line1 ok",
			func(in *CreateInput) {
				in.Address.Line1 = ""
				in.Zone = &delivery.Zone{Name: "Medine", FeeFCFA: 800}
			},
			nil,
		},
		{
			"mobile without phone",
			func(in *CreateInput) {
				in.PaymentMethod = checkout.MethodMobileMoney
				in.Payment = checkout.PaymentInfo{ReceiptURL: "https://ik.example/r.jpg"}
			},
			ErrIncompletePayment,
		},
		{
			"mobile without receipt",
			func(in *CreateInput) {
				in.PaymentMethod = checkout.MethodMobileMoney
				in.Payment = checkout.PaymentInfo{ClientPhone: "+22376000000"}
			},
			ErrIncompletePayment,
		},
		{
			"mobile complete ok",
			func(in *CreateInput) {
				in.PaymentMethod = checkout.MethodMobileMoney
				in.Payment = checkout.PaymentInfo{ClientPhone: "+22376000000", ReceiptURL: "https://ik.example/r.jpg"}
			},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			err := ValidateCreate(in)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	zone := &delivery.Zone{Name: "Medine", FeeFCFA: 800}
	items := []checkout.Line{
		{ProductID: "p1", PriceFCFA: 3500, Quantity: 2},
		{ProductID: "p2", PriceFCFA: 2000, Quantity: 1},
	}

	sub, ship, total := Totals(items, zone)
	if sub != 9000 || ship != 800 || total != 9800 {
		t.Errorf("Totals = (%d, %d, %d), want (9000, 800, 9800)", sub, ship, total)
	}

	// Total always equals subtotal + fee.
	if total != sub+ship {
		t.Errorf("invariant broken: %d != %d + %d", total, sub, ship)
	}

	// No zone: flat default fee even above the free-shipping threshold.
	bigOrder := []checkout.Line{{ProductID: "p1", PriceFCFA: 60000, Quantity: 1}}
	sub, ship, total = Totals(bigOrder, nil)
	if sub != 60000 || ship != 1500 || total != 61500 {
		t.Errorf("no-zone Totals = (%d, %d, %d), want (60000, 1500, 61500)", sub, ship, total)
	}

	// Exact threshold with a zone: free shipping (inclusive).
	atThreshold := []checkout.Line{{ProductID: "p1", PriceFCFA: 50000, Quantity: 1}}
	_, ship, _ = Totals(atThreshold, zone)
	if ship != 0 {
		t.Errorf("shipping at exact threshold = %d, want 0", ship)
	}

	// Quantity below 1 is clamped, matching item persistence.
	clamped := []checkout.Line{{ProductID: "p1", PriceFCFA: 1000, Quantity: 0}}
	sub, _, _ = Totals(clamped, zone)
	if sub != 1000 {
		t.Errorf("clamped subtotal = %d, want 1000", sub)
	}
}

func TestOrderNumberFormat(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "SKS-000001"},
		{42, "SKS-000042"},
		{123456, "SKS-123456"},
		{9999999, "SKS-9999999"}, // count past the pad just widens
	}
	for _, tt := range tests {
		if got := fmt.Sprintf(orderNumberFormat, tt.n); got != tt.want {
			t.Errorf("number(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestNextOrderNumber(t *testing.T) {
	tests := []struct {
		name   string
		maxSeq int64
		want   string
	}{
		{"first order ever", 0, "SKS-000001"},
		{"continues the sequence", 42, "SKS-000043"},
		// Five orders issued, two deleted since: the max drives the
		// next number, so deletions never make a number reusable.
		{"survives deletions", 5, "SKS-000006"},
		{"past the pad", 9999999, "SKS-10000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextOrderNumber(tt.maxSeq); got != tt.want {
				t.Errorf("nextOrderNumber(%d) = %s, want %s", tt.maxSeq, got, tt.want)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	str := func(s string) *string { return &s }
	tests := []struct {
		name string
		in   *string
		want *string
	}{
		{"nil stays nil", nil, nil},
		{"empty becomes nil", str(""), nil},
		{"blank becomes nil", str("   "), nil},
		{"trimmed", str("  ck-123  "), str("ck-123")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeKey(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("normalizeKey = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("normalizeKey = %q, want %q", *got, *tt.want)
			}
		})
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from, action string
		want         string
		wantErr      bool
	}{
		{StatusPendingPayment, "verify", StatusPaymentVerified, false},
		{StatusPaymentVerified, "process", StatusProcessing, false},
		{StatusProcessing, "ship", StatusShipped, false},
		{StatusShipped, "deliver", StatusDelivered, false},
		{StatusPendingPayment, "cancel", StatusCancelled, false},
		{StatusProcessing, "cancel", StatusCancelled, false},
		{StatusDelivered, "refund", StatusRefunded, false},
		{StatusPaymentVerified, "refund", StatusRefunded, false},
		{StatusPendingPayment, "ship", "", true},
		{StatusDelivered, "cancel", "", true},
		{StatusPendingPayment, "refund", "", true},
		{StatusCancelled, "verify", "", true},
		{StatusDelivered, "unknown", "", true},
	}
	for _, tt := range tests {
		got, err := nextStatus(tt.from, tt.action)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s/%s: expected ErrInvalidTransition, got %v", tt.from, tt.action, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%s/%s = (%s, %v), want %s", tt.from, tt.action, got, err, tt.want)
		}
	}
}
