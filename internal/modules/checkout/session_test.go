package checkout

import (
	"errors"
	"testing"

	"sikassosugu.ml/app/internal/modules/delivery"
)

func validAddress() Address {
	return Address{
		FirstName: "Awa",
		LastName:  "Diallo",
		Line1:     "Rue 12, porte 45",
		City:      "Sikasso",
		Country:   "ML",
		Phone:     "+22376000000",
	}
}

func testZone() *delivery.Zone {
	return &delivery.Zone{Name: "Medine", FeeFCFA: 800, TimeRange: "30-45 min"}
}

func TestSubmitAddress(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Address)
		zone      *delivery.Zone
		wantField string
	}{
		{"zone matched, empty line1 ok", func(a *Address) { a.Line1 = "" }, testZone(), ""},
		{"manual line1, no zone ok", nil, nil, ""},
		{"no zone and empty line1 blocks", func(a *Address) { a.Line1 = "" }, nil, "line1"},
		{"whitespace line1 counts as empty", func(a *Address) { a.Line1 = "   " }, nil, "line1"},
		{"wrong city blocks", func(a *Address) { a.City = "Bamako" }, testZone(), "city"},
		{"city case-insensitive", func(a *Address) { a.City = "sikasso" }, testZone(), ""},
		{"missing name blocks", func(a *Address) { a.FirstName = "" }, testZone(), "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			a := validAddress()
			if tt.mutate != nil {
				tt.mutate(&a)
			}
			err := s.SubmitAddress(a, tt.zone)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if s.Step != StepPayment {
					t.Errorf("step = %s, want payment", s.Step)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %s, want %s", ve.Field, tt.wantField)
			}
			if s.Step != StepAddress {
				t.Errorf("failed submit advanced step to %s", s.Step)
			}
		})
	}
}

func TestValidatePayment(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		info      PaymentInfo
		wantField string
	}{
		{"cod needs nothing", MethodCashOnDelivery, PaymentInfo{}, ""},
		{"mobile complete", MethodMobileMoney, PaymentInfo{ClientPhone: "+22376000000", ReceiptURL: "https://ik.example/r.jpg"}, ""},
		{"mobile empty phone blocked", MethodMobileMoney, PaymentInfo{ReceiptURL: "https://ik.example/r.jpg"}, "client_phone"},
		{"mobile missing receipt blocked", MethodMobileMoney, PaymentInfo{ClientPhone: "+22376000000"}, "receipt"},
		{"mobile both missing blocked", MethodMobileMoney, PaymentInfo{}, "client_phone"},
		{"unknown method blocked", "card", PaymentInfo{}, "method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			if err := s.SubmitAddress(validAddress(), testZone()); err != nil {
				t.Fatalf("address step: %v", err)
			}

			err := s.ValidatePayment(tt.method, tt.info)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %s, want %s", ve.Field, tt.wantField)
			}
			// A failed payment guard keeps the session in Payment: no
			// order call may have been made.
			if s.Step != StepPayment {
				t.Errorf("step = %s, want payment", s.Step)
			}
		})
	}
}

func TestValidatePaymentBeforeAddress(t *testing.T) {
	s := NewSession()
	err := s.ValidatePayment(MethodCashOnDelivery, PaymentInfo{})
	if !errors.Is(err, ErrAddressFirst) {
		t.Errorf("expected ErrAddressFirst, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     int
		zone         *delivery.Zone
		wantShipping int
		wantTotal    int
	}{
		{"zone fee below threshold", 12000, &delivery.Zone{FeeFCFA: 800}, 800, 12800},
		{"free shipping at exact threshold", 50000, &delivery.Zone{FeeFCFA: 800}, 0, 50000},
		{"no zone default fee above threshold", 60000, nil, 1500, 61500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			a := validAddress()
			if err := s.SubmitAddress(a, tt.zone); err != nil {
				t.Fatalf("address step: %v", err)
			}
			ship, total := s.Totals(tt.subtotal)
			if ship != tt.wantShipping || total != tt.wantTotal {
				t.Errorf("Totals(%d) = (%d, %d), want (%d, %d)",
					tt.subtotal, ship, total, tt.wantShipping, tt.wantTotal)
			}
		})
	}
}

func TestConfirmIsTerminal(t *testing.T) {
	s := NewSession()
	if err := s.SubmitAddress(validAddress(), testZone()); err != nil {
		t.Fatal(err)
	}
	if err := s.ValidatePayment(MethodMobileMoney, PaymentInfo{ClientPhone: "+22376000000", ReceiptURL: "https://ik.example/r.jpg"}); err != nil {
		t.Fatal(err)
	}

	lines := []Line{{ProductID: "p1", Name: "Sucre 5kg", PriceFCFA: 3500, Quantity: 2}}
	if err := s.Confirm("SKS-000042", lines); err != nil {
		t.Fatal(err)
	}

	if s.Step != StepConfirmation {
		t.Errorf("step = %s", s.Step)
	}
	if s.OrderNumber != "SKS-000042" {
		t.Errorf("order number = %s", s.OrderNumber)
	}
	if len(s.Snapshot) != 1 || s.Snapshot[0].Name != "Sucre 5kg" {
		t.Errorf("snapshot not retained: %+v", s.Snapshot)
	}
	// Payment info is discarded after submission.
	if s.Payment.ClientPhone != "" || s.Payment.ReceiptURL != "" {
		t.Errorf("payment info retained: %+v", s.Payment)
	}

	// Terminal: further transitions are refused.
	if err := s.SubmitAddress(validAddress(), nil); !errors.Is(err, ErrSessionDone) {
		t.Errorf("expected ErrSessionDone, got %v", err)
	}
	if err := s.ValidatePayment(MethodCashOnDelivery, PaymentInfo{}); !errors.Is(err, ErrSessionDone) {
		t.Errorf("expected ErrSessionDone, got %v", err)
	}
}

func TestConfirmRequiresPaymentStep(t *testing.T) {
	s := NewSession()
	if err := s.Confirm("SKS-000001", nil); !errors.Is(err, ErrAddressFirst) {
		t.Errorf("expected ErrAddressFirst, got %v", err)
	}
}
