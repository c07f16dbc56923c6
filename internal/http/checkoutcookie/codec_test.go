package checkoutcookie

import (
	"testing"

	"sikassosugu.ml/app/internal/modules/checkout"
	"sikassosugu.ml/app/internal/modules/delivery"
)

func TestRoundTripKeepsState(t *testing.T) {
	c := New([]byte("test-secret"), "ss_checkout", false)

	s := checkout.NewSession()
	zone := delivery.Zones()[0]
	lat, lng := 11.317, -5.667
	err := s.SubmitAddress(checkout.Address{
		FirstName: "Awa",
		LastName:  "Diallo",
		Line1:     "Rue 12, porte 34",
		City:      "Sikasso",
		Country:   "ML",
		Phone:     "+22370000001",
		Lat:       &lat,
		Lng:       &lng,
	}, &zone)
	if err != nil {
		t.Fatalf("SubmitAddress: %v", err)
	}

	v, err := c.Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := c.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Step != checkout.StepPayment {
		t.Errorf("step = %q, want %q", got.Step, checkout.StepPayment)
	}
	if got.Address.FirstName != "Awa" || got.Address.City != "Sikasso" {
		t.Errorf("address = %+v", got.Address)
	}
	if got.Zone == nil || got.Zone.Name != zone.Name {
		t.Errorf("zone = %+v, want %q", got.Zone, zone.Name)
	}
}

func TestDecodeRejectsTampering(t *testing.T) {
	c := New([]byte("test-secret"), "ss_checkout", false)

	v, err := c.Encode(checkout.NewSession())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	cases := []string{
		"",
		"garbage",
		"a.b.c",
		"x" + v[1:],
		v[:len(v)-2],
	}
	for _, tc := range cases {
		if _, err := c.Decode(tc); err == nil {
			t.Errorf("Decode(%q) accepted tampered value", tc)
		}
	}
}

func TestDecodeRejectsUnknownStep(t *testing.T) {
	c := New([]byte("test-secret"), "ss_checkout", false)

	s := checkout.NewSession()
	s.Step = "shipped"
	v, err := c.Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := c.Decode(v); err == nil {
		t.Fatal("accepted session with unknown step")
	}
}
