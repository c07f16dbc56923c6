package cartcookie

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := New([]byte("test-secret"), "ss_cart", false)

	cart := Cart{Items: []Item{
		{ProductID: "p1", Qty: 2},
		{ProductID: "p2", Qty: 1},
	}}

	v, err := c.Encode(cart)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := c.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	if got.Items[0].ProductID != "p1" || got.Items[0].Qty != 2 {
		t.Errorf("first item = %+v", got.Items[0])
	}
	if got.Items[1].ProductID != "p2" || got.Items[1].Qty != 1 {
		t.Errorf("second item = %+v", got.Items[1])
	}
}

func TestDecodeRejectsTampering(t *testing.T) {
	c := New([]byte("test-secret"), "ss_cart", false)

	v, err := c.Encode(Cart{Items: []Item{{ProductID: "p1", Qty: 1}}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	cases := []struct {
		name string
		v    string
	}{
		{"empty", ""},
		{"no separator", "abcdef"},
		{"flipped payload byte", "x" + v[1:]},
		{"truncated signature", v[:len(v)-2]},
		{"wrong secret", func() string {
			other := New([]byte("other-secret"), "ss_cart", false)
			ov, _ := other.Encode(Cart{Items: []Item{{ProductID: "p1", Qty: 1}}})
			return ov[:len(ov)-10] + v[len(v)-10:]
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := c.Decode(tc.v); err == nil {
				t.Fatalf("Decode(%q) accepted tampered value", tc.v)
			}
		})
	}
}

func TestDecodeDropsInvalidItems(t *testing.T) {
	c := New([]byte("test-secret"), "ss_cart", false)

	v, err := c.Encode(Cart{Items: []Item{
		{ProductID: "p1", Qty: 1},
		{ProductID: "", Qty: 3},
		{ProductID: "p2", Qty: 0},
		{ProductID: "p3", Qty: -1},
	}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := c.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != "p1" {
		t.Fatalf("items = %+v, want only p1", got.Items)
	}
}

func TestCartAddMergesLines(t *testing.T) {
	var cart Cart
	cart.Add("p1", 1)
	cart.Add("p2", 2)
	cart.Add("p1", 3)

	if len(cart.Items) != 2 {
		t.Fatalf("lines = %d, want 2", len(cart.Items))
	}
	if cart.Items[0].Qty != 4 {
		t.Errorf("p1 qty = %d, want 4", cart.Items[0].Qty)
	}
}

func TestCartSetQty(t *testing.T) {
	var cart Cart
	cart.Add("p1", 2)
	cart.Add("p2", 1)

	cart.SetQty("p1", 5)
	if cart.Items[0].Qty != 5 {
		t.Errorf("p1 qty = %d, want 5", cart.Items[0].Qty)
	}

	cart.SetQty("p2", 0)
	if len(cart.Items) != 1 {
		t.Errorf("lines = %d after zeroing p2, want 1", len(cart.Items))
	}

	// setting an absent product appends it
	cart.SetQty("p3", 2)
	if len(cart.Items) != 2 || cart.Items[1].ProductID != "p3" {
		t.Errorf("items = %+v, want p3 appended", cart.Items)
	}
}
