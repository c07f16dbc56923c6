package delivery

const (
	// FreeShippingThreshold: subtotal (FCFA) at which delivery inside a
	// matched zone becomes free. Inclusive.
	FreeShippingThreshold = 50000

	// DefaultFeeFCFA is charged when no zone matched (manual address).
	// It applies regardless of the free-shipping threshold: without a
	// matched zone we cannot promise free delivery.
	DefaultFeeFCFA = 1500
)

// ShippingFee computes the delivery fee for an order subtotal and an
// optionally matched zone.
func ShippingFee(subtotalFCFA int, z *Zone) int {
	if z == nil {
		return DefaultFeeFCFA
	}
	if subtotalFCFA >= FreeShippingThreshold {
		return 0
	}
	return z.FeeFCFA
}
