package orders

import "errors"

var (
	ErrEmptyItems         = errors.New("order has no items")
	ErrMissingAddress     = errors.New("shipping address missing")
	ErrMissingTotal       = errors.New("order total missing")
	ErrNoZoneNoLine       = errors.New("neither delivery zone nor address line present")
	ErrIncompletePayment  = errors.New("mobile payment info incomplete")
	ErrProductUnavailable = errors.New("product unavailable")
)
