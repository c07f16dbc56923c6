package payments

import "errors"

var (
	ErrForbidden        = errors.New("payments: actor does not own the order")
	ErrOrderNotEligible = errors.New("payments: order cannot take a receipt")
	ErrAlreadyReviewed  = errors.New("payments: receipt already reviewed")
	ErrReceiptRequired  = errors.New("payments: phone and receipt url required")
)
