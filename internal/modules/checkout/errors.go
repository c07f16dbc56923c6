package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionDone: the session reached Confirmation; it is terminal.
	ErrSessionDone = errors.New("checkout session already confirmed")
	// ErrAddressFirst: payment or confirmation attempted out of order.
	ErrAddressFirst = errors.New("checkout address step not completed")
)

// ValidationError blocks a step transition; it is local, synchronous and
// recoverable by user correction.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation: %s: %s", e.Field, e.Message)
}

type OutOfStockItem struct {
	ProductID string
	Requested int
	Available int
}

type OutOfStockError struct {
	Items []OutOfStockItem
}

func (e *OutOfStockError) Error() string {
	if len(e.Items) == 0 {
		return "out of stock"
	}
	it := e.Items[0]
	return fmt.Sprintf("out of stock: product=%s requested=%d available=%d", it.ProductID, it.Requested, it.Available)
}
