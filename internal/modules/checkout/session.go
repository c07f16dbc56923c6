package checkout

import (
	"strings"

	"sikassosugu.ml/app/internal/modules/delivery"
)

// Step of the checkout flow. Confirmation is terminal for the session.
type Step string

const (
	StepAddress      Step = "address"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// Payment methods supported at checkout.
const (
	MethodMobileMoney    = "mobile"
	MethodCashOnDelivery = "cod"
)

// SupportedCity: the storefront delivers in a single city.
const SupportedCity = "Sikasso"

// Address as captured during step 1. Held in the session only; it is
// serialized into the order payload at submission and never persisted
// on its own.
type Address struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Line1     string   `json:"line1"`
	Line2     string   `json:"line2,omitempty"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Phone     string   `json:"phone,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
}

// PaymentInfo for the mobile-money path. Discarded once the order is
// submitted.
type PaymentInfo struct {
	ClientPhone string `json:"client_phone"`
	ReceiptURL  string `json:"receipt_url,omitempty"`
}

// Line is a snapshot of a cart line kept for the confirmation screen
// after the cart has been cleared.
type Line struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	PriceFCFA int    `json:"price_fcfa"`
	Quantity  int    `json:"quantity"`
	SKU       string `json:"sku,omitempty"`
}

// Session is the checkout state machine: Address -> Payment ->
// Confirmation. It is an explicit owned value threaded through the flow
// (serialized into a signed cookie between requests), never ambient
// state.
type Session struct {
	Step    Step           `json:"step"`
	Address Address        `json:"address"`
	Zone    *delivery.Zone `json:"zone,omitempty"`
	Method  string         `json:"method,omitempty"`
	Payment PaymentInfo    `json:"payment"`

	// After confirmation only.
	OrderNumber string `json:"order_number,omitempty"`
	Snapshot    []Line `json:"snapshot,omitempty"`
}

func NewSession() *Session {
	return &Session{Step: StepAddress}
}

// SubmitAddress validates step 1 and advances to Payment. On failure the
// session stays in Address and the error carries the inline message.
func (s *Session) SubmitAddress(a Address, zone *delivery.Zone) error {
	if s.Step == StepConfirmation {
		return ErrSessionDone
	}

	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.Line1 = strings.TrimSpace(a.Line1)
	a.Line2 = strings.TrimSpace(a.Line2)
	a.City = strings.TrimSpace(a.City)
	a.Phone = strings.TrimSpace(a.Phone)

	if a.FirstName == "" || a.LastName == "" {
		return &ValidationError{Field: "name", Message: "Nom et prénom sont obligatoires."}
	}
	if !strings.EqualFold(a.City, SupportedCity) {
		return &ValidationError{Field: "city", Message: "La livraison n'est disponible qu'à Sikasso pour le moment."}
	}
	// A matched zone OR a manually completed address line is required.
	// An empty line1 with no zone blocks the transition.
	if zone == nil && a.Line1 == "" {
		return &ValidationError{Field: "line1", Message: "Choisissez une zone de livraison ou saisissez votre adresse."}
	}

	s.Address = a
	s.Zone = zone
	s.Step = StepPayment
	return nil
}

// ValidatePayment runs the payment-method guard for step 2. It does not
// advance the session: the Payment -> Confirmation transition happens in
// Confirm, after the order call succeeded. No network call may be made
// when this returns an error.
func (s *Session) ValidatePayment(method string, p PaymentInfo) error {
	if s.Step == StepConfirmation {
		return ErrSessionDone
	}
	if s.Step != StepPayment {
		return ErrAddressFirst
	}

	switch method {
	case MethodMobileMoney:
		if strings.TrimSpace(p.ClientPhone) == "" {
			return &ValidationError{Field: "client_phone", Message: "Le numéro payeur est obligatoire pour Mobile Money."}
		}
		if strings.TrimSpace(p.ReceiptURL) == "" {
			return &ValidationError{Field: "receipt", Message: "Le reçu de paiement est obligatoire pour Mobile Money."}
		}
	case MethodCashOnDelivery:
		// No extra fields.
	default:
		return &ValidationError{Field: "method", Message: "Mode de paiement inconnu."}
	}

	s.Method = method
	s.Payment = p
	return nil
}

// Totals computes shipping fee and grand total for the session's zone.
func (s *Session) Totals(subtotalFCFA int) (shippingFCFA, totalFCFA int) {
	shippingFCFA = delivery.ShippingFee(subtotalFCFA, s.Zone)
	return shippingFCFA, subtotalFCFA + shippingFCFA
}

// Confirm records a successfully created order and moves the session to
// its terminal step. The line snapshot is retained for display because
// the cart is cleared at this point; payment info is dropped.
func (s *Session) Confirm(orderNumber string, lines []Line) error {
	if s.Step != StepPayment {
		return ErrAddressFirst
	}
	s.OrderNumber = orderNumber
	s.Snapshot = lines
	s.Payment = PaymentInfo{}
	s.Step = StepConfirmation
	return nil
}
