package view

type ZoneOption struct {
	Name      string `json:"name"`
	TimeRange string `json:"time_range"`
	FeeFCFA   int    `json:"fee_fcfa"`
	Fee       string `json:"fee"`
}

type CheckoutSummary struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`

	SubtotalFCFA int `json:"subtotal_fcfa"`
	ShippingFCFA int `json:"shipping_fcfa"`
	TotalFCFA    int `json:"total_fcfa"`

	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`

	Zone *ZoneOption `json:"zone,omitempty"`
}

type CheckoutState struct {
	Step    string          `json:"step"`
	Summary CheckoutSummary `json:"summary"`

	// Confirmation step only.
	OrderNumber  string     `json:"order_number,omitempty"`
	Snapshot     []CartItem `json:"snapshot,omitempty"`
	WhatsAppLink string     `json:"whatsapp_link,omitempty"`
}
