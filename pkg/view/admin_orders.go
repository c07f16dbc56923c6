package view

type AdminOrderListItem struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	Total       string `json:"total"`
	Method      string `json:"payment_method"`
	GuestPhone  string `json:"guest_phone,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type AdminOrdersListPage struct {
	Items      []AdminOrderListItem `json:"items"`
	Q          string               `json:"q,omitempty"`
	Status     string               `json:"status,omitempty"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}

type AdminOrderItem struct {
	ProductName string `json:"product_name"`
	SKU         string `json:"sku,omitempty"`
	Qty         int    `json:"qty"`
	Unit        string `json:"unit"`
	Line        string `json:"line"`
}

type AdminOrderEvent struct {
	Action      string `json:"action"`
	From        string `json:"from"`
	To          string `json:"to"`
	ActorUserID string `json:"actor_user_id"`
	Note        string `json:"note,omitempty"`
	At          string `json:"at"`
}

type AdminOrderFinancialEntry struct {
	Event      string `json:"event"`
	AmountFCFA int    `json:"amount_fcfa"`
	AmountStr  string `json:"amount"`
	RefType    string `json:"ref_type,omitempty"`
	RefID      string `json:"ref_id,omitempty"`
	At         string `json:"at"`
}

type AdminOrderDetail struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`

	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`

	PaymentMethod string `json:"payment_method"`
	PaymentInfo   string `json:"payment_info,omitempty"`
	Address       string `json:"address,omitempty"`
	Zone          string `json:"zone,omitempty"`

	UserID     string `json:"user_id,omitempty"`
	GuestPhone string `json:"guest_phone,omitempty"`
	CreatedAt  string `json:"created_at"`

	Items     []AdminOrderItem           `json:"items"`
	Events    []AdminOrderEvent          `json:"events"`
	Financial []AdminOrderFinancialEntry `json:"financial"`
}
