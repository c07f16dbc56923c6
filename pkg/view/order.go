package view

type OrderItem struct {
	ProductName string `json:"product_name"`
	SKU         string `json:"sku,omitempty"`
	Qty         int    `json:"qty"`
	PriceEach   string `json:"price_each"`
	LineTotal   string `json:"line_total"`
}

type OrderDetail struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`

	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`

	PaymentMethod string `json:"payment_method"`
	Zone          string `json:"zone,omitempty"`
	CreatedAt     string `json:"created_at"`

	Items []OrderItem `json:"items"`
}

type AccountOrderItem struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	Total       string `json:"total"`
	ItemCount   int    `json:"item_count"`
	CreatedAt   string `json:"created_at"`
}

type AccountOrdersPage struct {
	Items      []AccountOrderItem `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}
