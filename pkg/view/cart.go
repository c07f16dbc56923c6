package view

type CartItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSlug string `json:"product_slug"`
	ImageURL    string `json:"image_url,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Qty         int    `json:"qty"`

	UnitPriceFCFA int `json:"unit_price_fcfa"`
	LineTotalFCFA int `json:"line_total_fcfa"`

	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type CartPage struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`

	SubtotalFCFA int    `json:"subtotal_fcfa"`
	Subtotal     string `json:"subtotal"`
}
