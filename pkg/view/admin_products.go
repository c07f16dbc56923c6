package view

type AdminProductListItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	SKU       string `json:"sku,omitempty"`
	Price     string `json:"price"`
	PriceFCFA int    `json:"price_fcfa"`
	Stock     int    `json:"stock"`
	Status    string `json:"status"`
	Category  string `json:"category,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type AdminUserItem struct {
	ID        string `json:"id"`
	Phone     string `json:"phone"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type AdminDashboard struct {
	PendingOrders   int64  `json:"pending_orders"`
	OrdersToday     int64  `json:"orders_today"`
	RevenueVerified string `json:"revenue_verified"`
	ActiveProducts  int64  `json:"active_products"`
	LowStock        int64  `json:"low_stock"`
	Customers       int64  `json:"customers"`
}
