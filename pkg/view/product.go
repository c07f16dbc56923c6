package view

type ProductCard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PriceFCFA int    `json:"price_fcfa"`
	Price     string `json:"price"`
	ImageURL  string `json:"image_url,omitempty"`
	Category  string `json:"category,omitempty"`
	InStock   bool   `json:"in_stock"`
}

type ProductDetail struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	SKU         string   `json:"sku,omitempty"`
	PriceFCFA   int      `json:"price_fcfa"`
	Price       string   `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category,omitempty"`
	Images      []string `json:"images"`
}

type CategoryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductListPage struct {
	Items      []ProductCard `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}
