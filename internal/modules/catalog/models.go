package catalog

import "time"

const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

type Category struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Slug      string    `gorm:"type:varchar(120);not null;uniqueIndex:ux_categories_slug"`
	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	Name        string  `gorm:"type:varchar(255);not null"`
	Slug        string  `gorm:"type:varchar(255);not null;uniqueIndex:ux_products_slug"`
	Description string  `gorm:"type:text"`
	SKU         string  `gorm:"type:varchar(64)"`
	PriceFCFA   int     `gorm:"not null"`
	Stock       int     `gorm:"not null;default:0"`
	Status      string  `gorm:"type:varchar(16);not null;index:ix_products_status"`
	CategoryID  *string `gorm:"type:char(36);index:ix_products_category_id"`

	Category *Category      `gorm:"foreignKey:CategoryID"`
	Images   []ProductImage `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Product) TableName() string { return "products" }

type ProductImage struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	ProductID  string    `gorm:"type:char(36);not null;index:ix_product_images_product_id"`
	StorageKey string    `gorm:"type:varchar(255)"`
	URL        string    `gorm:"type:varchar(512);not null"`
	Position   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (ProductImage) TableName() string { return "product_images" }
