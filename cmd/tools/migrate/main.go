package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/modules/cart"
	"sikassosugu.ml/app/internal/modules/catalog"
	"sikassosugu.ml/app/internal/modules/orders"
	"sikassosugu.ml/app/internal/modules/payments"
	"sikassosugu.ml/app/internal/modules/users"
	"sikassosugu.ml/app/internal/whatsapp"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&users.User{},
		&middleware.Session{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductImage{},
		&cart.Cart{},
		&cart.CartItem{},
		&orders.Order{},
		&orders.OrderItem{},
		&orders.OrderEvent{},
		&orders.FinancialEntry{},
		&payments.Receipt{},
		&whatsapp.OutreachLog{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	log.Println("✓ schema migrated")
}
