package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sikassosugu.ml/app/internal/modules/catalog"
	"sikassosugu.ml/app/internal/modules/users"
)

// Seeds an admin account and a small demo catalog. Safe to run twice:
// everything upserts on its natural key.
func main() {
	adminPhone := flag.String("admin-phone", "+22370000001", "admin login phone")
	adminPass := flag.String("admin-password", "", "admin password (required)")
	demo := flag.Bool("demo", false, "also seed demo categories and products")
	flag.Parse()

	if *adminPass == "" {
		log.Fatal("-admin-password is required")
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	svc := users.NewService(db)

	u, err := svc.Register(ctx, users.RegisterInput{
		Phone:     *adminPhone,
		Password:  *adminPass,
		FirstName: "Admin",
	})
	switch err {
	case nil:
		if err := db.WithContext(ctx).Model(&users.User{}).
			Where("id = ?", u.ID).Update("role", users.RoleAdmin).Error; err != nil {
			log.Fatalf("Failed to promote admin: %v", err)
		}
		log.Printf("✓ admin created: %s", u.PhoneE164)
	case users.ErrPhoneTaken:
		log.Printf("admin already exists: %s", users.NormalizePhone(*adminPhone))
	default:
		log.Fatalf("Failed to create admin: %v", err)
	}

	if *demo {
		seedDemo(ctx, db)
	}
}

func seedDemo(ctx context.Context, db *gorm.DB) {
	cats := []catalog.Category{
		{ID: uuid.NewString(), Name: "Épicerie", Slug: "epicerie", Position: 1},
		{ID: uuid.NewString(), Name: "Boissons", Slug: "boissons", Position: 2},
		{ID: uuid.NewString(), Name: "Hygiène", Slug: "hygiene", Position: 3},
	}
	for i := range cats {
		err := db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "position"}),
		}).Create(&cats[i]).Error
		if err != nil {
			log.Fatalf("Failed to seed category %s: %v", cats[i].Slug, err)
		}
	}

	var epicerie catalog.Category
	if err := db.WithContext(ctx).Where("slug = ?", "epicerie").First(&epicerie).Error; err != nil {
		log.Fatalf("Failed to load category: %v", err)
	}

	products := []catalog.Product{
		{
			ID: uuid.NewString(), Name: "Riz local 25 kg", Slug: "riz-local-25kg",
			Description: "Sac de riz cultivé dans la région.",
			PriceFCFA:   13500, Stock: 40, Status: catalog.StatusActive, CategoryID: &epicerie.ID,
		},
		{
			ID: uuid.NewString(), Name: "Sucre en poudre 1 kg", Slug: "sucre-poudre-1kg",
			Description: "Sachet de sucre blanc.",
			PriceFCFA:   800, Stock: 200, Status: catalog.StatusActive, CategoryID: &epicerie.ID,
		},
		{
			ID: uuid.NewString(), Name: "Huile végétale 5 L", Slug: "huile-vegetale-5l",
			Description: "Bidon d'huile de cuisine.",
			PriceFCFA:   7500, Stock: 60, Status: catalog.StatusActive, CategoryID: &epicerie.ID,
		},
	}
	for i := range products {
		err := db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price_fcfa", "stock", "status"}),
		}).Create(&products[i]).Error
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", products[i].Slug, err)
		}
	}
	log.Printf("✓ demo catalog seeded: %d categories, %d products", len(cats), len(products))
}
