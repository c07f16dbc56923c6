package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/cache"
	"sikassosugu.ml/app/internal/config"
	apphttp "sikassosugu.ml/app/internal/http"
	"sikassosugu.ml/app/internal/http/cartcookie"
	"sikassosugu.ml/app/internal/http/checkoutcookie"
	"sikassosugu.ml/app/internal/http/handlers"
	"sikassosugu.ml/app/internal/http/handlers/admin"
	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/mailer"
	"sikassosugu.ml/app/internal/modules/cart"
	"sikassosugu.ml/app/internal/modules/catalog"
	"sikassosugu.ml/app/internal/modules/email"
	"sikassosugu.ml/app/internal/modules/orders"
	"sikassosugu.ml/app/internal/modules/payments"
	"sikassosugu.ml/app/internal/modules/users"
	"sikassosugu.ml/app/internal/storage"
	"sikassosugu.ml/app/internal/uploadauth"
	"sikassosugu.ml/app/internal/whatsapp"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("storage ready", "driver", store.Driver)

	var cacher catalog.Cacher
	if cfg.Redis.Addr != "" {
		cacher = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		logger.Info("catalog cache enabled", "addr", cfg.Redis.Addr)
	}

	catalogSvc := catalog.NewService(catalog.NewGormRepo(db), cacher)
	catalogRepo := catalog.NewRepo(db)
	cartSvc := cart.NewService(db)
	userSvc := users.NewService(db)

	orderSvc := orders.NewService(db, newOrderNotifier(cfg))
	orderRepo := orders.NewRepo(db)
	orderAdmin := orders.NewAdminService(db)
	paySvc := payments.NewService(db, orderAdmin)

	wa := whatsapp.NewLinkBuilder(cfg.WhatsApp.SalesNumber, cfg.WhatsApp.SupportNumber, cfg.App.BaseURL)
	outreach := whatsapp.NewOutreachService(db)
	signer := uploadauth.NewSigner(cfg.Upload.PrivateKey, cfg.Upload.PublicKey, cfg.Upload.ExpireIn)

	sessionCfg := middleware.SessionCfg{
		DB:         db,
		CookieName: "ss_session",
		Secure:     cfg.App.SecureCookies,
		TTL:        cfg.App.SessionTTL,
	}
	cartCodec := cartcookie.New(cfg.App.CookieSecret, "ss_cart", cfg.App.SecureCookies)
	checkoutCodec := checkoutcookie.New(cfg.App.CookieSecret, "ss_checkout", cfg.App.SecureCookies)

	r := apphttp.NewRouter(logger, apphttp.Deps{
		SessionCfg: sessionCfg,

		Products: handlers.NewProductsHandler(catalogSvc, wa),
		Cart:     handlers.NewCartHandler(db, cartCodec, cartSvc),
		Delivery: handlers.NewDeliveryHandler(),
		WhatsApp: handlers.NewWhatsAppHandler(wa),
		Checkout: handlers.NewCheckoutHandler(db, checkoutCodec, cartCodec, cartSvc, orderSvc, wa),
		Orders:   handlers.NewOrdersHandler(orderRepo, paySvc, wa),
		Auth:     handlers.NewAuthHandler(userSvc, sessionCfg),
		Account:  handlers.NewAccountHandler(userSvc),
		Uploads:  handlers.NewUploadsHandler(signer),

		AdminProducts:   admin.NewProductsHandler(catalogRepo, catalogSvc, store.Storage),
		AdminCategories: admin.NewCategoriesHandler(catalogRepo, catalogSvc),
		AdminOrders:     admin.NewOrdersHandler(orderRepo, orderAdmin, paySvc, outreach),
		AdminReceipts:   admin.NewReceiptsHandler(paySvc),
		AdminOutreach:   admin.NewOutreachHandler(outreach),
		AdminUsers:      admin.NewUsersHandler(db),
		AdminDashboard:  admin.NewDashboardHandler(db),
	})

	logger.Info("listening", "addr", cfg.App.Addr, "env", cfg.App.Env)
	if err := r.Run(cfg.App.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// newOrderNotifier picks the email transport for new-order alerts.
// With no recipient configured the notifier still exists; it logs and
// drops instead of blocking checkout.
func newOrderNotifier(cfg config.Config) *email.OrderNotifier {
	var sender email.Sender
	if apiKey := os.Getenv("MAILTRAP_API_KEY"); apiKey != "" {
		sender = email.NewMailtrapProvider(
			os.Getenv("MAILTRAP_API_URL"),
			apiKey,
			cfg.SMTP.From,
			cfg.SMTP.FromName,
		)
	} else {
		sender = email.NewMailerAdapter(mailer.NewSMTPMailer(cfg.SMTP), cfg.SMTP.From, cfg.SMTP.FromName)
	}
	return email.NewOrderNotifier(sender, cfg.App.OrderEmail, cfg.App.BaseURL)
}
