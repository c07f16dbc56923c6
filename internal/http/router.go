package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sikassosugu.ml/app/internal/http/handlers"
	"sikassosugu.ml/app/internal/http/handlers/admin"
	"sikassosugu.ml/app/internal/http/middleware"
)

// Deps holds the constructed handlers and middleware config the router
// wires together. main.go is the composition root.
type Deps struct {
	SessionCfg middleware.SessionCfg

	Products *handlers.ProductsHandler
	Cart     *handlers.CartHandler
	Delivery *handlers.DeliveryHandler
	WhatsApp *handlers.WhatsAppHandler
	Checkout *handlers.CheckoutHandler
	Orders   *handlers.OrdersHandler
	Auth     *handlers.AuthHandler
	Account  *handlers.AccountHandler
	Uploads  *handlers.UploadsHandler

	AdminProducts   *admin.ProductsHandler
	AdminCategories *admin.CategoriesHandler
	AdminOrders     *admin.OrdersHandler
	AdminReceipts   *admin.ReceiptsHandler
	AdminOutreach   *admin.OutreachHandler
	AdminUsers      *admin.UsersHandler
	AdminDashboard  *admin.DashboardHandler
}

func NewRouter(logger *slog.Logger, d Deps) *gin.Engine {
	r := gin.New()

	// ErrorHandler renders after Next, so it must sit outside Recovery:
	// a recovered panic only records its error and relies on the
	// collector further out to write the response.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.SessionMiddleware(d.SessionCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/products", d.Products.List)
		api.GET("/products/:slug", d.Products.Show)
		api.GET("/categories", d.Products.Categories)

		api.GET("/cart", d.Cart.Get)
		api.POST("/cart/items", d.Cart.Add)
		api.PUT("/cart/items/:productID", d.Cart.Update)
		api.DELETE("/cart/items/:productID", d.Cart.Remove)

		api.GET("/delivery/zones", d.Delivery.Zones)
		api.GET("/delivery/match", d.Delivery.Match)
		api.GET("/whatsapp", d.WhatsApp.Contact)

		api.GET("/checkout", d.Checkout.State)
		api.POST("/checkout/address", d.Checkout.SubmitAddress)
		api.POST("/checkout/payment", d.Checkout.SubmitPayment)
		api.POST("/checkout/reset", d.Checkout.Reset)

		// guests track by order number plus a phone query parameter
		api.GET("/orders/:number", d.Orders.Track)
		api.POST("/orders/:number/receipt", d.Orders.AttachReceipt)

		api.GET("/uploads/auth", d.Uploads.Auth)

		auth := api.Group("/auth")
		{
			auth.POST("/register", d.Auth.Register)
			auth.POST("/login", d.Auth.Login)
			auth.POST("/logout", d.Auth.Logout)
			auth.GET("/me", d.Auth.Me)
		}

		account := api.Group("/account", middleware.RequireAuth())
		{
			account.PUT("/profile", d.Account.UpdateProfile)
			account.PUT("/password", d.Account.ChangePassword)
			account.GET("/orders", d.Orders.ListMine)
			account.GET("/orders/:number", d.Orders.ShowMine)
		}

		adm := api.Group("/admin", middleware.RequireAdmin())
		{
			adm.GET("/dashboard", d.AdminDashboard.Show)

			adm.GET("/products", d.AdminProducts.List)
			adm.POST("/products", d.AdminProducts.Create)
			adm.GET("/products/:id", d.AdminProducts.Show)
			adm.PUT("/products/:id", d.AdminProducts.Update)
			adm.DELETE("/products/:id", d.AdminProducts.Delete)
			adm.POST("/products/:id/images", d.AdminProducts.UploadImage)
			adm.DELETE("/products/:id/images/:imageID", d.AdminProducts.DeleteImage)

			adm.POST("/categories", d.AdminCategories.Create)
			adm.PUT("/categories/:id", d.AdminCategories.Update)
			adm.DELETE("/categories/:id", d.AdminCategories.Delete)

			adm.GET("/orders", d.AdminOrders.List)
			adm.GET("/orders/:id", d.AdminOrders.Show)
			adm.POST("/orders/:id/transition", d.AdminOrders.Transition)
			adm.DELETE("/orders/:id", d.AdminOrders.Delete)
			adm.POST("/outreach", d.AdminOutreach.Record)

			adm.GET("/receipts/pending", d.AdminReceipts.Pending)
			adm.POST("/receipts/:id/review", d.AdminReceipts.Review)

			adm.GET("/users", d.AdminUsers.List)
			adm.PUT("/users/:id/role", d.AdminUsers.UpdateRole)
		}
	}

	return r
}
