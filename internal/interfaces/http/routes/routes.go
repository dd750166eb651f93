// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/address"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/chat"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/coupon"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

// App wires the storefront's services together
type App struct {
	Config    *config.Config
	Log       logrus.FieldLogger
	Catalog   *catalog.Catalog
	Validator *coupon.Validator
	Pricing   *pricing.Engine
	Sessions  *session.Manager
	Addresses *address.Client
	Orders    *order.Service
	Users     *user.Service
	Chat      *chat.Service
	Invoices  handlers.InvoiceRenderer
	Checkout  checkout.Deps
}

// NewApp builds the services over the blob store and the configured backend
func NewApp(cfg *config.Config, log logrus.FieldLogger, blobs storage.Store, cat *catalog.Catalog) *App {
	api := backend.NewClient(cfg, log)
	validator := coupon.NewValidator(cat)
	engine := pricing.NewEngineFromConfig(cfg.Pricing)

	return &App{
		Config:    cfg,
		Log:       log,
		Catalog:   cat,
		Validator: validator,
		Pricing:   engine,
		Sessions:  session.NewManager(blobs, cfg.Storage, validator, engine, log),
		Addresses: address.NewClient(api),
		Orders:    order.NewService(api, log),
		Users:     user.NewService(api),
		Chat:      chat.NewService(chat.NewClient(api), cat, validator, log),
		Invoices:  pdf.NewService(cfg.Invoice),
		Checkout: checkout.Deps{
			Gateway:  payment.NewClient(api),
			Merchant: payment.NewMerchant(cfg.Payment),
			Pricing:  engine,
			Log:      log,
		},
	}
}

// SetupRoutes registers every storefront route on rg
func SetupRoutes(rg *gin.RouterGroup, app *App) {
	rg.Use(middleware.Identity(app.Log))

	SetupCatalogRoutes(rg, app)

	shop := rg.Group("")
	shop.Use(middleware.Session(app.Config.Session, app.Sessions, app.Log))
	SetupCartRoutes(shop, app)
	SetupWishlistRoutes(shop, app)
	SetupChatRoutes(shop, app)

	protected := rg.Group("")
	protected.Use(middleware.RequireIdentity())
	SetupAccountRoutes(protected, app)

	checkoutGroup := protected.Group("")
	checkoutGroup.Use(middleware.Session(app.Config.Session, app.Sessions, app.Log))
	SetupCheckoutRoutes(checkoutGroup, app)
}

// SetupCatalogRoutes sets up product, category and coupon routes
func SetupCatalogRoutes(rg *gin.RouterGroup, app *App) {
	productHandler := handlers.NewProductHandler(app.Catalog)
	categoryHandler := handlers.NewCategoryHandler(app.Catalog)
	couponHandler := handlers.NewCouponHandler(app.Validator)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	rg.GET("/categories", categoryHandler.GetCategories)

	// The session is optional here; it only narrows eligibility to the cart.
	rg.GET("/coupons", middleware.Session(app.Config.Session, app.Sessions, app.Log), couponHandler.GetCoupons)
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, app *App) {
	cartHandler := handlers.NewCartHandler(app.Catalog, app.Log)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.POST("/coupon", cartHandler.ApplyCoupon)
		cart.DELETE("/coupon", cartHandler.RemoveCoupon)
	}
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, app *App) {
	wishlistHandler := handlers.NewWishlistHandler(app.Catalog, app.Log)

	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.DELETE("", wishlistHandler.ClearWishlist)
		wishlist.POST("/items", wishlistHandler.AddToWishlist)
		wishlist.DELETE("/items/:id", wishlistHandler.RemoveFromWishlist)
		wishlist.POST("/items/:id/move-to-cart", wishlistHandler.MoveToCart)
	}
}

// SetupChatRoutes sets up the help widget relay
func SetupChatRoutes(rg *gin.RouterGroup, app *App) {
	chatHandler := handlers.NewChatHandler(app.Chat)

	rg.GET("/chat", chatHandler.GetGreeting)
	rg.POST("/chat", chatHandler.SendMessage)
}

// SetupAccountRoutes sets up address, order and profile routes
func SetupAccountRoutes(rg *gin.RouterGroup, app *App) {
	addressHandler := handlers.NewAddressHandler(app.Addresses)
	orderHandler := handlers.NewOrderHandler(app.Orders)
	invoiceHandler := handlers.NewInvoiceHandler(app.Orders, app.Invoices, app.Log)
	profileHandler := handlers.NewProfileHandler(app.Users)

	addresses := rg.Group("/addresses")
	{
		addresses.GET("", addressHandler.GetAddresses)
		addresses.POST("", addressHandler.CreateAddress)
		addresses.PUT("/:id", addressHandler.UpdateAddress)
		addresses.DELETE("/:id", addressHandler.DeleteAddress)
		addresses.PATCH("/:id/default", addressHandler.SetDefaultAddress)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/invoice", invoiceHandler.GenerateInvoice)
		orders.PATCH("/:id/cancel", orderHandler.CancelOrder)
		orders.PATCH("/:id/return", orderHandler.ReturnOrder)
	}

	rg.GET("/profile", profileHandler.GetProfile)
	rg.PUT("/profile", profileHandler.UpdateProfile)
}

// SetupCheckoutRoutes sets up the checkout flow
func SetupCheckoutRoutes(rg *gin.RouterGroup, app *App) {
	checkoutHandler := handlers.NewCheckoutHandler(app.Addresses, app.Users, app.Checkout)

	co := rg.Group("/checkout")
	{
		co.POST("", checkoutHandler.StartCheckout)
		co.GET("", checkoutHandler.GetCheckout)
		co.PUT("/address", checkoutHandler.SelectAddress)
		co.POST("/addresses", checkoutHandler.AddAddress)
		co.POST("/next", checkoutHandler.Next)
		co.POST("/back", checkoutHandler.Back)
		co.PUT("/step", checkoutHandler.GoTo)
		co.POST("/pay", checkoutHandler.Pay)
		co.POST("/payment/success", checkoutHandler.PaymentSuccess)
		co.POST("/payment/failure", checkoutHandler.PaymentFailure)
	}
}
