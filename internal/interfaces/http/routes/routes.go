// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
)

// Services carries the wired domain services handed to the handlers. The
// wishlist is optional: a nil service simply leaves its routes unregistered.
type Services struct {
	Config   *config.Config
	Log      *logrus.Logger
	Catalog  *catalog.Service
	Cart     *cart.Service
	Wishlist *wishlist.Service
	Checkout *checkout.Service
	Card     *payment.CardService
	Wallet   *payment.WalletService
	Order    *order.Service
}

// SetupRoutes registers all storefront routes on the given group
func SetupRoutes(rg *gin.RouterGroup, svc *Services) {
	setupProductRoutes(rg, svc)
	setupCartRoutes(rg, svc)
	setupWishlistRoutes(rg, svc)
	setupCheckoutRoutes(rg, svc)
	setupPaymentRoutes(rg, svc)
	setupOrderRoutes(rg, svc)
}

func setupProductRoutes(rg *gin.RouterGroup, svc *Services) {
	productHandler := handlers.NewProductHandler(svc.Catalog)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, svc *Services) {
	cartHandler := handlers.NewCartHandler(svc.Cart, svc.Catalog, svc.Config)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

func setupWishlistRoutes(rg *gin.RouterGroup, svc *Services) {
	if svc.Wishlist == nil {
		return
	}
	wishlistHandler := handlers.NewWishlistHandler(svc.Wishlist, svc.Catalog)

	wishlistGroup := rg.Group("/wishlist")
	{
		wishlistGroup.GET("", wishlistHandler.GetWishlist)
		wishlistGroup.GET("/contains/:id", wishlistHandler.ContainsProduct)
		wishlistGroup.POST("/items", wishlistHandler.AddToWishlist)
		wishlistGroup.DELETE("/items/:id", wishlistHandler.RemoveFromWishlist)
		wishlistGroup.DELETE("", wishlistHandler.ClearWishlist)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, svc *Services) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout)

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.POST("", checkoutHandler.StartCheckout)
		checkoutGroup.GET("", checkoutHandler.GetCheckout)
		checkoutGroup.POST("/next", checkoutHandler.NextStep)
		checkoutGroup.POST("/back", checkoutHandler.PreviousStep)
		checkoutGroup.DELETE("", checkoutHandler.AbandonCheckout)
	}
}

func setupPaymentRoutes(rg *gin.RouterGroup, svc *Services) {
	paymentHandler := handlers.NewPaymentHandler(
		svc.Checkout,
		svc.Cart,
		svc.Card,
		svc.Wallet,
		svc.Order,
		svc.Config,
		svc.Log,
	)

	paymentGroup := rg.Group("/payment")
	{
		paymentGroup.POST("/card/intent", paymentHandler.CreateCardIntent)
		paymentGroup.POST("/card/confirm", paymentHandler.ConfirmCardPayment)
		paymentGroup.POST("/wallet/orders", paymentHandler.CreateWalletOrder)
		paymentGroup.POST("/wallet/capture", paymentHandler.CaptureWalletOrder)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, svc *Services) {
	orderHandler := handlers.NewOrderHandler(svc.Order)

	orders := rg.Group("/orders")
	{
		orders.GET("/:number", orderHandler.GetOrder)
	}
}
