package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/controllers"
	"storefront/middleware"
)

type Controllers struct {
	Auth    *controllers.AuthController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Payment *controllers.PaymentController
}

func SetupRoutes(router *gin.Engine, ctrl Controllers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", ctrl.Auth.Register)
	router.POST("/auth/login", ctrl.Auth.Login)

	router.GET("/products", ctrl.Product.Search)
	router.GET("/products/:id", ctrl.Product.GetByID)
	router.GET("/products/:id/related", ctrl.Product.GetRelated)
	router.GET("/categories", ctrl.Product.GetCategories)
	router.GET("/deals", ctrl.Product.GetDeals)
	router.GET("/featured", ctrl.Product.GetFeatured)

	// One browsing session owns the cart; guests can shop and check out,
	// so auth is resolved when present but never required here.
	session := router.Group("/")
	session.Use(middleware.OptionalAuthMiddleware())
	{
		session.GET("/cart", ctrl.Cart.Get)
		session.DELETE("/cart", ctrl.Cart.Clear)
		session.POST("/cart/items", ctrl.Cart.AddItem)
		session.DELETE("/cart/items/:index", ctrl.Cart.RemoveItem)
		session.PATCH("/cart/items/:index", ctrl.Cart.UpdateQuantity)
		session.POST("/cart/items/:index/save", ctrl.Cart.SaveForLater)
		session.POST("/cart/saved/:index/move", ctrl.Cart.MoveToCart)
		session.DELETE("/cart/saved/:index", ctrl.Cart.RemoveSaved)

		session.POST("/checkout", ctrl.Order.Checkout)
		session.GET("/orders", ctrl.Order.List)
		session.GET("/orders/:id", ctrl.Order.GetByID)
		session.PATCH("/orders/:id/status", ctrl.Order.UpdateStatus)

		session.GET("/orders/:id/payment", ctrl.Payment.Get)
		session.POST("/orders/:id/payment/wallet-copy", ctrl.Payment.RecordWalletCopy)
		session.POST("/orders/:id/payment/confirm", ctrl.Payment.Confirm)
	}

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", ctrl.Auth.GetProfile)
		auth.POST("/auth/addresses", ctrl.Auth.AddAddress)
		auth.PATCH("/auth/addresses/:id", ctrl.Auth.UpdateAddress)
		auth.DELETE("/auth/addresses/:id", ctrl.Auth.RemoveAddress)
	}
}
