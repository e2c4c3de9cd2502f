package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/handmade-hub/handmade-hub-backend-go/handlers"
	customMiddleware "github.com/handmade-hub/handmade-hub-backend-go/middleware"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

// Handlers groups every HTTP handler the API mounts.
type Handlers struct {
	Auth            *handlers.AuthHandler
	Orders          *handlers.OrderHandler
	ArtisanRequests *handlers.ArtisanRequestHandler
	Products        *handlers.ProductHandler
	Users           *handlers.UserHandler
	Cart            *handlers.CartHandler
	Reviews         *handlers.ReviewHandler
	Payments        *handlers.PaymentHandler
}

const (
	customer = models.RoleCustomer
	artisan  = models.RoleArtisan
	admin    = models.RoleAdmin
)

func SetupRoutes(e *echo.Echo, h Handlers, resolver customMiddleware.ActorResolver) {
	auth := customMiddleware.Auth(resolver)
	roles := customMiddleware.RequireRoles

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)

	orders := api.Group("/orders", auth)
	orders.POST("", h.Orders.Create, roles(customer))
	orders.GET("/my", h.Orders.ListMine, roles(customer))
	orders.GET("", h.Orders.ListAll, roles(admin))
	orders.GET("/user/:userId", h.Orders.ListByCustomer, roles(admin))
	orders.GET("/analytics", h.Orders.Analytics, roles(admin))
	orders.GET("/my-orders", h.Orders.ListForArtisan, roles(artisan))
	orders.GET("/artisan/:id", h.Orders.GetForArtisan, roles(artisan))
	orders.GET("/:id", h.Orders.Get, roles(admin, customer))
	orders.PUT("/:id/status", h.Orders.UpdateStatus, roles(admin))
	orders.PUT("/:id/tracking", h.Orders.UpdateTracking, roles(artisan, admin))
	orders.DELETE("/:id", h.Orders.Delete, roles(admin))

	requests := api.Group("/artisan-requests", auth)
	requests.POST("", h.ArtisanRequests.Submit, roles(customer, artisan))
	requests.GET("/my-request", h.ArtisanRequests.Mine, roles(customer, artisan))
	requests.GET("", h.ArtisanRequests.List, roles(admin))
	requests.PUT("/:requestId", h.ArtisanRequests.Decide, roles(admin))
	requests.DELETE("/:requestId", h.ArtisanRequests.Delete, roles(admin))

	products := api.Group("/products")
	products.GET("", h.Products.List)
	products.GET("/my-products", h.Products.Mine, auth, roles(artisan))
	products.GET("/:id", h.Products.Get)
	products.GET("/:id/analytics", h.Products.Analytics, auth, roles(admin))
	products.POST("", h.Products.Create, auth, roles(artisan, admin))
	products.PUT("/:id", h.Products.Update, auth, roles(artisan, admin))
	products.DELETE("/:id", h.Products.Delete, auth, roles(artisan, admin))

	users := api.Group("/users")
	users.GET("/artisan/:id", h.Users.ArtisanProfile)
	users.GET("/me", h.Users.Profile, auth, roles(customer, artisan, admin))
	users.PUT("/me", h.Users.UpdateProfile, auth, roles(customer, artisan, admin))
	users.GET("/cart", h.Cart.Get, auth)
	users.POST("/cart", h.Cart.Replace, auth)
	users.GET("", h.Users.List, auth, roles(admin))
	users.GET("/artisans", h.Users.ListArtisans, auth, roles(admin))
	users.GET("/:id", h.Users.Get, auth, roles(admin))
	users.PUT("/:id", h.Users.Update, auth, roles(admin))
	users.DELETE("/:id", h.Users.Delete, auth, roles(admin))

	reviews := api.Group("/reviews")
	reviews.GET("/product/:productId", h.Reviews.ForProduct)
	reviews.POST("/:productId", h.Reviews.Create, auth, roles(customer))
	reviews.PUT("/:reviewId", h.Reviews.Update, auth, roles(customer))
	reviews.DELETE("/:reviewId", h.Reviews.Delete, auth, roles(customer, admin))

	payments := api.Group("/payments", auth)
	payments.POST("/create-payment-intent", h.Payments.CreateIntent)
}
