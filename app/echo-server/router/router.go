package router

import (
	"jammshop/internal/middleware"
	"jammshop/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.GET("", handler.GetAllUsers, middleware.AuthMiddleware(), middleware.AdminOnly())
	users.GET("/:id", handler.GetUserByID, middleware.AuthMiddleware(), middleware.SelfOrAdmin())
	users.PUT("/:id/tier", handler.UpdateTier, middleware.AuthMiddleware(), middleware.AdminOnly())
	users.DELETE("/:id", handler.DeleteUser, middleware.AuthMiddleware(), middleware.AdminOnly())
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, pricingHandler *rest.PricingHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID, middleware.OptionalAuth())
	products.GET("/:id/price", pricingHandler.GetPrice, middleware.OptionalAuth())
	products.GET("/category/:categoryId", handler.GetProductsByCategory)

	products.POST("", handler.CreateProduct, middleware.AuthMiddleware(), middleware.AdminOnly())
	products.PUT("/:id", handler.UpdateProduct, middleware.AuthMiddleware(), middleware.AdminOnly())
	products.DELETE("/:id", handler.DeleteProduct, middleware.AuthMiddleware(), middleware.AdminOnly())
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler) {
	orders := api.Group("/orders", middleware.AuthMiddleware())

	orders.POST("", ordersHandler.CreateOrderItem)
	orders.GET("", ordersHandler.GetMyOrders)
	orders.GET("/:id", ordersHandler.GetOrderByID)

	orders.GET("/all", ordersHandler.GetAllOrders, middleware.AdminOnly())
	orders.PUT("/:id/status", ordersHandler.UpdateOrderStatus, middleware.AdminOnly())
	orders.DELETE("/:id", ordersHandler.DeleteOrder, middleware.AdminOnly())
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:slug", handler.GetCategoryBySlug)

	categories.POST("", handler.CreateCategory, middleware.AuthMiddleware(), middleware.AdminOnly())
	categories.PUT("/:id", handler.UpdateCategory, middleware.AuthMiddleware(), middleware.AdminOnly())
	categories.DELETE("/:id", handler.DeleteCategory, middleware.AuthMiddleware(), middleware.AdminOnly())
}

func SetupNewsletterRoutes(api *echo.Group, handler *rest.NewsletterHandler) {
	newsletter := api.Group("/newsletter")

	newsletter.POST("/subscribe", handler.Subscribe)
	newsletter.GET("/confirm/:token", handler.Confirm)
	newsletter.POST("/unsubscribe", handler.Unsubscribe)
}

func SetRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	reco := api.Group("/recommendations")

	reco.GET("/trending", handler.GetTrending)
}

func SetPricingAdminRoutes(api *echo.Group, handler *rest.PricingAdminHandler) {
	rules := api.Group("/admin/pricing-rules", middleware.AuthMiddleware(), middleware.AdminOnly())

	rules.GET("", handler.ListRules)
	rules.GET("/:id", handler.GetRule)
	rules.POST("", handler.CreateRule)
	rules.PUT("/:id", handler.UpdateRule)
	rules.DELETE("/:id", handler.DeleteRule)
}

func SetActivityRoutes(api *echo.Group, handler *rest.ActivityHandler) {
	activity := api.Group("/admin/activity", middleware.AuthMiddleware(), middleware.AdminOnly())

	activity.GET("", handler.GetRecent)
}
