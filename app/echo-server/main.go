package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jammshop/app/echo-server/router"
	"jammshop/business/analytics"
	"jammshop/business/auditlog"
	"jammshop/business/category"
	"jammshop/business/newsletter"
	"jammshop/business/orders"
	"jammshop/business/pricing"
	"jammshop/business/product"
	"jammshop/business/recommend"
	userService "jammshop/business/user"
	"jammshop/internal/repository/notification"
	psqlRepo "jammshop/internal/repository/postgres"
	redisRepo "jammshop/internal/repository/redis"
	"jammshop/internal/rest"
	"jammshop/pkg/config"
	"jammshop/pkg/database"
	redisdb "jammshop/pkg/database/redis"
	"jammshop/pkg/logger"
	"jammshop/pkg/metrics"
	"jammshop/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting JammShop", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	pricingRuleRepo := psqlRepo.NewPricingRuleRepository(db)
	productViewRepo := psqlRepo.NewProductViewRepository(db)
	newsletterRepo := psqlRepo.NewNewsletterRepository(db)
	viewCounterRepo := redisRepo.NewViewCounterRepository(redisClient)

	// In-memory admin activity log
	activityLog := auditlog.NewLog(cfg.App.ActivityLogCapacity)

	// Init service
	usrService := userService.NewUserService(userRepo, validate)
	productService := product.NewProductService(productsRepo)
	analyticsService := analytics.NewAnalyticsService(productViewRepo, viewCounterRepo)
	pricingService := pricing.NewPricingService(pricingRuleRepo, analyticsService, productService, usrService)
	ruleAdminService := pricing.NewRuleAdminService(pricingRuleRepo, activityLog)
	ordersService := orders.NewOrdersService(ordersRepo, productsRepo, pricingService)
	categoryService := category.NewCategoryService(categoryRepo)
	newsletterService := newsletter.NewNewsletterService(newsletterRepo, validate, mailjetEmail, cfg.App.NewsletterTokenKey, cfg.App.AppDeploymentUrl)
	recommendService := recommend.NewService(productViewRepo, productsRepo)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	productHandler := rest.NewProductHandler(productService, analyticsService)
	pricingHandler := rest.NewPricingHandler(pricingService, productService)
	pricingAdminHandler := rest.NewPricingAdminHandler(ruleAdminService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	newsletterHandler := rest.NewNewsletterHandler(newsletterService)
	recommendHandler := rest.NewRecommendHandler(recommendService)
	activityHandler := rest.NewActivityHandler(activityLog)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler)
	router.SetupProductRoutes(api, productHandler, pricingHandler)
	router.SetOrdersRoutes(api, ordersHandler)
	router.SetupCategoryRoutes(api, categoryHandler)
	router.SetupNewsletterRoutes(api, newsletterHandler)
	router.SetRecommendRoutes(api, recommendHandler)
	router.SetPricingAdminRoutes(api, pricingAdminHandler)
	router.SetActivityRoutes(api, activityHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
