// File: voltcare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voltcare/config"
	"voltcare/cron"
	"voltcare/database"
	outcomeRepo "voltcare/database/repository/outcome"
	"voltcare/handlers"
	"voltcare/middleware"
	"voltcare/routes"
	cartsvc "voltcare/services/cart"
	"voltcare/services/draft"
	"voltcare/services/payment"
	"voltcare/services/platform"
	"voltcare/services/tasks"
	"voltcare/services/wizard"
	"voltcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	sessionCache := utils.GetSessionCacheClient()

	// Stores.
	cartStore := cartsvc.NewRedisCartStore(sessionCache)
	draftStore := draft.NewRedisDraftStore(sessionCache)
	sessionStore := wizard.NewRedisSessionStore(sessionCache)

	// Platform collaborators.
	platformClient := platform.NewClient(config.AppConfig.PlatformBaseURL, logger)

	var gateway payment.PaymentGateway = platformClient
	if config.AppConfig.PaymentGateway == "stripe" {
		gateway = payment.NewStripeGateway("")
	}

	// Repositories.
	outcomes := outcomeRepo.NewMongoOutcomeRepo()

	// Background confirmation queue.
	scheduler := tasks.NewScheduler(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer scheduler.Close()
	cron.InitConfirmationWorker(outcomes)

	// Services.
	resolver := &payment.DefaultResolver{
		Gateway:   gateway,
		Cart:      cartStore,
		Drafts:    draftStore,
		Outcomes:  outcomes,
		Scheduler: scheduler,
		ReturnURL: config.AppConfig.PaymentReturnURL,
		Method:    "card",
		Logger:    logger,
	}

	wizardService := &wizard.DefaultWizardService{
		Sessions:      sessionStore,
		Cart:          cartStore,
		Drafts:        draftStore,
		Slots:         platformClient,
		Subscriptions: platformClient,
		Appointments:  platformClient,
		Payments:      resolver,
		Logger:        logger,
	}

	// Handlers.
	handlerBundle := &routes.HandlerBundle{
		Cart:    handlers.NewCartHandler(cartStore, platformClient, logger),
		Booking: handlers.NewBookingHandler(wizardService, draftStore, logger),
		Catalog: handlers.NewCatalogHandler(platformClient, logger),
		Payment: handlers.NewPaymentHandler(gateway, outcomes, logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(sessionCache, utils.GetAuthCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
