// File: roombooking/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roombooking/config"
	"roombooking/cron"
	"roombooking/database"
	"roombooking/handlers"
	"roombooking/middleware"
	"roombooking/routes"
	"roombooking/services/booking"
	"roombooking/services/notification"
	"roombooking/services/tasks"
	"roombooking/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Ledger storage.
	ledger, err := database.OpenLedger(ctx)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	if ledger.Backend == "memory" {
		logger.Warn("main: using in-memory ledger, bookings are lost on restart")
	}
	utils.StartHealthMonitor(ctx, ledger.Backend, ledger.Redis, ledger.Mongo, 60*time.Second)

	catalog, err := booking.NewCatalog(config.AppConfig.Rooms, config.AppConfig.TimeSlots)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid catalog: %v", err)
	}

	recorder := &booking.DefaultBookingRecorder{
		Ledger:             ledger.Repo,
		Catalogue:          catalog,
		Logger:             logger,
		SideChannelTimeout: config.AppConfig.SideChannelTimeout,
		Location:           config.Location(),
	}

	// Remote notification, with optional deferred retry through asynq.
	var (
		retryQueue   notification.RetryQueue
		asynqClient  *asynq.Client
		webhookQueue *asynq.Server
	)
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	if config.AppConfig.WebhookURL != "" && config.AppConfig.WebhookRetryQueue {
		asynqClient = asynq.NewClient(queueOpts)
		retryQueue = &tasks.AsynqRetryQueue{Client: asynqClient, Delay: time.Minute}
	}
	if notifier := notification.NewWebhookNotifier(
		config.AppConfig.WebhookURL,
		config.AppConfig.WebhookTimeout,
		config.AppConfig.WebhookMaxAttempts,
		retryQueue,
		logger,
	); notifier != nil {
		recorder.Notifier = notifier
		if asynqClient != nil {
			webhookQueue = cron.StartWebhookWorker(queueOpts, notifier, logger)
		}
	} else {
		logger.Info("main: WEBHOOK_URL not set, remote notification disabled")
	}

	// Host messaging environment, resolved once.
	hostAvailable := false
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		fcm, err := utils.NewFCMClient(ctx, path)
		if err != nil {
			logger.Warn("main: chat announcements disabled", zap.Error(err))
		} else {
			recorder.Announcer = notification.NewChatAnnouncer(fcm)
			hostAvailable = true
		}
	}

	bookingHandler := handlers.NewBookingHandler(recorder, hostAvailable, logger)
	handlerBundle := &handlers.HandlerBundle{
		SubmitBooking: bookingHandler.SubmitBooking,
		ListBookings:  bookingHandler.ListBookings,
		GetCatalog:    bookingHandler.GetCatalog,
		Health:        handlers.HealthHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler(logger))
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))
	router.Use(middleware.IdentityMiddleware([]byte(config.AppConfig.JWTSecret), logger))

	routes.RegisterRoutes(router, handlerBundle)

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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if webhookQueue != nil {
		webhookQueue.Shutdown()
	}
	if asynqClient != nil {
		_ = asynqClient.Close()
	}
	ledger.Close(shutdownCtx)

	logger.Sugar().Info("main: server stopped gracefully")
}
