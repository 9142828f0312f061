package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ingcap/config"
	"ingcap/database"
	bookingRepo "ingcap/database/repository/booking"
	statusRepo "ingcap/database/repository/status"
	"ingcap/handlers"
	"ingcap/metrics"
	"ingcap/middleware"
	"ingcap/routes"
	"ingcap/services/booking"
	"ingcap/services/notification"
	"ingcap/services/status"
	"ingcap/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}
	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// repositories.
	var (
		bookings    bookingRepo.BookingRepository
		checks      statusRepo.StatusCheckRepository
		mongoClient *mongo.Client
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("main: using in-memory store, bookings will not survive a restart")
		bookings = bookingRepo.NewMemoryBookingRepo()
		checks = statusRepo.NewMemoryStatusRepo()
	default:
		mongoClient, err = database.Connect(rootCtx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		db := mongoClient.Database(cfg.DBName)
		bookings = bookingRepo.NewMongoBookingRepo(rootCtx, db, logger)
		checks = statusRepo.NewMongoStatusRepo(db)
		logger.Info("main: connected to MongoDB", zap.String("db", cfg.DBName))
	}

	// slot cache.
	var (
		cacheClient *redis.Client
		slotCache   booking.SlotCache
		cacheCheck  utils.HealthCheck
	)
	if cfg.RedisAddr != "" {
		cacheClient, err = utils.NewCacheClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			// The cache is optional; booked slots fall back to the store.
			logger.Warn("main: slot cache disabled", zap.Error(err))
		} else {
			slotCache = booking.NewRedisSlotCache(cacheClient, cfg.SlotCacheTTL)
			cacheCheck = func(ctx context.Context) error { return cacheClient.Ping(ctx).Err() }
		}
	}

	// mailer.
	mode := cfg.Notifications()
	var mailer notification.Mailer = notification.NewDisabledMailer()
	if mode == config.NotificationsEnabled {
		mailer = notification.NewSMTPMailer(notification.SMTPSettings{
			Host:           cfg.SMTPServer,
			Port:           cfg.SMTPPort,
			Username:       cfg.SMTPUser,
			Password:       cfg.SMTPPassword,
			UseSSL:         cfg.SMTPUseSSL,
			Timeout:        cfg.SMTPTimeout,
			AllowPlaintext: cfg.SMTPAllowPlaintext,
		}, logger)
	}
	logger.Info("main: email notifications", zap.Stringer("mode", mode))

	// services.
	bookingService, err := booking.NewBookingService(booking.Deps{
		Repo:          bookings,
		Mailer:        mailer,
		Notifications: mode,
		BusinessEmail: cfg.BusinessEmail,
		SlotCache:     slotCache,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("main: failed to build booking service", zap.Error(err))
	}
	statusService := status.NewStatusService(checks)

	monitor := utils.NewHealthMonitor(bookings.Ping, cacheCheck, 30*time.Second)
	monitor.Start(rootCtx)

	bookingHandler := handlers.NewBookingHandler(bookingService)
	statusHandler := handlers.NewStatusHandler(statusService)

	handlerBundle := &handlers.HandlerBundle{
		RootHandler: handlers.Root,

		CreateStatusCheckHandler: statusHandler.CreateStatusCheck,
		GetStatusChecksHandler:   statusHandler.GetStatusChecks,

		SendBookingHandler:    bookingHandler.SendBooking,
		GetBookingsHandler:    bookingHandler.GetBookings,
		GetBookedSlotsHandler: bookingHandler.GetBookedSlots,
		TestEmailHandler:      bookingHandler.TestEmail,

		HealthHandler: handlers.HealthHandler(monitor),
	}

	// Create the Gin router.
	metrics.Register()
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(metrics.GinMiddleware())

	routes.RegisterRoutes(router, handlerBundle, cfg)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-rootCtx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error("main: failed to disconnect MongoDB", zap.Error(err))
		}
	}
	if cacheClient != nil {
		if err := cacheClient.Close(); err != nil {
			logger.Error("main: failed to close Redis", zap.Error(err))
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
