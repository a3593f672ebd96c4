package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/config"
	"github.com/mentorhub/mentorhub-api/internal/cache"
	"github.com/mentorhub/mentorhub-api/internal/handlers"
	"github.com/mentorhub/mentorhub-api/internal/middleware"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	"github.com/mentorhub/mentorhub-api/internal/services"
	"github.com/mentorhub/mentorhub-api/pkg/db"
	"github.com/mentorhub/mentorhub-api/pkg/jwt"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
	"github.com/mentorhub/mentorhub-api/pkg/profiling"
	"github.com/mentorhub/mentorhub-api/pkg/storage"
	"github.com/mentorhub/mentorhub-api/pkg/tracing"
)

// registerV1Routes wires the versioned API surface. The mentor directory is
// public; everything else requires a bearer token, with role gates on the
// mentor-only and mentee-only paths.
func registerV1Routes(
	v1 *gin.RouterGroup,
	tokenManager *jwt.TokenManager,
	generalRateLimiter, writeRateLimiter, uploadRateLimiter *middleware.RateLimiter,
	mentorHandler *handlers.MentorHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	sessionHandler *handlers.SessionHandler,
	feedbackHandler *handlers.FeedbackHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	auth := middleware.AuthMiddleware(tokenManager)
	mentorOnly := middleware.RequireRole(models.RoleMentor)
	menteeOnly := middleware.RequireRole(models.RoleMentee)

	// Public mentor directory
	v1.GET("/mentors", generalRateLimiter.Middleware(), mentorHandler.GetMentors)
	v1.GET("/mentors/search", generalRateLimiter.Middleware(), mentorHandler.SearchMentors)
	v1.GET("/mentors/:id", generalRateLimiter.Middleware(), mentorHandler.GetMentorByID)

	// Mentor profile management
	v1.POST("/mentors/profile", writeRateLimiter.Middleware(), auth, mentorOnly, mentorHandler.UpsertProfile)
	v1.POST("/mentors/profile/picture", uploadRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), auth, mentorOnly, mentorHandler.UploadPicture)

	// Availability
	v1.GET("/availability/my-availability", generalRateLimiter.Middleware(), auth, mentorOnly, availabilityHandler.GetMyAvailability)
	v1.PUT("/availability/my-availability", writeRateLimiter.Middleware(), auth, mentorOnly, availabilityHandler.UpdateMyAvailability)
	v1.GET("/availability/mentor/:mentorId", generalRateLimiter.Middleware(), auth, availabilityHandler.GetMentorAvailability)
	v1.GET("/availability/mentor/:mentorId/slots", generalRateLimiter.Middleware(), auth, availabilityHandler.GetMentorSlots)

	// Sessions
	v1.POST("/sessions", writeRateLimiter.Middleware(), auth, menteeOnly, sessionHandler.CreateSession)
	v1.GET("/sessions/my-sessions", generalRateLimiter.Middleware(), auth, menteeOnly, sessionHandler.GetMySessions)
	v1.GET("/sessions/mentor-sessions", generalRateLimiter.Middleware(), auth, mentorOnly, sessionHandler.GetMentorSessions)
	v1.PATCH("/sessions/:id/status", writeRateLimiter.Middleware(), auth, mentorOnly, sessionHandler.UpdateSessionStatus)
	v1.PATCH("/sessions/:id/cancel", writeRateLimiter.Middleware(), auth, sessionHandler.CancelSession)

	// Feedback
	v1.POST("/feedback", writeRateLimiter.Middleware(), auth, menteeOnly, feedbackHandler.CreateFeedback)
	v1.GET("/feedback/mentor/:mentorId", generalRateLimiter.Middleware(), auth, feedbackHandler.GetMentorFeedback)
	v1.GET("/feedback/my-feedback", generalRateLimiter.Middleware(), auth, menteeOnly, feedbackHandler.GetMyFeedback)
	v1.GET("/feedback/session/:sessionId", generalRateLimiter.Middleware(), auth, feedbackHandler.GetSessionFeedback)

	// Notifications
	v1.GET("/notifications", generalRateLimiter.Middleware(), auth, notificationHandler.GetNotifications)
	v1.GET("/notifications/unread-count", generalRateLimiter.Middleware(), auth, notificationHandler.GetUnreadCount)
	v1.PATCH("/notifications/:id/read", writeRateLimiter.Middleware(), auth, notificationHandler.MarkAsRead)
	v1.PATCH("/notifications/read-all", writeRateLimiter.Middleware(), auth, notificationHandler.MarkAllAsRead)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MentorHub API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Initialize metrics with service name from config
	metrics.Init(cfg.Observability.ServiceName)
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// Initialize S3-compatible storage for profile pictures (optional)
	var storageClient storage.ClientInterface
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		client, err := storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize storage client", zap.Error(err))
		}
		storageClient = client
	} else {
		logger.Warn("Storage credentials not configured: profile picture uploads disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	mentorRepo := repository.NewMentorRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	// Initialize mentor cache synchronously before accepting requests so
	// the directory is warm before the container is marked healthy
	var mentorCache cache.MentorCacheInterface
	cacheReadyFunc := func() bool { return true }
	if cfg.Cache.DisableMentorsCache {
		logger.Warn("Mentor cache is DISABLED - reading from database on every request")
	} else {
		mc := cache.NewMentorCache(mentorRepo, cfg.Cache.MentorTTLSeconds)
		if err := mc.Initialize(context.Background()); err != nil {
			logger.Fatal("Failed to initialize mentor cache", zap.Error(err))
		}
		mentorCache = mc
		cacheReadyFunc = mc.IsReady
	}

	// Initialize services
	notifier := services.NewNotifier(notificationRepo)
	mentorService := services.NewMentorService(mentorRepo, userRepo, mentorCache, storageClient, cfg)
	availabilityService := services.NewAvailabilityService(availabilityRepo, mentorRepo, time.Now)
	sessionService := services.NewSessionService(sessionRepo, mentorRepo, userRepo, notifier, time.Now)
	lifecycleService := services.NewLifecycleService(sessionRepo, mentorRepo, notifier, cfg.Meeting, time.Now)
	feedbackService := services.NewFeedbackService(feedbackRepo, sessionRepo, mentorRepo, notifier)
	notificationService := services.NewNotificationService(notificationRepo)

	// Initialize handlers
	mentorHandler := handlers.NewMentorHandler(mentorService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	sessionHandler := handlers.NewSessionHandler(sessionService, lifecycleService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	healthHandler := handlers.NewHealthHandler(cacheReadyFunc)

	tokenManager := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TTLHours)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only allow configured origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // reads
	writeRateLimiter := middleware.NewRateLimiter(10, 20)     // bookings, transitions, feedback
	uploadRateLimiter := middleware.NewRateLimiter(1, 3)      // picture uploads

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.BodySizeLimitMiddleware(1 * 1024 * 1024))
	registerV1Routes(v1, tokenManager,
		generalRateLimiter, writeRateLimiter, uploadRateLimiter,
		mentorHandler, availabilityHandler, sessionHandler, feedbackHandler, notificationHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
