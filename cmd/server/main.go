package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/devfolio/devfolio-api/adapters/event"
	httpAdapter "github.com/devfolio/devfolio-api/adapters/http"
	"github.com/devfolio/devfolio-api/adapters/media_storage"
	"github.com/devfolio/devfolio-api/adapters/persistence"
	authUC "github.com/devfolio/devfolio-api/internal/application/usecase/auth"
	mediaUC "github.com/devfolio/devfolio-api/internal/application/usecase/media"
	portfolioUC "github.com/devfolio/devfolio-api/internal/application/usecase/portfolio"
	"github.com/devfolio/devfolio-api/internal/config"
	"github.com/devfolio/devfolio-api/pkg/auth"
	"github.com/devfolio/devfolio-api/pkg/logger"
	"github.com/devfolio/devfolio-api/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Devfolio API server...")

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "devfolio-api")
		if err != nil {
			appLogger.Error("Failed to initialize tracing, continuing without it", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				tp.Shutdown(ctx)
			}()
		}
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)
	viewDeduper := persistence.NewRedisViewDeduper(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	oauthProvider := auth.NewGoogleOAuthProvider(auth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize uploader: %v", err)
	}

	// Use cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	confirmUseCase := authUC.NewConfirmEmailUseCase(userRepo, jwtSvc, appLogger)
	oauthUseCase := authUC.NewOAuthLoginUseCase(userRepo, oauthProvider, jwtSvc, appLogger)

	createCompleteUseCase := portfolioUC.NewCreateCompletePortfolioUseCase(portfolioRepo, appLogger)
	listOwnUseCase := portfolioUC.NewListOwnPortfoliosUseCase(portfolioRepo, appLogger)
	updateUseCase := portfolioUC.NewUpdatePortfolioUseCase(portfolioRepo, appLogger)
	deleteUseCase := portfolioUC.NewDeletePortfolioUseCase(portfolioRepo, appLogger)
	getPublicUseCase := portfolioUC.NewGetPublicPortfolioUseCase(portfolioRepo, kafkaClient, viewDeduper, appLogger)

	uploadImageUseCase := mediaUC.NewUploadImageUseCase(uploader, appLogger)
	deleteImageUseCase := mediaUC.NewDeleteImageUseCase(uploader, appLogger)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := httpAdapter.NewMetrics(registry)

	// HTTP handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, confirmUseCase, oauthUseCase, appLogger)
	portfolioHandler := httpAdapter.NewPortfolioHandler(createCompleteUseCase, listOwnUseCase, updateUseCase, deleteUseCase, cfg.App.SiteOrigin, appLogger)
	publicHandler := httpAdapter.NewPublicHandler(getPublicUseCase, metrics, appLogger)
	imageHandler := httpAdapter.NewImageHandler(uploadImageUseCase, deleteImageUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	publicLimiter := httpAdapter.NewRateLimiter(cfg.RateLimit.PublicPerMinute, cfg.RateLimit.PublicBurst)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpAdapter.CORSMiddleware())
	router.Use(metrics.Middleware())
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	router.GET("/metrics", httpAdapter.MetricsHandler(registry))

	api := router.Group("/api")
	{
		api.GET("/health", publicHandler.Health)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/confirm", authHandler.ConfirmEmail)
			authGroup.GET("/oauth/google", authHandler.GoogleLogin)
			authGroup.GET("/oauth/google/callback", authHandler.GoogleCallback)
		}

		public := api.Group("/p")
		public.Use(publicLimiter.Middleware())
		{
			public.GET("/:slug", publicHandler.GetPortfolio)
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware)
		{
			portfolios := admin.Group("/portfolios")
			{
				portfolios.GET("", portfolioHandler.ListPortfolios)

				confirmed := portfolios.Group("")
				confirmed.Use(httpAdapter.RequireConfirmedEmail())
				{
					confirmed.POST("", portfolioHandler.CreatePortfolio)
					confirmed.PUT("/:id", portfolioHandler.UpdatePortfolio)
					confirmed.DELETE("/:id", portfolioHandler.DeletePortfolio)
				}
			}

			images := admin.Group("/images")
			images.Use(httpAdapter.RequireConfirmedEmail())
			{
				images.POST("", imageHandler.UploadImage)
				images.DELETE("", imageHandler.DeleteImage)
			}
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
