package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/learnity/backend/api/handler"
	"github.com/learnity/backend/internal/config"
	"github.com/learnity/backend/internal/infrastructure/buffer"
	"github.com/learnity/backend/internal/infrastructure/monitor"
	pgInfra "github.com/learnity/backend/internal/infrastructure/postgres"
	redisInfra "github.com/learnity/backend/internal/infrastructure/redis"
	"github.com/learnity/backend/internal/mailer"
	"github.com/learnity/backend/internal/middleware"
	"github.com/learnity/backend/internal/router"
	"github.com/learnity/backend/internal/services"
	"github.com/learnity/backend/internal/services/lifecycle"
	"github.com/learnity/backend/pkg/httpcontext"
	"github.com/learnity/backend/pkg/logger"
	"github.com/learnity/backend/pkg/token"
	"github.com/learnity/backend/repository/postgres"
	redisRepo "github.com/learnity/backend/repository/redis"
	analyticsUC "github.com/learnity/backend/usecase/analytics"
	authUC "github.com/learnity/backend/usecase/auth"
	courseUC "github.com/learnity/backend/usecase/course"
	layoutUC "github.com/learnity/backend/usecase/layout"
	notificationUC "github.com/learnity/backend/usecase/notification"
	orderUC "github.com/learnity/backend/usecase/order"
	userUC "github.com/learnity/backend/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	courseRepo := postgres.NewCourseRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	layoutRepo := postgres.NewLayoutRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	sessionCache := redisRepo.NewSessionCache(redisClient, cfg.Session.TTL)

	tokenIssuer, err := token.NewIssuer(token.Config{
		AccessSecret:     []byte(cfg.Token.AccessSecret),
		RefreshSecret:    []byte(cfg.Token.RefreshSecret),
		ActivationSecret: []byte(cfg.Token.ActivationSecret),
		AccessTTL:        cfg.Token.AccessTTL,
		RefreshTTL:       cfg.Token.RefreshTTL,
		ActivationTTL:    cfg.Token.ActivationTTL,
		Issuer:           cfg.Token.Issuer,
	})
	if err != nil {
		zapLogger.Fatal("token issuer init failed", zap.Error(err))
	}

	mailClient, err := mailer.New(cfg.SMTP, zapLogger)
	if err != nil {
		zapLogger.Fatal("mailer init failed", zap.Error(err))
	}

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		notificationRepo,
		courseRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	authUseCase := authUC.New(userRepo, sessionCache, tokenIssuer, mailClient, cfg.Session.TTL, zapLogger)
	userUseCase := userUC.New(userRepo, sessionCache, cfg.Session.TTL, zapLogger)
	courseUseCase := courseUC.New(courseRepo, zapLogger)
	orderUseCase := orderUC.New(orderRepo, courseRepo, userRepo, sessionCache, bufferBridge, mailClient, cfg.Session.TTL, zapLogger)
	notificationUseCase := notificationUC.New(notificationRepo, zapLogger)
	layoutUseCase := layoutUC.New(layoutRepo, zapLogger)
	analyticsUseCase := analyticsUC.New(analyticsRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	cookieWriter := middleware.CookieWriter{
		AccessTTL:  cfg.Token.AccessTTL,
		RefreshTTL: cfg.Token.RefreshTTL,
		Secure:     cfg.IsProduction(),
	}
	authenticator := middleware.NewAuthenticator(authUseCase, cookieWriter, ctxAdapter, zapLogger)

	handlers := router.Handlers{
		Auth:         apiHandler.NewAuthHandler(authUseCase, cookieWriter, ctxAdapter, zapLogger),
		User:         apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Course:       apiHandler.NewCourseHandler(courseUseCase, ctxAdapter, zapLogger),
		Order:        apiHandler.NewOrderHandler(orderUseCase, ctxAdapter, zapLogger),
		Notification: apiHandler.NewNotificationHandler(notificationUseCase, ctxAdapter, zapLogger),
		Layout:       apiHandler.NewLayoutHandler(layoutUseCase, ctxAdapter, zapLogger),
		Analytics:    apiHandler.NewAnalyticsHandler(analyticsUseCase, ctxAdapter, zapLogger),
		Health:       apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, authenticator)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
