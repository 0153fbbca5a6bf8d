package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dealflow_backend/database"
	"dealflow_backend/internal/algorithms"
	"dealflow_backend/internal/auth"
	"dealflow_backend/internal/config"
	"dealflow_backend/internal/email"
	"dealflow_backend/internal/handlers"
	"dealflow_backend/internal/logger"
	"dealflow_backend/internal/middleware"
	"dealflow_backend/internal/routes"
	"dealflow_backend/internal/services"
	"dealflow_backend/internal/validator"
	"dealflow_backend/pkg/apperrors"
	"dealflow_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Overrides подменяют внешние зависимости (тесты, локальный запуск)
type Overrides struct {
	Email email.Provider
	Clock services.Clock
}

// App - собранное приложение: роутер, сервисы и менеджер websocket
type App struct {
	Router    *gin.Engine
	Services  *services.ServiceContainer
	WSManager *ws.WebSocketManager
	Tokens    *auth.TokenManager
}

// Run подключается к БД, при необходимости мигрирует схему и держит HTTP-сервер
// до SIGINT/SIGTERM.
func Run(cfg *config.Config, migrate bool) error {
	logger.InitWithLevel(cfg.Server.Env, cfg.Server.LogLevel)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Open(database.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Env:    cfg.Server.Env,
	})
	if err != nil {
		return err
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if migrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := SetupRouter(ctx, cfg, gormDB, Overrides{})
	if err != nil {
		return err
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server startup error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("Server stopped")
	return nil
}

// SetupRouter собирает сервисы, хэндлеры и маршруты. Менеджер websocket
// работает до отмены ctx.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, overrides Overrides) (*App, error) {
	apperrors.SetDebug(cfg.Server.Env != "production")
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokens: %w", err)
	}

	wsManager := ws.NewWebSocketManager()
	go wsManager.Run(ctx)

	// 1. Сервисы
	serviceContainer, err := initializeServices(cfg, wsManager, overrides)
	if err != nil {
		return nil, err
	}

	// 2. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer)
	wsHandler := ws.NewWebSocketHandler(wsManager, serviceContainer.MessagingService)

	// 3. Gin
	ginRouter := initializeGinRouter(gormDB, cfg.Server.AllowedOrigins)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, middleware.AuthMiddleware(tokens), gormDB)

	return &App{
		Router:    ginRouter,
		Services:  serviceContainer,
		WSManager: wsManager,
		Tokens:    tokens,
	}, nil
}

func initializeServices(cfg *config.Config, realtime services.RealtimeNotifier, overrides Overrides) (*services.ServiceContainer, error) {
	mailer := overrides.Email
	if mailer == nil {
		templates, err := email.NewDefaultTemplates()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}
		mailer = email.NewProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		}, templates)
		if cfg.Email.SMTPHost == "" {
			logger.Warn("SMTP host is not set, emails are only logged")
		}
	}

	placeholders := cfg.Matching.Placeholders
	scorer := algorithms.NewScorer(algorithms.Placeholders{
		Geography:  placeholders.Geography,
		Culture:    placeholders.Culture,
		Reputation: placeholders.Reputation,
		Timing:     placeholders.Timing,
	})

	return services.NewServiceContainer(services.Dependencies{
		Scorer:   scorer,
		Email:    mailer,
		Realtime: realtime,
		Quota: services.QuotaConfig{
			StartupDaily:  cfg.Matching.StartupDailySwipes,
			InvestorDaily: cfg.Matching.InvestorDailySwipes,
		},
		Clock: overrides.Clock,
	}), nil
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, services.ProfileService),
		MatchingHandler:     handlers.NewMatchingHandler(baseHandler, services.MatchingService),
		ConversationHandler: handlers.NewConversationHandler(baseHandler, services.MessagingService),
	}
}

func initializeGinRouter(db *gorm.DB, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
