package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/lead-discovery/internal/auth"
	"github.com/octobees/lead-discovery/internal/config"
	"github.com/octobees/lead-discovery/internal/discovery"
	"github.com/octobees/lead-discovery/internal/handler"
	middlewarepkg "github.com/octobees/lead-discovery/internal/middleware"
	"github.com/octobees/lead-discovery/internal/router"
	"github.com/octobees/lead-discovery/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := config.InitLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := discovery.NewGeminiClient(ctx, cfg.Discovery.APIKey,
		discovery.WithModel(cfg.Discovery.Model),
		discovery.WithGrounding(cfg.Discovery.Grounding),
		discovery.WithTimeout(cfg.Discovery.Timeout),
		discovery.WithLogger(logger.Named("discovery")),
	)
	if err != nil {
		logger.Fatal("failed to create discovery client", zap.Error(err))
	}
	if !client.Configured() {
		logger.Warn("API_KEY is not set; searches will return no leads")
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	operators := service.NewStaticOperators(service.Operator{
		Email:        cfg.Operator.Email,
		PasswordHash: cfg.Operator.PasswordHash,
		Role:         cfg.Operator.Role,
	})
	if operators.Len() == 0 {
		logger.Warn("no operator configured; set OPERATOR_EMAIL and OPERATOR_PASSWORD_HASH to enable login")
	}

	leadsService := service.NewLeadsService(client,
		service.WithLeadsLogger(logger.Named("leads")),
		service.WithDefaultLocation(cfg.Discovery.DefaultLocation),
		service.WithPhoneRegion(cfg.Discovery.PhoneRegion),
		service.WithSocialWebsiteCheck(cfg.Discovery.SocialWebsiteCheck),
	)
	authService := service.NewAuthService(operators, jwtManager)
	promptService := service.NewPromptService(leadsService.DefaultLocation())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger.Named("http")))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		Leads: handler.NewLeadsHandler(leadsService, promptService, logger.Named("http")),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port), zap.String("model", cfg.Discovery.Model))
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.Stringer("signal", sig))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	// In-flight searches may run up to the discovery timeout.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Discovery.Timeout+5*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
