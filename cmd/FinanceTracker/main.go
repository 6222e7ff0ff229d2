package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/backend"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/logger"
	"github.com/sebuszqo/FinanceTracker/internal/response"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/sebuszqo/FinanceTracker/internal/web"
	assets "github.com/sebuszqo/FinanceTracker/web"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogLevel, cfg.LogPretty)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := backend.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Cleanup(); err != nil {
			log.Error().Err(err).Msg("Error releasing backend")
		}
	}()

	server, authService, err := buildServer(cfg, store)
	if err != nil {
		return err
	}

	scheduler := cron.New()
	if _, err := auth.ScheduleSessionCleanup(scheduler, cfg.SessionCleanupSchedule, authService); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        logger.Middleware(server.Handler()),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("backend", store.Name).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Server stopped gracefully")
	return nil
}

func buildServer(cfg *config.Config, store *backend.Backend) (*Server, auth.Service, error) {
	jwtManager, err := auth.NewJWTManager(cfg.SessionSecret)
	if err != nil {
		return nil, nil, err
	}

	userService := user.NewUserService(store.Users, cfg.BcryptCost)
	userHandler := user.NewHandler(userService, response.JSON, response.Error)

	authService := auth.NewAuthService(userService, auth.NewSessionManager(), jwtManager, cfg.SessionTTL)
	authHandler := auth.NewHandler(authService, cfg.SessionCookieSecure, response.JSON, response.Error)

	categoryService := application.NewCategoryService(infrastructure.NewStaticCategoryRepository(cfg.ExpenseCategories))
	categoryHandler := interfaces.NewCategoryHandler(categoryService, response.JSON, response.Error)

	transactionService := application.NewTransactionService(store.Transactions, categoryService)
	transactionHandler := interfaces.NewPersonalTransactionHandler(transactionService, cfg.RecentLimit, response.JSON, response.Error)

	pageHandler, err := web.NewHandler(assets.TemplatesFS, transactionService, categoryService, cfg.RecentLimit)
	if err != nil {
		return nil, nil, err
	}

	server := NewServer(authHandler, authService, userHandler, transactionHandler, categoryHandler, pageHandler, assets.StaticFS, store.Health)
	server.RegisterRoutes()
	return server, authService, nil
}
