package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/cache"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/config"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/migrations"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/storage/repository"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/stripeapi"

	accessservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/access"
	authservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/auth"
	billingservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/billing"
	progressservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/progress"
	quizservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/quiz"
	translateservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/translate"
)

// App HTTP-приложение платформы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает все зависимости приложения из конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	stripeClient := stripeapi.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.APIURL)

	authService := authservice.New(db, jwtMaker, logger)
	accessService := accessservice.New(db, cacheRedis, logger, time.Now)
	billingService := billingservice.New(db, stripeClient, cacheRedis, logger,
		cfg.Stripe.DefaultSuccessURL, cfg.Stripe.DefaultCancelURL)
	quizGenerator := quizservice.NewGenerator(quizservice.LockedRand{})
	progressService := progressservice.New(db, logger)
	translateGateway := translateservice.New(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, logger)

	limiter := rate.NewLimiter(rate.Limit(20), 40)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, jwtMaker,
		authService, accessService, billingService,
		quizGenerator, progressService, translateGateway,
		cfg.Stripe.WebhookSecret, limiter)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
