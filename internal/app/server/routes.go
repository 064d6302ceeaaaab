// Package server собирает HTTP-приложение платформы: маршруты,
// middleware и жизненный цикл сервера.
package server

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/billing/checkout"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/billing/orders"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/billing/webhook"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/hsk/lesson"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/hsk/levels"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/hsk/quiz"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/hsk/result"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/handlers/translate"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/storage/repository"

	accessservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/access"
	authservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/auth"
	billingservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/billing"
	progressservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/progress"
	quizservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/quiz"
	translateservice "github.com/magabrotheeeer/hsk-learning-platform/internal/services/translate"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	db *repository.Storage,
	jwtMaker jwt.Maker,
	authService *authservice.Service,
	accessService *accessservice.Service,
	billingService *billingservice.Service,
	quizGenerator *quizservice.Generator,
	progressService *progressservice.Service,
	translateGateway *translateservice.Gateway,
	webhookSecret string,
	limiter *rate.Limiter,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией: статус доступа и оплата
		// доступны и без активной подписки.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Get("/subscription/status", status.New(logger, accessService).ServeHTTP)
			r.Post("/billing/checkout", checkout.New(logger, billingService).ServeHTTP)
			r.Get("/billing/orders", orders.New(logger, billingService).ServeHTTP)
		})

		// Группа учебного контента: пробный период или подписка обязательны.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.AccessMiddleware(logger, accessService))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Get("/hsk/levels", levels.New().List)
			r.Get("/hsk/levels/{level}", levels.New().Get)
			r.Get("/hsk/lessons/{lessonID}", lesson.New().ServeHTTP)
			r.Get("/hsk/lessons/{lessonID}/quiz", quiz.New(logger, quizGenerator).ServeHTTP)
			r.Post("/hsk/results", result.New(logger, progressService).Submit)
			r.Get("/hsk/results", result.New(logger, progressService).List)
			r.Post("/translate", translate.New(logger, translateGateway).ServeHTTP)
		})

		// Webhook endpoint (без аутентификации)
		r.Post("/billing/webhook", webhook.New(logger, billingService, webhookSecret).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
