// Package webhook реализует HTTP-обработчик вебхуков Stripe.
//
// Тело запроса читается целиком и проверяется по заголовку
// Stripe-Signature до любой обработки. Событие с невалидной подписью
// отклоняется с кодом 400 и не попадает в бизнес-логику.
package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/response"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/stripeapi"
)

// maxBodySize ограничивает размер тела вебхука.
const maxBodySize = 1 << 20

// Service описывает интерфейс обработки вебхук-событий.
type Service interface {
	ProcessEvent(ctx context.Context, event *stripeapi.Event) error
}

// Handler обрабатывает вебхуки Stripe.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string
	now           func() time.Time
}

// New создает новый Handler с переданными логгером, сервисом и секретом подписи.
func New(log *slog.Logger, service Service, webhookSecret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	event, err := stripeapi.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret, h.now())
	if err != nil {
		if errors.Is(err, stripeapi.ErrInvalidSignature) {
			log.Warn("webhook signature verification failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid signature"))
			return
		}
		log.Error("failed to parse webhook event", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid payload"))
		return
	}

	log.Info("webhook event received",
		slog.String("event_id", event.ID), slog.String("event_type", event.Type))

	if err := h.service.ProcessEvent(r.Context(), event); err != nil {
		log.Error("failed to process webhook event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("processing failed"))
		return
	}

	render.JSON(w, r, map[string]bool{"received": true})
}
