// Package checkout реализует HTTP-обработчик создания checkout-сессии Stripe.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/response"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/services/billing"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/storage/repository"
)

// Request структура запроса на создание checkout-сессии.
type Request struct {
	PriceID    string `json:"price_id" validate:"required"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// Service описывает интерфейс бизнес-логики оплаты.
type Service interface {
	CreateCheckout(ctx context.Context, userUID, priceID, successURL, cancelURL string) (*billing.CheckoutResult, error)
}

// Handler обрабатывает запросы на создание checkout-сессии.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP создает checkout-сессию Stripe для текущего пользователя.
//
// @Summary Создать checkout-сессию подписки
// @Security BearerAuth
// @Tags billing
// @Accept json
// @Produce json
// @Param data body Request true "Параметры сессии"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /billing/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.checkout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.CreateCheckout(r.Context(), userUID, req.PriceID, req.SuccessURL, req.CancelURL)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Error("user not found", slog.String("user_uid", userUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create checkout session"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(result))
}
