// Package orders реализует HTTP-обработчик истории платежей пользователя.
package orders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/response"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// Service описывает интерфейс чтения истории платежей.
type Service interface {
	ListOrders(ctx context.Context, userUID string) ([]*models.Order, error)
}

// Handler обрабатывает запросы истории платежей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает платежи текущего пользователя, новые первыми.
//
// @Summary История платежей
// @Security BearerAuth
// @Tags billing
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /billing/orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.orders"
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

	orders, err := h.service.ListOrders(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list orders"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(orders))
}
