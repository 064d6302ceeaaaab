// Package result реализует HTTP-обработчики сохранения и чтения
// результатов тестов.
package result

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/response"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/services/progress"
)

// defaultLimit размер страницы списка результатов по умолчанию.
const defaultLimit = 20

// Request структура запроса на сохранение результата теста.
type Request struct {
	LessonID   string                   `json:"lesson_id" validate:"required"`
	Answers    []models.SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
	StartedAt  time.Time                `json:"started_at"`
	FinishedAt time.Time                `json:"finished_at"`
}

// Service описывает интерфейс бизнес-логики результатов.
type Service interface {
	Submit(ctx context.Context, userUID string, submission progress.Submission) (*models.TestResult, error)
	List(ctx context.Context, userUID string, limit, offset int) ([]*models.TestResult, error)
}

// Handler обрабатывает запросы результатов тестов.
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

// Submit подсчитывает и сохраняет результат пройденного теста.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.hsk.result.Submit"
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

	result, err := h.service.Submit(r.Context(), userUID, progress.Submission{
		LessonID:   req.LessonID,
		Answers:    req.Answers,
		StartedAt:  req.StartedAt,
		FinishedAt: req.FinishedAt,
	})
	if err != nil {
		log.Error("failed to save test result", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save test result"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(result))
}

// List возвращает прошлые результаты текущего пользователя.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.hsk.result.List"
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

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	results, err := h.service.List(r.Context(), userUID, limit, offset)
	if err != nil {
		log.Error("failed to list test results", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list test results"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(results))
}
