// Package quiz реализует HTTP-обработчик генерации теста по уроку.
package quiz

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/response"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/hsk"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
	quizsvc "github.com/magabrotheeeer/hsk-learning-platform/internal/services/quiz"
)

// Service описывает интерфейс генератора тестов.
type Service interface {
	Generate(lesson *models.HSKLesson) ([]models.QuizQuestion, error)
}

// Handler обрабатывает запросы генерации теста.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и генератором.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP генерирует вопросы теста для урока из URL.
//
// @Summary Сгенерировать тест по уроку
// @Security BearerAuth
// @Tags hsk
// @Produce json
// @Param lessonID path string true "Идентификатор урока"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /hsk/lessons/{lessonID}/quiz [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.hsk.quiz"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	lessonID := chi.URLParam(r, "lessonID")
	lesson := hsk.LessonByID(lessonID)
	if lesson == nil {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("lesson not found"))
		return
	}

	questions, err := h.service.Generate(lesson)
	if err != nil {
		if errors.Is(err, quizsvc.ErrLessonTooSmall) {
			log.Info("lesson too small for quiz", slog.String("lesson_id", lessonID))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("lesson has too few words for a quiz"))
			return
		}
		log.Error("failed to generate quiz", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate quiz"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"lesson_id": lessonID,
		"questions": questions,
	}))
}
