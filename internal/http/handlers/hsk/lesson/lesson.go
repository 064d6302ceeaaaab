// Package lesson реализует HTTP-обработчик получения урока HSK по идентификатору.
package lesson

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/response"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/hsk"
)

// Handler отдает урок со словами.
type Handler struct{}

// New создает новый Handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")
	lesson := hsk.LessonByID(lessonID)
	if lesson == nil {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("lesson not found"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(lesson))
}
