// Package levels реализует HTTP-обработчик списка уровней HSK.
package levels

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/response"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/hsk"
)

// Handler отдает учебную программу HSK. Данные статичны,
// поэтому обработчику не нужен сервис.
type Handler struct{}

// New создает новый Handler.
func New() *Handler {
	return &Handler{}
}

// List возвращает все уровни с уроками.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(hsk.Levels))
}

// Get возвращает один уровень по номеру из URL.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid level number"))
		return
	}

	level := hsk.LevelByNumber(number)
	if level == nil {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("level not found"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(level))
}
