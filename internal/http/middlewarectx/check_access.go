package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/response"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/storage/repository"
)

// AccessService определяет интерфейс вычисления статуса доступа.
type AccessService interface {
	Status(ctx context.Context, userUID string) (*models.AccessStatus, error)
}

// AccessMiddleware создает middleware, пропускающее к учебным материалам
// только пользователей с активным пробным периодом или подпиской.
func AccessMiddleware(log *slog.Logger, accessService AccessService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			status, err := accessService.Status(r.Context(), userUID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					log.Error("user not found", sl.Err(err))
					w.WriteHeader(http.StatusNotFound)
					render.JSON(w, r, response.Error("user not found"))
					return
				}
				log.Error("failed to get access status", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !status.HasAccess {
				log.Info("access denied, subscription required")
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("subscription required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
