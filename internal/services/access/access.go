// Package access вычисляет статус доступа пользователя: пробный период
// или оплаченная подписка. Вычисление чистое и односпроходное, статус
// нигде не хранится — только короткий кеш, который инвалидируют вебхуки.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// Repository определяет методы чтения пользователя и его активной подписки.
type Repository interface {
	// GetUser возвращает пользователя по UID или ErrUserNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// GetLatestActiveSubscription возвращает последнюю созданную активную
	// подписку или nil.
	GetLatestActiveSubscription(ctx context.Context, userUID string) (*models.Subscription, error)
}

// Cache описывает методы для кеширования статуса доступа.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// cacheTTL статус доступа живёт в кеше недолго: после него свежий вебхук
// гарантированно виден в течение минуты даже без инвалидации.
const cacheTTL = time.Minute

// Service вычисляет статус доступа по данным хранилища.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// New создает новый Service. nowFn позволяет тестам зафиксировать время,
// nil означает time.Now.
func New(repo Repository, cache Cache, log *slog.Logger, nowFn func() time.Time) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   nowFn,
	}
}

// CacheKey ключ кеша статуса доступа пользователя.
func CacheKey(userUID string) string {
	return "access:" + userUID
}

// Status возвращает статус доступа пользователя. Ошибка ErrUserNotFound
// хранилища пробрасывается наверх, обработчик отвечает 404.
func (s *Service) Status(ctx context.Context, userUID string) (*models.AccessStatus, error) {
	const op = "access.Status"

	var cached models.AccessStatus
	found, err := s.cache.Get(ctx, CacheKey(userUID), &cached)
	if err != nil {
		s.log.Warn("failed to read access status from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub, err := s.repo.GetLatestActiveSubscription(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	status := Evaluate(user, sub, s.now())

	if err := s.cache.Set(ctx, CacheKey(userUID), status, cacheTTL); err != nil {
		s.log.Warn("failed to cache access status", sl.Err(err))
	}
	return status, nil
}

// Evaluate чистая функция вычисления статуса доступа на момент now.
//
// Правила:
//   - пробный период активен, пока now строго раньше trial_ends_at;
//   - подписка активна, если есть активная запись с непустым концом
//     периода строго позже now;
//   - daysLeft заполняется только когда активен пробный период и нет
//     подписки: округление вверх оставшихся целых суток, всегда >= 1.
func Evaluate(user *models.User, sub *models.Subscription, now time.Time) *models.AccessStatus {
	isTrialActive := now.Before(user.TrialEndsAt)
	isSubscriptionActive := sub != nil && sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.After(now)

	status := &models.AccessStatus{
		HasAccess:            isTrialActive || isSubscriptionActive,
		IsTrialActive:        isTrialActive,
		IsSubscriptionActive: isSubscriptionActive,
	}
	if !user.TrialEndsAt.IsZero() {
		trialEnds := user.TrialEndsAt
		status.TrialEndsAt = &trialEnds
	}
	if sub != nil && sub.CurrentPeriodEnd != nil {
		periodEnd := *sub.CurrentPeriodEnd
		status.SubscriptionEndsAt = &periodEnd
	}
	if isTrialActive && !isSubscriptionActive {
		daysLeft := int(math.Ceil(user.TrialEndsAt.Sub(now).Hours() / 24))
		status.DaysLeft = &daysLeft
	}
	return status
}
