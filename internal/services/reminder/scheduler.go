// Package reminder находит пользователей с истекающим сегодня пробным
// периодом и публикует уведомления в RabbitMQ для последующей отправки.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/rabbitmq"
)

// Repository определяет поиск пользователей для напоминаний.
type Repository interface {
	FindTrialEndingToday(ctx context.Context) ([]*models.User, error)
}

// TrialExpiringMessage сообщение очереди trial_expiring.
type TrialExpiringMessage struct {
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	TrialEndsAt time.Time `json:"trial_ends_at"`
}

// SchedulerService раз в сутки публикует напоминания об окончании
// пробного периода.
type SchedulerService struct {
	repo Repository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo Repository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// Run выполняет поиск сразу и затем каждые 24 часа, пока не отменён контекст.
func (s *SchedulerService) Run(ctx context.Context, channel *amqp.Channel) {
	s.publishExpiringTrials(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.publishExpiringTrials(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) publishExpiringTrials(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting search for trials expiring today")
	users, err := s.repo.FindTrialEndingToday(ctx)
	if err != nil {
		s.log.Error("failed to find users", sl.Err(err))
		return
	}
	if len(users) == 0 {
		s.log.Info("no expiring trials found")
		return
	}
	s.log.Info("found expiring trials", "count", len(users))
	for _, user := range users {
		message := TrialExpiringMessage{
			Email:       user.Email,
			Username:    user.Username,
			TrialEndsAt: user.TrialEndsAt,
		}
		err = rabbitmq.PublishMessage(channel, rabbitmq.ReminderExchange, rabbitmq.TrialExpiringQueue, message)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
