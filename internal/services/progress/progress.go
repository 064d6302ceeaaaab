// Package progress считает и сохраняет результаты тестов по урокам.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/services/quiz"
)

// Repository определяет методы хранения результатов.
type Repository interface {
	SaveTestResult(ctx context.Context, result models.TestResult) (int, error)
	ListTestResults(ctx context.Context, userUID string, limit, offset int) ([]*models.TestResult, error)
}

// Service сохраняет результаты тестов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Submission присланные с фронтенда ответы одной сессии теста.
type Submission struct {
	LessonID   string
	Answers    []models.SubmittedAnswer
	StartedAt  time.Time
	FinishedAt time.Time
}

// Submit подсчитывает результат: ответ засчитывается при строковом
// равенстве с правильным, счёт — процент с округлением до целого,
// затраченное время — разница часов с округлением до целых секунд.
func (s *Service) Submit(ctx context.Context, userUID string, submission Submission) (*models.TestResult, error) {
	const op = "progress.Submit"

	correct := 0
	for _, answer := range submission.Answers {
		if answer.Answer == answer.CorrectAnswer {
			correct++
		}
	}
	total := len(submission.Answers)

	timeSpent := 0
	if !submission.StartedAt.IsZero() && submission.FinishedAt.After(submission.StartedAt) {
		timeSpent = int(math.Round(submission.FinishedAt.Sub(submission.StartedAt).Seconds()))
	}

	result := models.TestResult{
		UserUID:          userUID,
		LessonID:         submission.LessonID,
		Score:            quiz.Score(correct, total),
		TotalQuestions:   total,
		CorrectAnswers:   correct,
		TimeSpentSeconds: timeSpent,
	}

	id, err := s.repo.SaveTestResult(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result.ID = id

	s.log.Info("test result saved",
		slog.Int("id", id), slog.String("lesson_id", submission.LessonID), slog.Int("score", result.Score))
	return &result, nil
}

// List возвращает прошлые результаты пользователя.
func (s *Service) List(ctx context.Context, userUID string, limit, offset int) ([]*models.TestResult, error) {
	return s.repo.ListTestResults(ctx, userUID, limit, offset)
}
