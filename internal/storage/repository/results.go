package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// SaveTestResult сохраняет результат теста и возвращает его ID.
func (s *Storage) SaveTestResult(ctx context.Context, result models.TestResult) (int, error) {
	const op = "storage.SaveTestResult"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO test_results (user_uid, lesson_id, score, total_questions,
			      correct_answers, time_spent_seconds)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var id int
	err := s.DB.QueryRowContext(ctx, query,
		result.UserUID, result.LessonID, result.Score, result.TotalQuestions,
		result.CorrectAnswers, result.TimeSpentSeconds).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListTestResults возвращает результаты тестов пользователя, новые первыми.
func (s *Storage) ListTestResults(ctx context.Context, userUID string, limit, offset int) ([]*models.TestResult, error) {
	const op = "storage.ListTestResults"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, lesson_id, score, total_questions,
			      correct_answers, time_spent_seconds, created_at
			  FROM test_results
			  WHERE user_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TestResult
	for rows.Next() {
		var item models.TestResult
		if err := rows.Scan(&item.ID, &item.UserUID, &item.LessonID, &item.Score,
			&item.TotalQuestions, &item.CorrectAnswers, &item.TimeSpentSeconds,
			&item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
