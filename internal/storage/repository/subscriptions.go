package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// UpsertSubscriptionByCustomerID вставляет подписку или обновляет существующую
// запись этого покупателя. Ключ идемпотентности — stripe_customer_id, поэтому
// повторная доставка события checkout.session.completed не плодит записей.
func (s *Storage) UpsertSubscriptionByCustomerID(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.UpsertSubscriptionByCustomerID"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, stripe_customer_id, stripe_subscription_id,
			      stripe_price_id, stripe_current_period_end, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (stripe_customer_id) DO UPDATE
			  SET stripe_subscription_id = EXCLUDED.stripe_subscription_id,
			      stripe_price_id = EXCLUDED.stripe_price_id,
			      stripe_current_period_end = EXCLUDED.stripe_current_period_end,
			      status = EXCLUDED.status
			  RETURNING id`
	var id int
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserUID, sub.StripeCustomerID, sub.StripeSubscriptionID,
		sub.StripePriceID, sub.CurrentPeriodEnd, sub.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateSubscriptionBySubscriptionID обновляет цену, конец периода и статус
// по stripe_subscription_id. Возвращает user_uid владельца записи, чтобы
// вызывающий мог инвалидировать его кеш доступа, либо
// ErrSubscriptionNotFound, если записи нет.
func (s *Storage) UpdateSubscriptionBySubscriptionID(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.UpdateSubscriptionBySubscriptionID"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET stripe_price_id = $1, stripe_current_period_end = $2, status = $3
			  WHERE stripe_subscription_id = $4
			  RETURNING user_uid`
	var userUID string
	err := s.DB.QueryRowContext(ctx, query,
		sub.StripePriceID, sub.CurrentPeriodEnd, sub.Status, sub.StripeSubscriptionID).Scan(&userUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return userUID, nil
}

// UpdateSubscriptionStatus обновляет только статус подписки по
// stripe_subscription_id. Используется для события отмены. Возвращает
// user_uid владельца записи.
func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, stripeSubscriptionID, status string) (string, error) {
	const op = "storage.UpdateSubscriptionStatus"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET status = $1
			  WHERE stripe_subscription_id = $2
			  RETURNING user_uid`
	var userUID string
	err := s.DB.QueryRowContext(ctx, query, status, stripeSubscriptionID).Scan(&userUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return userUID, nil
}

// GetLatestActiveSubscription возвращает последнюю созданную активную
// подписку пользователя или nil, если активных нет.
func (s *Storage) GetLatestActiveSubscription(ctx context.Context, userUID string) (*models.Subscription, error) {
	const op = "storage.GetLatestActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, stripe_customer_id, stripe_subscription_id,
			      stripe_price_id, stripe_current_period_end, status, created_at
			  FROM subscriptions
			  WHERE user_uid = $1 AND status = $2
			  ORDER BY created_at DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userUID, models.SubscriptionActive)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает все подписки пользователя, новые первыми.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, stripe_customer_id, stripe_subscription_id,
			      stripe_price_id, stripe_current_period_end, status, created_at
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var sub models.Subscription
	var periodEnd sql.NullTime
	if err := row.Scan(&sub.ID, &sub.UserUID, &sub.StripeCustomerID,
		&sub.StripeSubscriptionID, &sub.StripePriceID, &periodEnd,
		&sub.Status, &sub.CreatedAt); err != nil {
		return nil, err
	}
	if periodEnd.Valid {
		sub.CurrentPeriodEnd = &periodEnd.Time
	}
	return &sub, nil
}
