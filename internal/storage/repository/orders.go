package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// CreateOrder записывает разовый платёж. Повторная доставка того же
// payment_intent молча игнорируется за счёт ON CONFLICT DO NOTHING.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) error {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO orders (user_uid, stripe_payment_intent_id, amount, currency,
			      status, description)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (stripe_payment_intent_id) DO NOTHING`
	_, err := s.DB.ExecContext(ctx, query,
		order.UserUID, order.StripePaymentIntentID, order.Amount, order.Currency,
		order.Status, order.Description)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListOrders возвращает платежи пользователя, новые первыми.
func (s *Storage) ListOrders(ctx context.Context, userUID string) ([]*models.Order, error) {
	const op = "storage.ListOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, stripe_payment_intent_id, amount, currency,
			      status, description, created_at
			  FROM orders
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		var order models.Order
		var description sql.NullString
		if err := rows.Scan(&order.ID, &order.UserUID, &order.StripePaymentIntentID,
			&order.Amount, &order.Currency, &order.Status, &description,
			&order.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if description.Valid {
			order.Description = description.String
		}
		result = append(result, &order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
