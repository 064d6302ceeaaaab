// Package models содержит доменные структуры приложения: пользователей,
// подписки Stripe, разовые платежи, словарь HSK и производные объекты
// (статус доступа, вопросы теста, результаты).
package models

import "time"

// User представляет зарегистрированного пользователя платформы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	Name         string    // Отображаемое имя
	PasswordHash string    // Хэш пароля пользователя
	TrialEndsAt  time.Time // Дата истечения пробного периода
	CreatedAt    time.Time
}
