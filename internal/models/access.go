package models

import "time"

// AccessStatus производное значение, не хранится в базе. Пересчитывается
// на каждый запрос статуса из данных пользователя и его подписок.
type AccessStatus struct {
	HasAccess            bool       `json:"has_access"`
	IsTrialActive        bool       `json:"is_trial_active"`
	IsSubscriptionActive bool       `json:"is_subscription_active"`
	TrialEndsAt          *time.Time `json:"trial_ends_at,omitempty"`
	SubscriptionEndsAt   *time.Time `json:"subscription_ends_at,omitempty"`
	DaysLeft             *int       `json:"days_left,omitempty"`
}
