package models

import "time"

// Subscription представляет подписку Stripe, привязанную к пользователю.
// Запись создаётся upsert-ом по stripe_customer_id при завершении checkout
// и обновляется по stripe_subscription_id при событиях продления и отмены.
// CurrentPeriodEnd может быть nil, если провайдер его не прислал.
type Subscription struct {
	ID                   int
	UserUID              string
	StripeCustomerID     string
	StripeSubscriptionID string
	StripePriceID        string
	CurrentPeriodEnd     *time.Time
	Status               string // active, canceled, past_due и др., как присылает провайдер
	CreatedAt            time.Time
}

// SubscriptionActive статус подписки, дающий доступ к учебным материалам.
const SubscriptionActive = "active"

// Order представляет разовый платёж. Создаётся один раз на событие
// payment_intent.succeeded и никогда не изменяется. Отдаётся наружу
// в истории платежей, поэтому владелец в JSON не попадает.
type Order struct {
	ID                    int       `json:"id"`
	UserUID               string    `json:"-"`
	StripePaymentIntentID string    `json:"stripe_payment_intent_id"`
	Amount                int64     `json:"amount"` // Сумма в минимальных единицах валюты
	Currency              string    `json:"currency"`
	Status                string    `json:"status"`
	Description           string    `json:"description,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}
