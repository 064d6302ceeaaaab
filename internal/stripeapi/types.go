// Package stripeapi реализует минимальный REST-клиент Stripe и проверку
// подписи вебхуков. Покрывает только операции, нужные приложению:
// создание покупателя, создание checkout-сессии и чтение подписки.
package stripeapi

import "encoding/json"

// Customer покупатель Stripe.
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CheckoutSession сессия оплаты Stripe Checkout.
type CheckoutSession struct {
	ID           string            `json:"id"`
	URL          string            `json:"url"`
	Mode         string            `json:"mode"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

// Subscription подписка Stripe. CurrentPeriodEnd — unix-время.
type Subscription struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Items            struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// PaymentIntent разовый платёж Stripe.
type PaymentIntent struct {
	ID          string            `json:"id"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Status      string            `json:"status"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

// Event вебхук-событие Stripe. Data.Object разбирается получателем
// в зависимости от типа события.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// Типы событий, которые обрабатывает приложение. Остальные принимаются
// и игнорируются.
const (
	EventCheckoutSessionCompleted    = "checkout.session.completed"
	EventCustomerSubscriptionUpdated = "customer.subscription.updated"
	EventCustomerSubscriptionDeleted = "customer.subscription.deleted"
	EventPaymentIntentSucceeded      = "payment_intent.succeeded"
)
