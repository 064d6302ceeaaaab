// Package billing содержит бизнес-логику оплаты: создание checkout-сессии
// и обработку вебхук-событий Stripe. Каждое событие — идемпотентная
// мутация по внешнему идентификатору провайдера; повторная доставка
// безопасна. Конкурентные доставки по одной подписке применяются по
// принципу last-write-wins, без токена упорядочивания.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/services/access"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/stripeapi"
)

// Repository определяет мутации хранилища, которыми управляют события оплаты.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error)
	UpsertSubscriptionByCustomerID(ctx context.Context, sub models.Subscription) (int, error)
	UpdateSubscriptionBySubscriptionID(ctx context.Context, sub models.Subscription) (string, error)
	UpdateSubscriptionStatus(ctx context.Context, stripeSubscriptionID, status string) (string, error)
	CreateOrder(ctx context.Context, order models.Order) error
	ListOrders(ctx context.Context, userUID string) ([]*models.Order, error)
}

// StripeClient операции Stripe API, нужные сервису.
type StripeClient interface {
	CreateCustomer(ctx context.Context, email, name string) (*stripeapi.Customer, error)
	CreateCheckoutSession(ctx context.Context, params stripeapi.CheckoutSessionParams) (*stripeapi.CheckoutSession, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*stripeapi.Subscription, error)
}

// Cache кеш статуса доступа, инвалидируется мутациями подписок.
type Cache interface {
	Invalidate(ctx context.Context, key string) error
}

// Service реализует логику оплаты.
type Service struct {
	repo              Repository
	stripe            StripeClient
	cache             Cache
	log               *slog.Logger
	defaultSuccessURL string
	defaultCancelURL  string
}

// New создает новый Service.
func New(repo Repository, stripe StripeClient, cache Cache, log *slog.Logger, defaultSuccessURL, defaultCancelURL string) *Service {
	return &Service{
		repo:              repo,
		stripe:            stripe,
		cache:             cache,
		log:               log,
		defaultSuccessURL: defaultSuccessURL,
		defaultCancelURL:  defaultCancelURL,
	}
}

// CheckoutResult результат создания checkout-сессии.
type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateCheckout создаёт checkout-сессию для пользователя. Существующий
// stripe customer переиспользуется из любой его подписки, иначе покупатель
// создаётся заново.
func (s *Service) CreateCheckout(ctx context.Context, userUID, priceID, successURL, cancelURL string) (*CheckoutResult, error) {
	const op = "billing.CreateCheckout"

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	subs, err := s.repo.ListSubscriptions(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var customerID string
	for _, sub := range subs {
		if sub.StripeCustomerID != "" {
			customerID = sub.StripeCustomerID
			break
		}
	}
	if customerID == "" {
		customer, err := s.stripe.CreateCustomer(ctx, user.Email, user.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		customerID = customer.ID
	}

	if successURL == "" {
		successURL = s.defaultSuccessURL
	}
	if cancelURL == "" {
		cancelURL = s.defaultCancelURL
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, stripeapi.CheckoutSessionParams{
		CustomerID: customerID,
		PriceID:    priceID,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		UserUID:    userUID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("checkout session created",
		slog.String("session_id", session.ID), slog.String("user_uid", userUID))
	return &CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

// ListOrders возвращает историю разовых платежей пользователя.
func (s *Service) ListOrders(ctx context.Context, userUID string) ([]*models.Order, error) {
	const op = "billing.ListOrders"

	orders, err := s.repo.ListOrders(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// ProcessEvent применяет проверенное вебхук-событие к хранилищу.
// Нераспознанные типы событий принимаются и игнорируются.
func (s *Service) ProcessEvent(ctx context.Context, event *stripeapi.Event) error {
	const op = "billing.ProcessEvent"

	switch event.Type {
	case stripeapi.EventCheckoutSessionCompleted:
		return s.handleCheckoutCompleted(ctx, event)
	case stripeapi.EventCustomerSubscriptionUpdated:
		return s.handleSubscriptionUpdated(ctx, event)
	case stripeapi.EventCustomerSubscriptionDeleted:
		return s.handleSubscriptionDeleted(ctx, event)
	case stripeapi.EventPaymentIntentSucceeded:
		return s.handlePaymentSucceeded(ctx, event)
	default:
		s.log.Info("ignored webhook event", slog.String("event", event.Type))
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, event *stripeapi.Event) error {
	const op = "billing.handleCheckoutCompleted"

	var session stripeapi.CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if session.Mode != "subscription" {
		s.log.Info("skipping non-subscription checkout", slog.String("session_id", session.ID))
		return nil
	}

	sub, err := s.stripe.GetSubscription(ctx, session.Subscription)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	entry := models.Subscription{
		UserUID:              session.Metadata["user_uid"],
		StripeCustomerID:     session.Customer,
		StripeSubscriptionID: sub.ID,
		StripePriceID:        firstPriceID(sub),
		CurrentPeriodEnd:     &periodEnd,
		Status:               sub.Status,
	}
	id, err := s.repo.UpsertSubscriptionByCustomerID(ctx, entry)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateAccess(ctx, entry.UserUID)
	s.log.Info("subscription upserted",
		slog.Int("id", id), slog.String("customer_id", session.Customer))
	return nil
}

func (s *Service) handleSubscriptionUpdated(ctx context.Context, event *stripeapi.Event) error {
	const op = "billing.handleSubscriptionUpdated"

	var sub stripeapi.Subscription
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	userUID, err := s.repo.UpdateSubscriptionBySubscriptionID(ctx, models.Subscription{
		StripeSubscriptionID: sub.ID,
		StripePriceID:        firstPriceID(&sub),
		CurrentPeriodEnd:     &periodEnd,
		Status:               sub.Status,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateAccess(ctx, userUID)
	s.log.Info("subscription updated",
		slog.String("subscription_id", sub.ID), slog.String("status", sub.Status))
	return nil
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, event *stripeapi.Event) error {
	const op = "billing.handleSubscriptionDeleted"

	var sub stripeapi.Subscription
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	userUID, err := s.repo.UpdateSubscriptionStatus(ctx, sub.ID, sub.Status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateAccess(ctx, userUID)
	s.log.Info("subscription canceled", slog.String("subscription_id", sub.ID))
	return nil
}

func (s *Service) handlePaymentSucceeded(ctx context.Context, event *stripeapi.Event) error {
	const op = "billing.handlePaymentSucceeded"

	var intent stripeapi.PaymentIntent
	if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	userUID := intent.Metadata["user_uid"]
	if userUID == "" {
		s.log.Info("payment intent without user metadata, skipping",
			slog.String("payment_intent_id", intent.ID))
		return nil
	}

	err := s.repo.CreateOrder(ctx, models.Order{
		UserUID:               userUID,
		StripePaymentIntentID: intent.ID,
		Amount:                intent.Amount,
		Currency:              intent.Currency,
		Status:                intent.Status,
		Description:           intent.Description,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("order recorded", slog.String("payment_intent_id", intent.ID))
	return nil
}

func (s *Service) invalidateAccess(ctx context.Context, userUID string) {
	if userUID == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, access.CacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate access cache", sl.Err(err))
	}
}

func firstPriceID(sub *stripeapi.Subscription) string {
	if len(sub.Items.Data) == 0 {
		return ""
	}
	return sub.Items.Data[0].Price.ID
}
