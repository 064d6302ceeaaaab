package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/migrations"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// setupTestStorage поднимает контейнер PostgreSQL и накатывает миграции.
func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}

func createTestUser(t *testing.T, storage *Storage, trialEndsAt time.Time) string {
	t.Helper()
	uid, err := storage.CreateUser(context.Background(), models.User{
		UID:          uuid.New().String(),
		Email:        uuid.New().String() + "@example.com",
		Username:     "user" + uuid.New().String()[:8],
		Name:         "Test User",
		PasswordHash: "hashedpassword",
		TrialEndsAt:  trialEndsAt,
	})
	require.NoError(t, err)
	return uid
}

// TestUsers проверяет создание и чтение пользователей
func TestUsers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	trialEnds := time.Now().AddDate(0, 0, 7)

	uid := createTestUser(t, storage, trialEnds)

	user, err := storage.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, uid, user.UID)
	assert.Equal(t, "Test User", user.Name)
	assert.WithinDuration(t, trialEnds, user.TrialEndsAt, time.Second)

	byUsername, err := storage.GetUserByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, uid, byUsername.UID)

	_, err = storage.GetUser(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = storage.GetUserByUsername(ctx, "missing-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// TestSubscriptions проверяет идемпотентный upsert и обновления подписок
func TestSubscriptions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	uid := createTestUser(t, storage, time.Now().AddDate(0, 0, 7))

	periodEnd := time.Now().AddDate(0, 1, 0)
	sub := models.Subscription{
		UserUID:              uid,
		StripeCustomerID:     "cus_123",
		StripeSubscriptionID: "sub_123",
		StripePriceID:        "price_123",
		CurrentPeriodEnd:     &periodEnd,
		Status:               models.SubscriptionActive,
	}

	firstID, err := storage.UpsertSubscriptionByCustomerID(ctx, sub)
	require.NoError(t, err)

	// Повторный upsert того же покупателя не создаёт новой записи.
	secondID, err := storage.UpsertSubscriptionByCustomerID(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	subs, err := storage.ListSubscriptions(ctx, uid)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	active, err := storage.GetLatestActiveSubscription(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "sub_123", active.StripeSubscriptionID)
	require.NotNil(t, active.CurrentPeriodEnd)
	assert.WithinDuration(t, periodEnd, *active.CurrentPeriodEnd, time.Second)

	// Обновление по идентификатору подписки возвращает владельца записи.
	newPeriodEnd := periodEnd.AddDate(0, 1, 0)
	ownerUID, err := storage.UpdateSubscriptionBySubscriptionID(ctx, models.Subscription{
		StripeSubscriptionID: "sub_123",
		StripePriceID:        "price_456",
		CurrentPeriodEnd:     &newPeriodEnd,
		Status:               models.SubscriptionActive,
	})
	require.NoError(t, err)
	assert.Equal(t, uid, ownerUID)

	_, err = storage.UpdateSubscriptionBySubscriptionID(ctx, models.Subscription{
		StripeSubscriptionID: "sub_missing",
		Status:               models.SubscriptionActive,
	})
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)

	// Отмена убирает подписку из активных.
	ownerUID, err = storage.UpdateSubscriptionStatus(ctx, "sub_123", "canceled")
	require.NoError(t, err)
	assert.Equal(t, uid, ownerUID)

	active, err = storage.GetLatestActiveSubscription(ctx, uid)
	require.NoError(t, err)
	assert.Nil(t, active)
}

// TestOrders проверяет идемпотентную запись платежей
func TestOrders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	uid := createTestUser(t, storage, time.Now().AddDate(0, 0, 7))

	order := models.Order{
		UserUID:               uid,
		StripePaymentIntentID: "pi_123",
		Amount:                999,
		Currency:              "usd",
		Status:                "succeeded",
		Description:           "HSK premium",
	}

	require.NoError(t, storage.CreateOrder(ctx, order))
	// Повторная доставка того же платежа не плодит записей.
	require.NoError(t, storage.CreateOrder(ctx, order))

	orders, err := storage.ListOrders(ctx, uid)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "pi_123", orders[0].StripePaymentIntentID)
	assert.Equal(t, int64(999), orders[0].Amount)
}

// TestTestResults проверяет сохранение и постраничное чтение результатов
func TestTestResults(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	uid := createTestUser(t, storage, time.Now().AddDate(0, 0, 7))

	for i := range 3 {
		id, err := storage.SaveTestResult(ctx, models.TestResult{
			UserUID:          uid,
			LessonID:         "hsk1-greetings",
			Score:            60 + 10*i,
			TotalQuestions:   5,
			CorrectAnswers:   3 + i,
			TimeSpentSeconds: 90,
		})
		require.NoError(t, err)
		assert.Greater(t, id, 0)
	}

	results, err := storage.ListTestResults(ctx, uid, 2, 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	rest, err := storage.ListTestResults(ctx, uid, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

// TestFindTrialEndingToday проверяет выборку для планировщика напоминаний
func TestFindTrialEndingToday(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	endingToday := createTestUser(t, storage, time.Now())
	createTestUser(t, storage, time.Now().AddDate(0, 0, 7))
	createTestUser(t, storage, time.Now().AddDate(0, 0, -3))

	users, err := storage.FindTrialEndingToday(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, endingToday, users[0].UID)
}
