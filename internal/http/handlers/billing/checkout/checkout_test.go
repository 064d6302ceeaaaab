package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/services/billing"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/storage/repository"
)

// MockService - мок для Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateCheckout(ctx context.Context, userUID, priceID, successURL, cancelURL string) (*billing.CheckoutResult, error) {
	args := m.Called(ctx, userUID, priceID, successURL, cancelURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CheckoutResult), args.Error(1)
}

var _ Service = (*MockService)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestServeHTTP проверяет создание checkout-сессии
func TestServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		userUID    string
		body       string
		mockSetup  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:    "successful checkout",
			userUID: "user-uuid-123",
			body:    `{"price_id": "price_123"}`,
			mockSetup: func(m *MockService) {
				m.On("CreateCheckout", mock.Anything, "user-uuid-123", "price_123", "", "").
					Return(&billing.CheckoutResult{
						SessionID: "cs_test",
						URL:       "https://checkout.stripe.com/cs_test",
					}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"session_id":"cs_test"`,
		},
		{
			name:       "missing user uid in context",
			userUID:    "",
			body:       `{"price_id": "price_123"}`,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "unauthorized",
		},
		{
			name:       "missing price id",
			userUID:    "user-uuid-123",
			body:       `{}`,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "PriceID",
		},
		{
			name:       "malformed body",
			userUID:    "user-uuid-123",
			body:       `{not json`,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid request body",
		},
		{
			name:    "user not found",
			userUID: "missing-uid",
			body:    `{"price_id": "price_123"}`,
			mockSetup: func(m *MockService) {
				m.On("CreateCheckout", mock.Anything, "missing-uid", "price_123", "", "").
					Return(nil, fmt.Errorf("billing.CreateCheckout: %w", repository.ErrUserNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "user not found",
		},
		{
			name:    "stripe failure",
			userUID: "user-uuid-123",
			body:    `{"price_id": "price_123"}`,
			mockSetup: func(m *MockService) {
				m.On("CreateCheckout", mock.Anything, "user-uuid-123", "price_123", "", "").
					Return(nil, assert.AnError).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "could not create checkout session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)

			handler := New(testLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/checkout", strings.NewReader(tt.body))
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			mockService.AssertExpectations(t)
		})
	}
}
