package orders

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// MockService - мок для Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListOrders(ctx context.Context, userUID string) ([]*models.Order, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

var _ Service = (*MockService)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestServeHTTP проверяет выдачу истории платежей
func TestServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		userUID    string
		mockSetup  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:    "orders are returned",
			userUID: "user-uuid-123",
			mockSetup: func(m *MockService) {
				m.On("ListOrders", mock.Anything, "user-uuid-123").Return([]*models.Order{
					{ID: 1, UserUID: "user-uuid-123", StripePaymentIntentID: "pi_123", Amount: 999, Currency: "usd"},
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   "pi_123",
		},
		{
			name:       "missing user uid in context",
			userUID:    "",
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "unauthorized",
		},
		{
			name:    "storage failure",
			userUID: "user-uuid-123",
			mockSetup: func(m *MockService) {
				m.On("ListOrders", mock.Anything, "user-uuid-123").
					Return(nil, assert.AnError).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "could not list orders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)

			handler := New(testLogger(), mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/orders", nil)
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
