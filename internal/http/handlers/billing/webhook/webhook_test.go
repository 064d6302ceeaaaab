package webhook

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/stripeapi"
)

// MockService - мок для Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ProcessEvent(ctx context.Context, event *stripeapi.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var _ Service = (*MockService)(nil)

const testSecret = "whsec_test_secret"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestHandler(service Service, now time.Time) *Handler {
	h := New(testLogger(), service, testSecret)
	h.now = func() time.Time { return now }
	return h
}

// TestServeHTTP проверяет приём вебхука с проверкой подписи
func TestServeHTTP(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"id": "evt_123", "type": "checkout.session.completed", "data": {"object": {}}}`)

	tests := []struct {
		name       string
		sigHeader  string
		mockSetup  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:      "valid event is processed",
			sigHeader: stripeapi.SignPayload(payload, testSecret, now),
			mockSetup: func(m *MockService) {
				m.On("ProcessEvent", mock.Anything, mock.MatchedBy(func(event *stripeapi.Event) bool {
					return event.ID == "evt_123" && event.Type == stripeapi.EventCheckoutSessionCompleted
				})).Return(nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"received":true`,
		},
		{
			name:       "invalid signature is rejected before processing",
			sigHeader:  stripeapi.SignPayload(payload, "whsec_other", now),
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid signature",
		},
		{
			name:       "missing signature header",
			sigHeader:  "",
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid signature",
		},
		{
			name:      "processing failure returns 500",
			sigHeader: stripeapi.SignPayload(payload, testSecret, now),
			mockSetup: func(m *MockService) {
				m.On("ProcessEvent", mock.Anything, mock.Anything).
					Return(assert.AnError).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "processing failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)

			handler := newTestHandler(mockService, now)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/webhook", bytes.NewReader(payload))
			if tt.sigHeader != "" {
				req.Header.Set("Stripe-Signature", tt.sigHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			mockService.AssertExpectations(t)
			if tt.wantStatus == http.StatusBadRequest {
				mockService.AssertNotCalled(t, "ProcessEvent", mock.Anything, mock.Anything)
			}
		})
	}
}

// TestServeHTTP_ReplayedEvent проверяет отклонение события со старой подписью
func TestServeHTTP_ReplayedEvent(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"id": "evt_123", "type": "payment_intent.succeeded", "data": {"object": {}}}`)

	mockService := new(MockService)
	handler := newTestHandler(mockService, now)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", stripeapi.SignPayload(payload, testSecret, now.Add(-time.Hour)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "ProcessEvent", mock.Anything, mock.Anything)
}
