package translate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// MockService - мок для Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Translate(ctx context.Context, text string) *models.Translation {
	args := m.Called(ctx, text)
	return args.Get(0).(*models.Translation)
}

var _ Service = (*MockService)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestServeHTTP проверяет перевод и коды ошибок запроса
func TestServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "successful translation",
			body: `{"text": "hello"}`,
			mockSetup: func(m *MockService) {
				m.On("Translate", mock.Anything, "hello").Return(&models.Translation{
					Chinese: "你好",
					Pinyin:  "Nǐ hǎo",
				}).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   "你好",
		},
		{
			name:       "missing text",
			body:       `{}`,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Text",
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)

			handler := New(testLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			mockService.AssertExpectations(t)
		})
	}
}
