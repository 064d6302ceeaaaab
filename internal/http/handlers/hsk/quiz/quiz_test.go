package quiz

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
	quizsvc "github.com/magabrotheeeer/hsk-learning-platform/internal/services/quiz"
)

// MockService - мок для Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Generate(lesson *models.HSKLesson) ([]models.QuizQuestion, error) {
	args := m.Called(lesson)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizQuestion), args.Error(1)
}

var _ Service = (*MockService)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func requestForLesson(lessonID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/hsk/lessons/"+lessonID+"/quiz", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("lessonID", lessonID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

// TestServeHTTP проверяет генерацию теста по уроку
func TestServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		lessonID   string
		mockSetup  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:     "quiz for existing lesson",
			lessonID: "hsk1-greetings",
			mockSetup: func(m *MockService) {
				m.On("Generate", mock.MatchedBy(func(lesson *models.HSKLesson) bool {
					return lesson.ID == "hsk1-greetings"
				})).Return([]models.QuizQuestion{
					{ID: "hsk1-greetings-0", Type: models.QuestionChineseToEnglish,
						Question: `What does "你好" mean?`, Options: []string{"hello", "goodbye"},
						CorrectAnswer: "hello"},
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"hsk1-greetings-0"`,
		},
		{
			name:       "unknown lesson",
			lessonID:   "hsk9-missing",
			mockSetup:  func(m *MockService) {},
			wantStatus: http.StatusNotFound,
			wantBody:   "lesson not found",
		},
		{
			name:     "lesson too small",
			lessonID: "hsk1-greetings",
			mockSetup: func(m *MockService) {
				m.On("Generate", mock.Anything).
					Return(nil, quizsvc.ErrLessonTooSmall).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "too few words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)

			handler := New(testLogger(), mockService)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, requestForLesson(tt.lessonID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			mockService.AssertExpectations(t)
		})
	}
}
