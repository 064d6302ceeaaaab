package auth

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/password"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// MockRepository - мок для Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

var _ Repository = (*MockRepository)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestRegister проверяет создание аккаунта с пробным периодом
func TestRegister(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		if user.Email != "test@example.com" || user.Username != "testuser" {
			return false
		}
		if _, err := uuid.Parse(user.UID); err != nil {
			return false
		}
		// Пароль хранится только в виде bcrypt-хэша.
		if user.PasswordHash == "password123" {
			return false
		}
		if err := password.CompareHash(user.PasswordHash, "password123"); err != nil {
			return false
		}
		// Пробный период заканчивается через TrialDays.
		wantEnd := time.Now().AddDate(0, 0, TrialDays)
		return user.TrialEndsAt.Sub(wantEnd).Abs() < time.Minute
	})).Return("user-uuid-123", nil).Once()

	service := New(mockRepo, jwt.NewMaker("test-secret", time.Hour), testLogger())

	uid, err := service.Register(context.Background(), "test@example.com", "testuser", "Test", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-uuid-123", uid)

	mockRepo.AssertExpectations(t)
}

// TestLogin проверяет вход и выпуск токена
func TestLogin(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	user := &models.User{
		UID:          "user-uuid-123",
		Email:        "test@example.com",
		Username:     "testuser",
		PasswordHash: hash,
	}

	tests := []struct {
		name      string
		username  string
		password  string
		mockSetup func(*MockRepository)
		wantErr   error
	}{
		{
			name:     "successful login",
			username: "testuser",
			password: "password123",
			mockSetup: func(m *MockRepository) {
				m.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil).Once()
			},
		},
		{
			name:     "wrong password",
			username: "testuser",
			password: "wrongpassword",
			mockSetup: func(m *MockRepository) {
				m.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "nonexistent",
			password: "password123",
			mockSetup: func(m *MockRepository) {
				m.On("GetUserByUsername", mock.Anything, "nonexistent").
					Return(nil, assert.AnError).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	maker := jwt.NewMaker("test-secret", time.Hour)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.mockSetup(mockRepo)

			service := New(mockRepo, maker, testLogger())

			token, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)

				claims, parseErr := maker.ParseToken(token)
				require.NoError(t, parseErr)
				assert.Equal(t, "testuser", claims.Username)
				assert.Equal(t, "user-uuid-123", claims.UserUID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
