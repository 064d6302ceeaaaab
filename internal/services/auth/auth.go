// Package auth реализует регистрацию и вход пользователей: bcrypt-хэш
// пароля, выпуск JWT и назначение пробного периода новому аккаунту.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/password"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// TrialDays длительность пробного периода нового аккаунта в днях.
const TrialDays = 7

// ErrInvalidCredentials неверная пара логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Repository определяет методы хранилища пользователей.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service реализует регистрацию и вход.
type Service struct {
	repo     Repository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый Service.
func New(repo Repository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создаёт пользователя с пробным периодом и возвращает его UID.
func (s *Service) Register(ctx context.Context, email, username, name, rawPassword string) (string, error) {
	const op = "auth.Register"

	passwordHash, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	uid, err := s.repo.CreateUser(ctx, models.User{
		UID:          uuid.New().String(),
		Email:        email,
		Username:     username,
		Name:         name,
		PasswordHash: passwordHash,
		TrialEndsAt:  time.Now().AddDate(0, 0, TrialDays),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("uid", uid), slog.String("username", username))
	return uid, nil
}

// Login проверяет пароль и возвращает JWT пользователя.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "auth.Login"

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, user.UID, user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
