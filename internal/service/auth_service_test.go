package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hanabi/internal/config"
	"hanabi/internal/models"
	"hanabi/internal/repository"
	"hanabi/internal/service"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newAuthService(userRepo repository.UserRepository) service.AuthService {
	cfg := &config.Config{
		JWTSecretKey:         "test-secret",
		AccessTokenDuration:  2 * time.Hour,
		RefreshTokenDuration: 168 * time.Hour,
	}
	return service.NewAuthService(userRepo, cfg)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("Новый пользователь создается", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetUserByUsername", mock.Anything, "hanako").
			Return(nil, fmt.Errorf("пользователь hanako не найден"))
		userRepo.On("CreateUser", mock.Anything, mock.Anything, "secret123").Return(nil)

		svc := newAuthService(userRepo)
		user, err := svc.Register(context.Background(), repository.CreateUserRequest{
			Username: "hanako",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.Equal(t, "hanako", user.Username)
		assert.NotEmpty(t, user.RefreshToken)
		userRepo.AssertExpectations(t)
	})

	t.Run("Существующее имя отклоняется", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetUserByUsername", mock.Anything, "hanako").
			Return(&models.User{UserID: "user-1", Username: "hanako"}, nil)

		svc := newAuthService(userRepo)
		user, err := svc.Register(context.Background(), repository.CreateUserRequest{
			Username: "hanako",
			Password: "secret123",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "уже существует")
		assert.Nil(t, user)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("Вход выдает подписанный access token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := &models.User{UserID: "user-1", Username: "hanako"}
		userRepo.On("VerifyPassword", mock.Anything, "hanako", "secret123").Return(user, nil)
		userRepo.On("UpdateRefreshToken", mock.Anything, "user-1", mock.Anything, mock.Anything).Return(nil)

		svc := newAuthService(userRepo)
		gotUser, accessToken, refreshToken, err := svc.Login(context.Background(), "hanako", "secret123")

		require.NoError(t, err)
		assert.Equal(t, user, gotUser)
		assert.NotEmpty(t, refreshToken)

		// токен валиден и несет userId/username
		parsed, err := svc.ValidateToken(accessToken)
		require.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, "user-1", claims["userId"])
		assert.Equal(t, "hanako", claims["username"])
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("VerifyPassword", mock.Anything, "hanako", "wrong").
			Return(nil, fmt.Errorf("неверный пароль"))

		svc := newAuthService(userRepo)
		user, _, _, err := svc.Login(context.Background(), "hanako", "wrong")

		require.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestAuthService_RefreshTokens(t *testing.T) {
	t.Run("Истекший токен отклоняется", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetUserByRefreshToken", mock.Anything, "expired").
			Return(nil, fmt.Errorf("refresh token не найден или истек"))

		svc := newAuthService(userRepo)
		user, _, _, err := svc.RefreshTokens(context.Background(), "expired")

		require.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("Действительный токен дает новую пару", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := &models.User{UserID: "user-1", Username: "hanako", RefreshToken: "old"}
		userRepo.On("GetUserByRefreshToken", mock.Anything, "old").Return(user, nil)
		userRepo.On("UpdateRefreshToken", mock.Anything, "user-1", mock.Anything, mock.Anything).Return(nil)

		svc := newAuthService(userRepo)
		_, accessToken, newRefreshToken, err := svc.RefreshTokens(context.Background(), "old")

		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEqual(t, "old", newRefreshToken)
	})
}
