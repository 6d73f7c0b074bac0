package auth_test

import (
	"context"
	"testing"
	"time"

	"go-hrm/internal/auth"
	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/shared/config"
	"go-hrm/internal/user"
	mock_user "go-hrm/internal/user/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:  "unit-test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func setupAuthServiceTest(t *testing.T) (*mock_user.MockRepository, auth.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := mock_user.NewMockRepository(ctrl)
	svc := auth.NewService(mockRepo, testConfig())
	return mockRepo, svc
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	activeUser := func(t *testing.T) *user.User {
		return &user.User{
			ID:        userID,
			Email:     "budi@mail.com",
			Password:  hashPassword(t, "rahasia1"),
			FirstName: "Budi",
			LastName:  "Santoso",
			Role:      user.RoleEmployee,
			IsActive:  true,
		}
	}

	t.Run("success returns both tokens", func(t *testing.T) {
		mockRepo, svc := setupAuthServiceTest(t)

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "budi@mail.com").
			Return(activeUser(t), nil)

		access, refresh, resp, err := svc.Login(ctx, "budi@mail.com", "rahasia1")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, userID.String(), resp.ID)
		assert.Equal(t, user.RoleEmployee, resp.Role)

		// Klaim access token harus membawa identitas untuk middleware
		token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
			return []byte("unit-test-secret"), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, userID.String(), claims["user_id"])
		assert.Equal(t, "budi@mail.com", claims["email"])
		assert.Equal(t, user.RoleEmployee, claims["role"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		mockRepo, svc := setupAuthServiceTest(t)

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "budi@mail.com").
			Return(activeUser(t), nil)

		_, _, _, err := svc.Login(ctx, "budi@mail.com", "salah")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email maps to same error", func(t *testing.T) {
		mockRepo, svc := setupAuthServiceTest(t)

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "siapa@mail.com").
			Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := svc.Login(ctx, "siapa@mail.com", "rahasia1")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive user", func(t *testing.T) {
		mockRepo, svc := setupAuthServiceTest(t)

		u := activeUser(t)
		u.IsActive = false
		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "budi@mail.com").
			Return(u, nil)

		_, _, _, err := svc.Login(ctx, "budi@mail.com", "rahasia1")

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	issueRefreshToken := func(t *testing.T, secret string, expiry time.Duration) string {
		t.Helper()

		claims := jwt.MapClaims{
			"user_id": userID.String(),
			"email":   "budi@mail.com",
			"role":    user.RoleEmployee,
			"exp":     time.Now().Add(expiry).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		assert.NoError(t, err)
		return token
	}

	t.Run("success reissues both tokens", func(t *testing.T) {
		mockRepo, svc := setupAuthServiceTest(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), userID.String()).
			Return(&user.User{
				ID:       userID,
				Email:    "budi@mail.com",
				Role:     user.RoleEmployee,
				IsActive: true,
			}, nil)

		refresh := issueRefreshToken(t, "unit-test-secret", time.Hour)
		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, userID.String(), resp.ID)
	})

	t.Run("negative wrong signature", func(t *testing.T) {
		_, svc := setupAuthServiceTest(t)

		refresh := issueRefreshToken(t, "secret-lain", time.Hour)
		_, _, _, err := svc.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative expired token", func(t *testing.T) {
		_, svc := setupAuthServiceTest(t)

		refresh := issueRefreshToken(t, "unit-test-secret", -time.Hour)
		_, _, _, err := svc.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		_, svc := setupAuthServiceTest(t)

		_, _, _, err := svc.RefreshToken(ctx, "bukan.token.jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative user deactivated after issue", func(t *testing.T) {
		mockRepo, svc := setupAuthServiceTest(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), userID.String()).
			Return(&user.User{ID: userID, IsActive: false}, nil)

		refresh := issueRefreshToken(t, "unit-test-secret", time.Hour)
		_, _, _, err := svc.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockRepo, svc := setupAuthServiceTest(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), userID.String()).
			Return(&user.User{
				ID:        userID,
				Email:     "budi@mail.com",
				FirstName: "Budi",
				Role:      user.RoleEmployee,
				IsActive:  true,
			}, nil)

		resp, err := svc.GetMe(ctx, userID.String())

		assert.NoError(t, err)
		assert.Equal(t, "budi@mail.com", resp.Email)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		_, svc := setupAuthServiceTest(t)

		_, err := svc.GetMe(ctx, "bukan-uuid")

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})
}
