package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"roomly/internal/auth"
	"roomly/internal/shared/config"
	"roomly/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuth(t *testing.T) (auth.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}))

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret-used-only-in-tests",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
	return auth.NewService(auth.NewRepository(db), cfg), db
}

func registerReq(role string) *auth.RegisterRequest {
	return &auth.RegisterRequest{
		FirstName: "Aina",
		LastName:  "Rahman",
		Email:     fmt.Sprintf("aina+%s@example.com", role),
		Password:  "secret123",
		Role:      role,
	}
}

func TestRegister_IgnoresRequestedRole(t *testing.T) {
	svc, db := setupAuth(t)

	// Self-registration never yields elevated accounts, whatever the
	// payload claims.
	for _, requested := range []string{"", "USER", "STAFF", "ADMIN", "bogus"} {
		t.Run("role "+requested, func(t *testing.T) {
			resp, err := svc.Register(context.Background(), registerReq(requested))
			require.NoError(t, err)
			assert.Equal(t, string(users.RoleUser), resp.User.Role)

			var stored users.User
			require.NoError(t, db.First(&stored, resp.User.ID).Error)
			assert.Equal(t, users.RoleUser, stored.Role)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := setupAuth(t)

	_, err := svc.Register(context.Background(), registerReq("USER"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq("USER"))
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
}

func TestLogin_TokenCarriesStoredRole(t *testing.T) {
	svc, db := setupAuth(t)

	resp, err := svc.Register(context.Background(), registerReq("STAFF"))
	require.NoError(t, err)

	// Promotion happens out of band (seeder or admin), never through
	// registration.
	require.NoError(t, db.Model(&users.User{}).Where("id = ?", resp.User.ID).
		Update("role", users.RoleStaff).Error)

	login, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "aina+STAFF@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(users.RoleStaff), claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupAuth(t)

	_, err := svc.Register(context.Background(), registerReq("USER"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "aina+USER@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
