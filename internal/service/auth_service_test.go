package service

import (
	"testing"
	"time"

	"dorm-backend/internal/repository"
	"dorm-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	env := newTestEnv(t)
	utils.InitJWT("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(repository.NewUserRepo(env.db), repository.NewAuditRepo(env.db))
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)

	registered, err := auth.Register("admin", "secret123", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, "admin", registered.User.Role)

	claims, err := utils.ValidateAccessToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	loggedIn, err := auth.Login("admin", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = auth.Login("admin", "wrong")
	assert.Error(t, err)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register("admin", "secret123", "admin")
	require.NoError(t, err)

	_, err = auth.Register("admin", "other456", "user")
	assert.Error(t, err)
}

func TestRefreshAndLogout(t *testing.T) {
	auth := newAuthService(t)

	registered, err := auth.Register("resident", "secret123", "user")
	require.NoError(t, err)

	accessToken, err := auth.RefreshAccessToken(registered.RefreshToken)
	require.NoError(t, err)
	claims, err := utils.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)

	require.NoError(t, auth.Logout(registered.RefreshToken))

	_, err = auth.RefreshAccessToken(registered.RefreshToken)
	assert.Error(t, err)
}
