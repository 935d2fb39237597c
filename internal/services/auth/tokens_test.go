package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginsengcms/internal/domain/user"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.New("admin@example.com", "Admin", user.RoleAdmin)
	require.NoError(t, err)
	return u
}

func TestGenerateAndValidate(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, 24*time.Hour)
	u := testUser(t)

	token, err := svc.Generate(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, user.RoleAdmin, claims.Role)
	assert.Equal(t, u.ID.String(), claims.Subject)
}

func TestValidateExpired(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, 24*time.Hour)
	u := testUser(t)

	// Issue in the past, validate at real time.
	svc.timeFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.Generate(u)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongKey(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, 24*time.Hour)
	other := NewTokenService("ffffffffffffffffffffffffffffffff", time.Hour, 24*time.Hour)
	u := testUser(t)

	token, err := svc.Generate(u)
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, 24*time.Hour)
	u := testUser(t)

	access, err := svc.Generate(u)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefresh(u)
	require.NoError(t, err)

	// Refresh tokens validate only through ValidateRefresh.
	_, err = svc.Validate(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := svc.ValidateRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, 24*time.Hour)
	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
