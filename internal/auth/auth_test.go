package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"property-backend/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "property-backend", 1)
	tenantID := 4
	user := &models.User{ID: 9, Email: "client@example.com", Role: models.RoleClient, TenantID: &tenantID}

	token, err := m.GenerateToken(user)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, 9, claims.UserID)
	require.Equal(t, models.RoleClient, claims.Role)
	require.Equal(t, 4, *claims.TenantID)
}

func TestTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	issuer := NewJWTManager("secret", "property-backend", 1)
	token, err := issuer.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = NewJWTManager("other", "property-backend", 1).ValidateToken(token)
	require.Error(t, err)

	_, err = NewJWTManager("secret", "someone-else", 1).ValidateToken(token)
	require.Error(t, err)

	expired := NewJWTManager("secret", "property-backend", 1)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken(&models.User{ID: 1})
	require.NoError(t, err)
	_, err = issuer.ValidateToken(old)
	require.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "s3cret!"))
	require.False(t, VerifyPassword(hash, "wrong"))
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := NewJWTManager("secret", "property-backend", 1)
	user := &models.User{ID: 3, Email: "admin@example.com", Role: models.RoleAdmin}

	refresh, issued, err := m.GenerateRefreshToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)
	require.True(t, issued.ExpiresAt.Time.After(time.Now().Add(6*24*time.Hour)))

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, issued.ID, claims.ID)
	require.Equal(t, 3, claims.UserID)

	_, err = m.ValidateToken(refresh)
	require.ErrorIs(t, err, ErrWrongTokenType)

	access, err := m.GenerateToken(user)
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(access)
	require.ErrorIs(t, err, ErrWrongTokenType)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	m := NewJWTManager("secret", "property-backend", 1)
	m.SetRefreshTTL(time.Hour)
	user := &models.User{ID: 3}

	_, a, err := m.GenerateRefreshToken(user)
	require.NoError(t, err)
	_, b, err := m.GenerateRefreshToken(user)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
	require.True(t, a.ExpiresAt.Time.Before(time.Now().Add(2*time.Hour)))
}
