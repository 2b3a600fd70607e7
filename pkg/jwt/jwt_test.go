package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(Config{
		Secret:     []byte("test-secret"),
		Expiration: time.Hour,
		Issuer:     "servemee",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateToken(42, "consumer")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "consumer", claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestValidate_Expired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateToken(1, "admin")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, _, err := newTestService().GenerateToken(1, "admin")
	require.NoError(t, err)

	other := NewService(Config{Secret: []byte("other"), Expiration: time.Hour, Issuer: "servemee"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := newTestService().ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
