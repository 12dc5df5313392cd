package token

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSProvider_SignAndParse(t *testing.T) {
	p := NewHSProvider("test-secret", "storefront")
	ctx := context.Background()

	tok, exp, err := p.SignAccess(ctx, 42, models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := p.ParseAndValidateAccess(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestHSProvider_Expired(t *testing.T) {
	p := NewHSProvider("test-secret", "storefront")
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, _, err := p.SignAccess(context.Background(), 1, models.RoleCustomer, time.Hour)
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.ParseAndValidateAccess(context.Background(), tok)
	assert.Error(t, err)
}

func TestHSProvider_WrongSecretOrIssuer(t *testing.T) {
	signer := NewHSProvider("secret-a", "storefront")
	tok, _, err := signer.SignAccess(context.Background(), 7, models.RoleCustomer, time.Hour)
	require.NoError(t, err)

	_, err = NewHSProvider("secret-b", "storefront").ParseAndValidateAccess(context.Background(), tok)
	assert.Error(t, err)

	_, err = NewHSProvider("secret-a", "other").ParseAndValidateAccess(context.Background(), tok)
	assert.Error(t, err)
}

func TestHSProvider_Garbage(t *testing.T) {
	_, err := NewHSProvider("s", "i").ParseAndValidateAccess(context.Background(), "not.a.jwt")
	assert.Error(t, err)
}
