package jwt_test

import (
	"context"
	"testing"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/testutil"
	"foodgram-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	svc := jwt.NewJWTServiceWithSecret("secret", jwt.NewTokenRepository(db))
	ctx := context.Background()

	token, err := svc.GenerateTokenUser(42, domain.RoleAdmin)
	require.NoError(t, err)

	id, role, err := svc.GetUserIDByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestTokenSignedWithOtherSecretIsInvalid(t *testing.T) {
	db := testutil.NewDB(t)
	issuer := jwt.NewJWTServiceWithSecret("one", jwt.NewTokenRepository(db))
	verifier := jwt.NewJWTServiceWithSecret("two", jwt.NewTokenRepository(db))

	token, err := issuer.GenerateTokenUser(1, domain.RoleUser)
	require.NoError(t, err)

	_, _, err = verifier.GetUserIDByToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRevokeTwiceAndPurge(t *testing.T) {
	db := testutil.NewDB(t)
	repo := jwt.NewTokenRepository(db)
	svc := jwt.NewJWTServiceWithSecret("secret", repo)
	ctx := context.Background()

	token, err := svc.GenerateTokenUser(5, domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, svc.RevokeToken(ctx, token))
	require.NoError(t, svc.RevokeToken(ctx, token))

	_, _, err = svc.GetUserIDByToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	require.NoError(t, repo.Revoke(ctx, entities.RevokedToken{
		JTI:       "stale",
		UserID:    5,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	purged, err := repo.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
