package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/app/services"
)

func TestIssueAndVerify(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	token := e.signup(t)

	assert.Len(t, token.ID, services.TokenLength)
	assert.Equal(t, e.clock.Now().Add(2*time.Hour).UnixMilli(), token.Expires)
	assert.True(t, e.tokens.Verify(ctx, token.ID, "ada@example.com"))
	assert.False(t, e.tokens.Verify(ctx, token.ID, "someone@example.com"))
	assert.False(t, e.tokens.Verify(ctx, "", "ada@example.com"))

	e.clock.Advance(2 * time.Hour)
	assert.False(t, e.tokens.Verify(ctx, token.ID, "ada@example.com"))
}

func TestIssueRejectsBadCredentials(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t)

	_, err := e.tokens.Issue(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = e.tokens.Issue(ctx, "nobody@example.com", "engine")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestExtendLiveToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	token := e.signup(t)

	e.clock.Advance(90 * time.Minute)
	extended, err := e.tokens.Extend(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, e.clock.Now().Add(time.Hour).UnixMilli(), extended.Expires)
	assert.Greater(t, extended.Expires, token.Expires)
}

func TestExtendExpiredTokenLeavesItUntouched(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	token := e.signup(t)

	e.clock.Advance(3 * time.Hour)
	_, err := e.tokens.Extend(ctx, token.ID)
	assert.ErrorIs(t, err, services.ErrValidation)

	stored, err := e.tokens.Get(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, token.Expires, stored.Expires)

	_, err = e.tokens.Extend(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRevokeAndSweep(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	first := e.signup(t)

	e.clock.Advance(time.Hour)
	second, err := e.tokens.Issue(ctx, "ada@example.com", "engine")
	require.NoError(t, err)

	e.clock.Advance(90 * time.Minute)
	deleted, err := e.tokens.DeleteIfExpired(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = e.tokens.DeleteIfExpired(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, e.tokens.Revoke(ctx, second.ID))
	assert.ErrorIs(t, e.tokens.Revoke(ctx, second.ID), services.ErrNotFound)

	ids, err := e.tokens.IDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
