package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuardRejectsDuplicateWithinTTL(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	ok, err := guard.Begin(ctx, "emp-1:clock-in", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Begin(ctx, "emp-1:clock-in", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// A different key is unaffected.
	ok, err = guard.Begin(ctx, "emp-2:clock-in", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryGuardEndReleasesKey(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	ok, err := guard.Begin(ctx, "emp-1:clock-out", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, guard.End(ctx, "emp-1:clock-out"))

	ok, err = guard.Begin(ctx, "emp-1:clock-out", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryGuardExpiresEntries(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	ok, err := guard.Begin(ctx, "emp-1:clock-in", 5*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	ok, err = guard.Begin(ctx, "emp-1:clock-in", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
