package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHelpersWithoutClient(t *testing.T) {
	ctx := context.Background()
	Rdb = nil

	_, err := GetValue(ctx, "k")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, SetWithExpiration(ctx, "k", "v", time.Minute), ErrNotInitialized)
	assert.NotPanics(t, func() { UnLock(ctx, "k", "v") })
	assert.NoError(t, Close())
}

func TestRunLockWithoutClient(t *testing.T) {
	Rdb = nil
	release, ok, err := NewRunLock("lock", time.Minute).Acquire(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.False(t, ok)
	assert.NotPanics(t, release)
}
