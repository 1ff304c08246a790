package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CountsWithinWindow(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	for want := 1; want <= 5; want++ {
		n, err := s.Hit(ctx, "login:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	s.Hit(ctx, "a", time.Minute)
	s.Hit(ctx, "a", time.Minute)
	n, err := s.Hit(ctx, "b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryStore_WindowResets(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	s.Hit(ctx, "k", 10*time.Millisecond)
	s.Hit(ctx, "k", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	n, err := s.Hit(ctx, "k", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
