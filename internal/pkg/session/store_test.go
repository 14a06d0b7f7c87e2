package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCreateResolveRevoke(t *testing.T) {
	s := NewStore()

	token := s.Create("alice")
	require.NotEmpty(t, token)

	username, ok := s.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, "alice", username)

	require.NoError(t, s.Revoke(token))

	_, ok = s.Resolve(token)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Revoke(token), apperrors.ErrSessionNotFound)
}

func TestResolveUnknownToken(t *testing.T) {
	s := NewStore()
	_, ok := s.Resolve("nope")
	assert.False(t, ok)
}

func TestMultipleSessionsPerUser(t *testing.T) {
	s := NewStore()
	t1 := s.Create("bob")
	t2 := s.Create("bob")
	require.NotEqual(t, t1, t2)

	require.NoError(t, s.Revoke(t1))
	username, ok := s.Resolve(t2)
	assert.True(t, ok, "revoking one session leaves the others alive")
	assert.Equal(t, "bob", username)
}

func TestCreateRetriesOnCollision(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	var i int32
	s := NewStore(WithTokenGenerator(func() string {
		return ids[atomic.AddInt32(&i, 1)-1]
	}))

	assert.Equal(t, "dup", s.Create("a"))
	assert.Equal(t, "fresh", s.Create("b"))

	username, _ := s.Resolve("dup")
	assert.Equal(t, "a", username, "existing session is never overwritten")
}

func TestExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(WithTTL(time.Hour), WithClock(clock.Now))

	token := s.Create("carol")
	clock.Advance(59 * time.Minute)
	_, ok := s.Resolve(token)
	assert.True(t, ok)

	clock.Advance(time.Minute)
	_, ok = s.Resolve(token)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Revoke(token), apperrors.ErrSessionNotFound)
}

func TestSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(WithTTL(time.Minute), WithClock(clock.Now))

	s.Create("a")
	s.Create("b")
	clock.Advance(2 * time.Minute)
	s.Create("c")

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Sweep())
	assert.Equal(t, 0, s.Sweep())
}

func TestStartSweeperWithoutTTL(t *testing.T) {
	s := NewStore()
	assert.NoError(t, s.StartSweeper(context.Background(), time.Second))
}

func TestStartSweeperStopsWithContext(t *testing.T) {
	s := NewStore(WithTTL(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.StartSweeper(ctx, time.Second))
	cancel()
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()
	const workers = 32

	var wg sync.WaitGroup
	tokens := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = s.Create(fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, workers, s.Len())

	// Concurrent revokes of the same token: exactly one wins.
	var wins int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Revoke(tokens[0]) == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
	assert.Equal(t, workers-1, s.Len())
}
