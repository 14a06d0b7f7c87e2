// Package session keeps the live login sessions of the process.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

type entry struct {
	username  string
	expiresAt time.Time // zero means no expiry
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Store maps opaque tokens to usernames. It is safe for concurrent use;
// every operation is atomic per token and there is no store-wide lock.
type Store struct {
	entries sync.Map // token -> *entry
	ttl     time.Duration
	now     func() time.Time
	newID   func() string
	logger  zerolog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithTTL expires sessions after d. Zero keeps sessions until revoked.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithTokenGenerator replaces the token source
func WithTokenGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger used by the sweeper
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an empty session store
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens a new session for username and returns its token.
// A username may hold any number of live sessions.
func (s *Store) Create(username string) string {
	e := &entry{username: username}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	for {
		token := s.newID()
		if _, loaded := s.entries.LoadOrStore(token, e); !loaded {
			return token
		}
	}
}

// Resolve returns the username bound to token.
func (s *Store) Resolve(token string) (string, bool) {
	v, ok := s.entries.Load(token)
	if !ok {
		return "", false
	}
	e := v.(*entry)
	if e.expired(s.now()) {
		s.entries.CompareAndDelete(token, e)
		return "", false
	}
	return e.username, true
}

// Revoke ends the session. Expired sessions count as already gone.
func (s *Store) Revoke(token string) error {
	v, ok := s.entries.LoadAndDelete(token)
	if !ok || v.(*entry).expired(s.now()) {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// Len counts live sessions
func (s *Store) Len() int {
	now := s.now()
	n := 0
	s.entries.Range(func(_, v any) bool {
		if !v.(*entry).expired(now) {
			n++
		}
		return true
	})
	return n
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()
	removed := 0
	s.entries.Range(func(k, v any) bool {
		if v.(*entry).expired(now) && s.entries.CompareAndDelete(k, v) {
			removed++
		}
		return true
	})
	return removed
}

// StartSweeper runs Sweep on a cron schedule until ctx is done.
// It is a no-op when the store has no TTL.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) error {
	if s.ttl <= 0 || interval <= 0 {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc("@every "+interval.String(), func() {
		if n := s.Sweep(); n > 0 {
			s.logger.Debug().Int("removed", n).Msg("Expired sessions swept")
		}
	})
	if err != nil {
		return err
	}
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return nil
}
