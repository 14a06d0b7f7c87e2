package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/examadmission/internal/app/auth"
	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/app/repositories/memory"
	pkgauth "github.com/yigit/examadmission/internal/pkg/auth"
	"github.com/yigit/examadmission/internal/pkg/metrics"
	"github.com/yigit/examadmission/internal/pkg/session"
)

func TestMain(m *testing.M) {
	pkgauth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// stepClock returns increasing instants so application order is deterministic
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type testEnv struct {
	svc      *Services
	repos    *repositories.Repositories
	store    *memory.Store
	sessions *session.Store
	metrics  *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos, store := memory.NewRepositories()
	sessions := session.NewStore()
	m := metrics.New()
	clock := &stepClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

	svc := NewServices(Dependencies{
		Repos:    repos,
		Sessions: sessions,
		Metrics:  m,
		Logger:   zerolog.Nop(),
		Settings: DefaultSettings(),
		Now:      clock.Now,
	})
	return &testEnv{svc: svc, repos: repos, store: store, sessions: sessions, metrics: m}
}

func (e *testEnv) user(t *testing.T, username string, role models.Role) *auth.Identity {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x", Role: string(role)}
	require.NoError(t, e.repos.Users.Create(context.Background(), u))
	return &auth.Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func (e *testEnv) exam(t *testing.T, major string) *models.Exam {
	t.Helper()
	exam := &models.Exam{Name: "Entrance " + major, Type: "written", Time: time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC), Major: major}
	require.NoError(t, e.repos.Exams.Create(context.Background(), exam))
	return exam
}

// confirmed submits and confirms an application for a new student
func (e *testEnv) confirmed(t *testing.T, admin *auth.Identity, username string, exam *models.Exam) *models.Application {
	t.Helper()
	ctx := context.Background()
	student := e.user(t, username, models.RoleStudent)
	app, err := e.svc.Applications.Submit(ctx, student, exam.ID)
	require.NoError(t, err)
	app, err = e.svc.Applications.Decide(ctx, admin, app.ID, true, "")
	require.NoError(t, err)
	return app
}

func ptr[T any](v T) *T { return &v }
