package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/examadmission/internal/app/auth"
	"github.com/yigit/examadmission/internal/app/controllers"
	"github.com/yigit/examadmission/internal/app/repositories/memory"
	"github.com/yigit/examadmission/internal/app/services"
	"github.com/yigit/examadmission/internal/middleware"
	pkgauth "github.com/yigit/examadmission/internal/pkg/auth"
	"github.com/yigit/examadmission/internal/pkg/metrics"
	"github.com/yigit/examadmission/internal/pkg/session"
	"github.com/yigit/examadmission/internal/seed"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	pkgauth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code   string `json:"code"`
		Reason string `json:"reason"`
	} `json:"error"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	lgr := zerolog.Nop()
	repos, _ := memory.NewRepositories()
	sessions := session.NewStore()
	m := metrics.New()

	require.NoError(t, seed.CreateDefaultAdmin(context.Background(), repos.Users, seed.Admin{Username: "root", Password: "rootpass"}, lgr))

	svc := services.NewServices(services.Dependencies{
		Repos:    repos,
		Sessions: sessions,
		Metrics:  m,
		Logger:   lgr,
		Settings: services.DefaultSettings(),
	})

	router := gin.New()
	router.Use(middleware.ClientIP(), middleware.Metrics(m))
	SetupRouter(router, Controllers{
		Auth:         controllers.NewAuthController(svc.Auth, lgr),
		Users:        controllers.NewUserController(svc.Auth, lgr),
		Exams:        controllers.NewExamController(svc.Exams, lgr),
		Applications: controllers.NewApplicationController(svc.Applications, lgr),
		Rooms:        controllers.NewRoomController(svc.Seats, lgr),
		Scores:       controllers.NewScoreController(svc.Scores, svc.Admission, lgr),
		Admission:    controllers.NewAdmissionController(svc.Admission, lgr),
		Health:       controllers.NewHealthController(nil, "memory"),
	},
		middleware.NewAuthMiddleware(auth.NewIdentityResolver(sessions, repos.Users)),
		middleware.NewRateLimiter(1000, 1000, lgr),
		m,
	)
	return &api{t: t, router: router}
}

func (a *api) do(method, path, token string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (a *api) login(username, password string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": username, "password": password})
	require.Equal(a.t, http.StatusOK, code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &resp))
	return resp.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestAdmissionLifecycle(t *testing.T) {
	a := newAPI(t)

	code, _ := a.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "kim", "password": "secret1"})
	require.Equal(t, http.StatusCreated, code)

	code, env := a.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "kim", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "USERNAME_EXISTS", env.Error.Reason)

	root := a.login("root", "rootpass")
	code, _ = a.do(http.MethodPost, "/api/v1/admin/users", root, gin.H{"username": "rec", "password": "recpass", "role": "recruitment_admin"})
	require.Equal(t, http.StatusCreated, code)

	student := a.login("kim", "secret1")
	recruiter := a.login("rec", "recpass")

	exam := gin.H{"name": "Entrance", "type": "written", "time": "2025-12-20T09:00:00Z", "major": "CS"}
	code, env = a.do(http.MethodPost, "/api/v1/exams", student, exam)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "RECRUITMENT_ROLE_REQUIRED", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/exams", recruiter, exam)
	require.Equal(t, http.StatusCreated, code)
	examID := decode[struct {
		ID int64 `json:"id"`
	}](t, env).ID

	code, env = a.do(http.MethodPost, "/api/v1/applications", student, gin.H{"examId": examID})
	require.Equal(t, http.StatusCreated, code)
	app := decode[struct {
		ID     int64  `json:"id"`
		Major  string `json:"major"`
		Status string `json:"status"`
	}](t, env)
	assert.Equal(t, "CS", app.Major)
	assert.Equal(t, "pending", app.Status)

	code, env = a.do(http.MethodPost, "/api/v1/applications", student, gin.H{"examId": examID})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "ALREADY_APPLIED", env.Error.Reason)

	code, _ = a.do(http.MethodGet, "/api/v1/admission/me", student, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = a.do(http.MethodPost, fmt.Sprintf("/api/v1/applications/%d/decision", app.ID), recruiter, gin.H{"approve": true})
	require.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodPost, "/api/v1/rooms/assign?dryRun=true", recruiter, gin.H{"examDate": "2025-12-20"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decode[struct {
		Assigned int `json:"assigned"`
	}](t, env).Assigned)

	code, env = a.do(http.MethodPost, "/api/v1/rooms/assign", recruiter, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decode[struct {
		Assigned int `json:"assigned"`
	}](t, env).Assigned)

	code, env = a.do(http.MethodGet, "/api/v1/rooms/me", student, nil)
	require.Equal(t, http.StatusOK, code)
	seats := decode[[]struct {
		RoomNumber string `json:"roomNumber"`
		SeatNumber int    `json:"seatNumber"`
	}](t, env)
	require.Len(t, seats, 1)
	assert.Equal(t, "A101", seats[0].RoomNumber)
	assert.Equal(t, 1, seats[0].SeatNumber)

	for _, s := range []gin.H{
		{"applicationId": app.ID, "subject": "Math", "score": 50},
		{"applicationId": app.ID, "subject": "English", "score": 30},
	} {
		code, _ = a.do(http.MethodPost, "/api/v1/scores", recruiter, s)
		require.Equal(t, http.StatusCreated, code)
	}

	code, env = a.do(http.MethodGet, "/api/v1/admission/me", student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"unpublished"`, string(decode[struct {
		Verdict struct {
			Status json.RawMessage `json:"status"`
		} `json:"verdict"`
	}](t, env).Verdict.Status))

	code, _ = a.do(http.MethodPut, "/api/v1/thresholds", recruiter, gin.H{"examId": examID, "major": "CS", "minScore": 80})
	require.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodGet, fmt.Sprintf("/api/v1/admission/applications/%d", app.ID), student, nil)
	require.Equal(t, http.StatusOK, code)
	result := decode[struct {
		Verdict struct {
			Status string  `json:"status"`
			Total  float64 `json:"total"`
		} `json:"verdict"`
	}](t, env)
	assert.Equal(t, "admitted", result.Verdict.Status)
	assert.Equal(t, 80.0, result.Verdict.Total)

	code, env = a.do(http.MethodGet, "/api/v1/results/me", student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env), 1)

	code, _ = a.do(http.MethodPost, "/api/v1/auth/logout", student, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodGet, "/api/v1/auth/me", student, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "TOKEN_INVALID", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/auth/logout", student, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "TOKEN_NOT_FOUND", env.Error.Reason)
}

func TestAuthenticationErrors(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodGet, "/api/v1/exams", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "TOKEN_MISSING", env.Error.Reason)

	code, env = a.do(http.MethodGet, "/api/v1/exams", "not-a-session", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "TOKEN_INVALID", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "ghost", "password": "whatever"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "root", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "WRONG_PASSWORD", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "root"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_PAYLOAD", env.Error.Reason)
}

func TestRequestValidation(t *testing.T) {
	a := newAPI(t)
	root := a.login("root", "rootpass")

	code, env := a.do(http.MethodGet, "/api/v1/exams/abc", root, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ID", env.Error.Reason)

	code, env = a.do(http.MethodGet, "/api/v1/exams/99", root, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "EXAM_NOT_FOUND", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/exams", root, gin.H{"name": "X", "type": "w", "time": "tomorrow", "major": "CS"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_EXAM_TIME", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/applications/1/decision", root, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "DECISION_REQUIRED", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/rooms/assign", root, gin.H{"examDate": "20/12/2025"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_DATE", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/admin/users", root, gin.H{"username": "x", "password": "longenough", "role": "wizard"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ROLE", env.Error.Reason)
}

func TestHealthAndMetrics(t *testing.T) {
	a := newAPI(t)

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","database":"memory"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "exam_admission_http_requests_total")
}

func TestDecisionStatusAndFieldLimits(t *testing.T) {
	a := newAPI(t)
	root := a.login("root", "rootpass")

	code, env := a.do(http.MethodPost, "/api/v1/exams", root, gin.H{"name": "Entrance", "type": "written", "time": "2025-12-20T09:00:00Z", "major": strings.Repeat("m", 101)})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_PAYLOAD", env.Error.Reason)

	code, env = a.do(http.MethodPost, "/api/v1/exams", root, gin.H{"name": "Entrance", "type": "written", "time": "2025-12-20T09:00:00Z", "major": "CS"})
	require.Equal(t, http.StatusCreated, code)
	examID := decode[struct {
		ID int64 `json:"id"`
	}](t, env).ID

	code, _ = a.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "kim", "password": "secret1"})
	require.Equal(t, http.StatusCreated, code)
	student := a.login("kim", "secret1")
	code, env = a.do(http.MethodPost, "/api/v1/applications", student, gin.H{"examId": examID})
	require.Equal(t, http.StatusCreated, code)
	appID := decode[struct {
		ID int64 `json:"id"`
	}](t, env).ID
	path := fmt.Sprintf("/api/v1/applications/%d/decision", appID)

	code, env = a.do(http.MethodPost, path, root, gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_STATUS", env.Error.Reason)

	code, env = a.do(http.MethodPost, path, root, gin.H{"status": "CONFIRMED", "approve": false})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "confirmed", decode[struct {
		Status string `json:"status"`
	}](t, env).Status)
}
