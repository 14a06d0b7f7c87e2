// Package memory implements the repository interfaces in process memory.
// It enforces the same unique constraints as the SQL schema.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/helpers"
)

type studentExam struct {
	studentID int64
	examID    int64
}

type examMajor struct {
	examID int64
	major  string
}

// Store holds every table behind one mutex
type Store struct {
	mu sync.RWMutex

	seq int64

	users        map[int64]models.User
	usernames    map[string]int64
	exams        map[int64]models.Exam
	applications map[int64]models.Application
	appKeys      map[studentExam]int64
	rooms        map[int64]models.RoomAssignment // keyed by application ID
	scores       []models.ScoreEntry
	thresholds   map[examMajor]models.AdmissionThreshold
	audit        []models.AuditEntry
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:        make(map[int64]models.User),
		usernames:    make(map[string]int64),
		exams:        make(map[int64]models.Exam),
		applications: make(map[int64]models.Application),
		appKeys:      make(map[studentExam]int64),
		rooms:        make(map[int64]models.RoomAssignment),
		thresholds:   make(map[examMajor]models.AdmissionThreshold),
	}
}

// NewRepositories returns repositories backed by a fresh store
func NewRepositories() (*repositories.Repositories, *Store) {
	s := NewStore()
	return s.Repositories(), s
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:        (*userRepo)(s),
		Exams:        (*examRepo)(s),
		Applications: (*applicationRepo)(s),
		Rooms:        (*roomRepo)(s),
		Scores:       (*scoreRepo)(s),
		Thresholds:   (*thresholdRepo)(s),
		Audit:        (*auditRepo)(s),
	}
}

// AuditEntries returns a copy of the recorded audit trail
func (s *Store) AuditEntries() []models.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditEntry(nil), s.audit...)
}

// ThresholdCount returns the number of stored thresholds
func (s *Store) ThresholdCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.thresholds)
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

type userRepo Store

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernames[user.Username]; ok {
		return apperrors.ErrUsernameExists
	}
	user.ID = s.nextID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	s.usernames[user.Username] = user.ID
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

type examRepo Store

func (r *examRepo) Create(ctx context.Context, exam *models.Exam) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	exam.ID = s.nextID()
	s.exams[exam.ID] = *exam
	return nil
}

func (r *examRepo) Update(ctx context.Context, exam *models.Exam) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.exams[exam.ID]; !ok {
		return apperrors.ErrExamNotFound
	}
	s.exams[exam.ID] = *exam
	return nil
}

func (r *examRepo) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.exams[id]
	if !ok {
		return nil, apperrors.ErrExamNotFound
	}
	return &e, nil
}

func (r *examRepo) List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Exam, 0, len(s.exams))
	for _, e := range s.exams {
		if filter.Year > 0 {
			from, to := helpers.YearBounds(filter.Year)
			if e.Time.Before(from) || !e.Time.Before(to) {
				continue
			}
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Major != "" && !strings.Contains(strings.ToLower(e.Major), strings.ToLower(filter.Major)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.Before(out[j].Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type applicationRepo Store

func (r *applicationRepo) Create(ctx context.Context, app *models.Application) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	key := studentExam{app.StudentID, app.ExamID}
	if _, ok := s.appKeys[key]; ok {
		return apperrors.ErrAlreadyApplied
	}
	app.ID = s.nextID()
	s.applications[app.ID] = *app
	s.appKeys[key] = app.ID
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return &a, nil
}

func (r *applicationRepo) Exists(ctx context.Context, studentID, examID int64) (bool, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.appKeys[studentExam{studentID, examID}]
	return ok, nil
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Application, 0)
	for _, a := range s.applications {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	sortApplications(out, true)
	return out, nil
}

func (r *applicationRepo) LatestByStudent(ctx context.Context, studentID int64) (*models.Application, error) {
	apps, _ := r.ListByStudent(ctx, studentID)
	if len(apps) == 0 {
		return nil, apperrors.ErrApplicationNotFound
	}
	return &apps[0], nil
}

func (r *applicationRepo) UpdateDecision(ctx context.Context, id int64, d models.Decision) (*models.Application, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	decidedBy, decidedAt := d.DecidedBy, d.DecidedAt
	a.Status = d.Status
	a.ConfirmedBy = &decidedBy
	a.ConfirmationTime = &decidedAt
	s.applications[id] = a

	if d.Status != models.StatusConfirmed {
		delete(s.rooms, id)
	}
	return &a, nil
}

func (r *applicationRepo) ListUnassignedConfirmed(ctx context.Context, examID *int64) ([]models.Application, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Application, 0)
	for _, a := range s.applications {
		if a.Status != models.StatusConfirmed {
			continue
		}
		if examID != nil && a.ExamID != *examID {
			continue
		}
		if _, assigned := s.rooms[a.ID]; assigned {
			continue
		}
		out = append(out, a)
	}
	sortApplications(out, false)
	return out, nil
}

func sortApplications(apps []models.Application, newestFirst bool) {
	sort.Slice(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		if newestFirst {
			a, b = b, a
		}
		if !a.ApplicationTime.Equal(b.ApplicationTime) {
			return a.ApplicationTime.Before(b.ApplicationTime)
		}
		return a.ID < b.ID
	})
}

type roomRepo Store

func (r *roomRepo) Create(ctx context.Context, ra *models.RoomAssignment) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[ra.ApplicationID]; ok {
		return apperrors.ErrSeatAlreadyAssigned
	}
	a, ok := s.applications[ra.ApplicationID]
	if !ok || a.Status != models.StatusConfirmed {
		return apperrors.ErrNotConfirmed
	}
	ra.ID = s.nextID()
	ra.ExamID = a.ExamID
	s.rooms[ra.ApplicationID] = *ra
	return nil
}

func (r *roomRepo) GetByApplicationID(ctx context.Context, applicationID int64) (*models.RoomAssignment, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	ra, ok := s.rooms[applicationID]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return &ra, nil
}

func (r *roomRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.RoomAssignment, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.RoomAssignment, 0)
	for appID, ra := range s.rooms {
		if s.applications[appID].StudentID == studentID {
			out = append(out, ra)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type scoreRepo Store

func (r *scoreRepo) Create(ctx context.Context, entry *models.ScoreEntry) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.applications[entry.ApplicationID]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	entry.ID = s.nextID()
	s.scores = append(s.scores, *entry)
	return nil
}

func (r *scoreRepo) ListByApplication(ctx context.Context, applicationID int64) ([]models.ScoreEntry, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ScoreEntry, 0)
	for _, e := range s.scores {
		if e.ApplicationID == applicationID {
			out = append(out, e)
		}
	}
	return out, nil
}

type thresholdRepo Store

func (r *thresholdRepo) Upsert(ctx context.Context, t *models.AdmissionThreshold) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.thresholds[examMajor{t.ExamID, t.Major}] = *t
	return nil
}

func (r *thresholdRepo) Get(ctx context.Context, examID int64, major string) (*models.AdmissionThreshold, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.thresholds[examMajor{examID, major}]
	if !ok {
		return nil, apperrors.ErrThresholdNotFound
	}
	return &t, nil
}

type auditRepo Store

func (r *auditRepo) Record(ctx context.Context, entry *models.AuditEntry) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID()
	s.audit = append(s.audit, *entry)
	return nil
}
