package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/linkedweld/linkedweld-api/internal/model"
	"github.com/linkedweld/linkedweld-api/internal/repository"
)

// invoke runs a handler against a synthetic request. Path parameters are
// given as alternating name/value pairs; a non-zero userID is placed in
// the context the way the auth middleware would.
func invoke(t *testing.T, h echo.HandlerFunc, method, target, body string, userID uint64, params ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	require.NoError(t, h(c))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

// In-memory stores backing the handler tests. They implement the same
// contracts as the MySQL repositories, including the duplicate-key and
// not-found errors the handlers branch on.

type memUsers struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uint64]model.User{}}
}

func (s *memUsers) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now().UTC()
	if u.WeldingTypes == nil {
		u.WeldingTypes = []string{}
	}
	if u.Certifications == nil {
		u.Certifications = []string{}
	}
	if u.PreferredCountries == nil {
		u.PreferredCountries = []string{}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *memUsers) MarkVerified(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsVerified = true
	u.VerificationCode = nil
	u.VerificationExpiry = nil
	s.users[id] = u
	return nil
}

func (s *memUsers) UpdateProfile(_ context.Context, id uint64, p model.ProfileUpdate) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.ProfileHeadline != nil {
		u.ProfileHeadline = p.ProfileHeadline
	}
	if p.Bio != nil {
		u.Bio = p.Bio
	}
	if p.Location != nil {
		u.Location = p.Location
	}
	if p.Nationality != nil {
		u.Nationality = p.Nationality
	}
	if p.WeldingTypes != nil {
		u.WeldingTypes = *p.WeldingTypes
	}
	if p.ExperienceYears != nil {
		u.ExperienceYears = p.ExperienceYears
	}
	if p.Certifications != nil {
		u.Certifications = *p.Certifications
	}
	if p.AvailableFrom != nil {
		u.AvailableFrom = p.AvailableFrom
	}
	if p.WillingToRelocate != nil {
		u.WillingToRelocate = *p.WillingToRelocate
	}
	if p.PreferredCountries != nil {
		u.PreferredCountries = *p.PreferredCountries
	}
	s.users[id] = u
	return u, nil
}

type memTokens struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[string]model.RefreshToken
}

func newMemTokens() *memTokens {
	return &memTokens{rows: map[string]model.RefreshToken{}}
}

func (s *memTokens) Insert(_ context.Context, userID uint64, token string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.rows[token] = model.RefreshToken{
		ID:        s.nextID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: exp,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (s *memTokens) Find(_ context.Context, token string) (model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.rows[token]
	if !ok {
		return model.RefreshToken{}, repository.ErrTokenNotFound
	}
	return t, nil
}

func (s *memTokens) Delete(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[token]
	delete(s.rows, token)
	return ok, nil
}

func (s *memTokens) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type memJobs struct {
	mu    sync.Mutex
	jobs  map[uint64]model.Job
	saved map[uint64]map[uint64]time.Time // userID -> jobID -> saved at
}

func newMemJobs(jobs ...model.Job) *memJobs {
	s := &memJobs{jobs: map[uint64]model.Job{}, saved: map[uint64]map[uint64]time.Time{}}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	return s
}

func (s *memJobs) Search(_ context.Context, q repository.JobQuery) ([]model.Job, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []model.Job{}
	for _, j := range s.jobs {
		if !j.IsActive {
			continue
		}
		if q.Country != "" && j.Country != q.Country {
			continue
		}
		if q.JobType != "" && j.JobType != q.JobType {
			continue
		}
		matched = append(matched, j)
	}
	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []model.Job{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func (s *memJobs) GetByID(_ context.Context, id uint64) (model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok || !j.IsActive {
		return model.Job{}, repository.ErrNotFound
	}
	return j, nil
}

func (s *memJobs) ToggleSave(_ context.Context, jobID, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved[userID] == nil {
		s.saved[userID] = map[uint64]time.Time{}
	}
	if _, ok := s.saved[userID][jobID]; ok {
		delete(s.saved[userID], jobID)
		return false, nil
	}
	s.saved[userID][jobID] = time.Now().UTC()
	return true, nil
}

func (s *memJobs) SavedByUser(_ context.Context, userID uint64) ([]model.SavedJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.SavedJob{}
	for jobID, at := range s.saved[userID] {
		out = append(out, model.SavedJob{Job: s.jobs[jobID], SavedAt: at})
	}
	return out, nil
}

type appKey struct{ jobID, userID uint64 }

type memApps struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[appKey]model.Application
	jobs   *memJobs
}

func newMemApps(jobs *memJobs) *memApps {
	return &memApps{rows: map[appKey]model.Application{}, jobs: jobs}
}

func (s *memApps) Create(_ context.Context, jobID, userID uint64, coverLetter *string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := appKey{jobID, userID}
	if _, ok := s.rows[k]; ok {
		return 0, repository.ErrDuplicate
	}
	s.nextID++
	s.rows[k] = model.Application{
		ID:          s.nextID,
		JobID:       jobID,
		UserID:      userID,
		Status:      "applied",
		CoverLetter: coverLetter,
		CreatedAt:   time.Now().UTC(),
	}
	return s.nextID, nil
}

func (s *memApps) ListByUser(_ context.Context, userID uint64) ([]model.ApplicationWithJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.ApplicationWithJob{}
	for k, a := range s.rows {
		if k.userID != userID {
			continue
		}
		job := s.jobs.jobs[k.jobID]
		out = append(out, model.ApplicationWithJob{
			Application:     a,
			JobTitle:        job.Title,
			Company:         job.Company,
			Location:        job.Location,
			Country:         job.Country,
			JobType:         job.JobType,
			JobWeldingTypes: job.WeldingTypes,
		})
	}
	return out, nil
}

type memNotes struct {
	mu     sync.Mutex
	nextID uint64
	rows   []model.Notification
}

func newMemNotes() *memNotes { return &memNotes{} }

func (s *memNotes) Insert(_ context.Context, userID uint64, ntype, title, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.rows = append(s.rows, model.Notification{
		ID:        s.nextID,
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (s *memNotes) ListByUser(_ context.Context, userID uint64, limit int) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Notification{}
	for i := len(s.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if s.rows[i].UserID == userID {
			out = append(out, s.rows[i])
		}
	}
	return out, nil
}

func (s *memNotes) UnreadCount(_ context.Context, userID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.rows {
		if r.UserID == userID && !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *memNotes) MarkRead(_ context.Context, id, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if r.ID == id && r.UserID == userID {
			s.rows[i].IsRead = true
		}
	}
	return nil
}

func (s *memNotes) MarkAllRead(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if r.UserID == userID {
			s.rows[i].IsRead = true
		}
	}
	return nil
}
