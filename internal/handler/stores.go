package handler

import (
	"context"
	"time"

	"github.com/linkedweld/linkedweld-api/internal/model"
	"github.com/linkedweld/linkedweld-api/internal/repository"
)

// Handlers depend on store interfaces rather than the concrete MySQL
// repositories, so tests can inject isolated in-memory stores. The
// repository types satisfy these without adaptation.

// UserStore persists user records.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	MarkVerified(ctx context.Context, id uint64) error
	UpdateProfile(ctx context.Context, id uint64, p model.ProfileUpdate) (model.User, error)
}

// TokenStore persists refresh tokens by exact token string.
type TokenStore interface {
	Insert(ctx context.Context, userID uint64, token string, exp time.Time) error
	Find(ctx context.Context, token string) (model.RefreshToken, error)
	Delete(ctx context.Context, token string) (bool, error)
}

// JobStore reads job postings and manages saved jobs.
type JobStore interface {
	Search(ctx context.Context, q repository.JobQuery) ([]model.Job, int64, error)
	GetByID(ctx context.Context, id uint64) (model.Job, error)
	ToggleSave(ctx context.Context, jobID, userID uint64) (bool, error)
	SavedByUser(ctx context.Context, userID uint64) ([]model.SavedJob, error)
}

// ApplicationStore persists job applications.
type ApplicationStore interface {
	Create(ctx context.Context, jobID, userID uint64, coverLetter *string) (uint64, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.ApplicationWithJob, error)
}

// NotificationStore reads and mutates per-user notifications.
type NotificationStore interface {
	ListByUser(ctx context.Context, userID uint64, limit int) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, id, userID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
}
