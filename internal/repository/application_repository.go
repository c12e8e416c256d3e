package repository

import (
	"context"
	"database/sql"

	"github.com/linkedweld/linkedweld-api/internal/model"
)

// ApplicationRepo persists job applications. A unique index on
// (job_id, user_id) enforces the one-application-per-job rule.
type ApplicationRepo struct{ DB *sql.DB }

func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{DB: db} }

// Create inserts an application with status "applied" and bumps the job's
// application counter. A duplicate application returns ErrDuplicate.
func (r *ApplicationRepo) Create(ctx context.Context, jobID, userID uint64, coverLetter *string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO applications (job_id, user_id, status, cover_letter) VALUES (?,?,'applied',?)",
		jobID, userID, coverLetter)
	if err != nil {
		if isDupKey(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	// Counter update is best-effort bookkeeping; the application row is the
	// source of truth.
	_, _ = r.DB.ExecContext(ctx,
		"UPDATE jobs SET application_count = application_count + 1 WHERE id=?", jobID)
	return uint64(id), nil
}

// ListByUser returns the user's applications joined with job data, newest
// first.
func (r *ApplicationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.ApplicationWithJob, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.job_id, a.user_id, a.status, a.cover_letter, a.created_at,
			j.title, j.company, j.location, j.country, j.job_type, j.welding_types
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.user_id = ?
		ORDER BY a.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ApplicationWithJob{}
	for rows.Next() {
		var (
			a     model.ApplicationWithJob
			cover sql.NullString
			types string
		)
		if err := rows.Scan(&a.ID, &a.JobID, &a.UserID, &a.Status, &cover, &a.CreatedAt,
			&a.JobTitle, &a.Company, &a.Location, &a.Country, &a.JobType, &types); err != nil {
			return nil, err
		}
		a.CoverLetter = optString(cover)
		a.JobWeldingTypes = decodeList(types)
		out = append(out, a)
	}
	return out, rows.Err()
}
