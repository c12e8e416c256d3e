package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/linkedweld/linkedweld-api/internal/model"
)

// JobQuery defines filters and pagination for the public job search.
type JobQuery struct {
	Search      string // substring over title, company and description
	Country     string // exact match
	JobType     string // exact match
	WeldingType string // containment in the welding_types list
	Limit       int
	Offset      int
}

// JobRepo reads the `jobs` table and manages per-user saved jobs.
type JobRepo struct{ DB *sql.DB }

func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{DB: db} }

const jobColumns = `id, title, company, location, country, job_type, experience_level,
	welding_types, industry, salary_min, salary_max, currency, description,
	requirements, benefits, certifications, is_active, application_count, posted_at`

// Search returns active jobs matching q, newest first, plus the unpaginated
// match count. The welding-type filter matches the JSON-encoded list
// column by quoted-substring, which is exact for exact type names.
func (r *JobRepo) Search(ctx context.Context, q JobQuery) ([]model.Job, int64, error) {
	where := []string{"is_active = 1"}
	args := []any{}

	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(company) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if q.Country != "" {
		where = append(where, "country = ?")
		args = append(args, q.Country)
	}
	if q.JobType != "" {
		where = append(where, "job_type = ?")
		args = append(args, q.JobType)
	}
	if q.WeldingType != "" {
		where = append(where, "welding_types LIKE ?")
		args = append(args, `%"`+q.WeldingType+`"%`)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM jobs WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + jobColumns + " FROM jobs WHERE " + cond +
		" ORDER BY posted_at DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Job, 0, q.Limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches an active job; inactive postings are treated as absent.
func (r *JobRepo) GetByID(ctx context.Context, id uint64) (model.Job, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+jobColumns+" FROM jobs WHERE id=? AND is_active=1 LIMIT 1", id)
	if err != nil {
		return model.Job{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Job{}, err
		}
		return model.Job{}, ErrNotFound
	}
	return scanJob(rows)
}

// ToggleSave saves the job for the user, or removes the save if one
// already exists. Returns the resulting saved state.
func (r *JobRepo) ToggleSave(ctx context.Context, jobID, userID uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM saved_jobs WHERE job_id=? AND user_id=?", jobID, userID)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return false, err
	} else if n > 0 {
		return false, nil
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO saved_jobs (job_id, user_id) VALUES (?,?)", jobID, userID)
	if err != nil {
		if isDupKey(err) {
			// Concurrent save beat us; the job is saved either way.
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// SavedByUser returns the user's saved jobs joined with job data, most
// recently saved first.
func (r *JobRepo) SavedByUser(ctx context.Context, userID uint64) ([]model.SavedJob, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT j.id, j.title, j.company, j.location, j.country, j.job_type,
			j.experience_level, j.welding_types, j.industry, j.salary_min, j.salary_max,
			j.currency, j.description, j.requirements, j.benefits, j.certifications,
			j.is_active, j.application_count, j.posted_at, s.created_at
		FROM saved_jobs s
		JOIN jobs j ON j.id = s.job_id
		WHERE s.user_id = ?
		ORDER BY s.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SavedJob{}
	for rows.Next() {
		var (
			sj                       model.SavedJob
			types, reqs, bens, certs string
		)
		if err := rows.Scan(&sj.ID, &sj.Title, &sj.Company, &sj.Location, &sj.Country,
			&sj.JobType, &sj.ExperienceLevel, &types, &sj.Industry, &sj.SalaryMin,
			&sj.SalaryMax, &sj.Currency, &sj.Description, &reqs, &bens, &certs,
			&sj.IsActive, &sj.ApplicationCount, &sj.PostedAt, &sj.SavedAt); err != nil {
			return nil, err
		}
		sj.WeldingTypes = decodeList(types)
		sj.Requirements = decodeList(reqs)
		sj.Benefits = decodeList(bens)
		sj.Certifications = decodeList(certs)
		out = append(out, sj)
	}
	return out, rows.Err()
}

func scanJob(rows *sql.Rows) (model.Job, error) {
	var (
		j                        model.Job
		types, reqs, bens, certs string
	)
	err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Country,
		&j.JobType, &j.ExperienceLevel, &types, &j.Industry, &j.SalaryMin,
		&j.SalaryMax, &j.Currency, &j.Description, &reqs, &bens, &certs,
		&j.IsActive, &j.ApplicationCount, &j.PostedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Job{}, ErrNotFound
	}
	if err != nil {
		return model.Job{}, err
	}
	j.WeldingTypes = decodeList(types)
	j.Requirements = decodeList(reqs)
	j.Benefits = decodeList(bens)
	j.Certifications = decodeList(certs)
	return j, nil
}
