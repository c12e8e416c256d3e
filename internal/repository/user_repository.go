package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/linkedweld/linkedweld-api/internal/model"
)

// UserRepo persists user records in the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, email, password_hash, first_name, last_name, phone, role,
	subscription, is_verified, verification_code, verification_expires_at,
	profile_headline, bio, location, nationality, welding_types, experience_years,
	certifications, available_from, willing_to_relocate, preferred_countries,
	avatar_url, resume_url, created_at`

// Create inserts a new user. Uniqueness of the email is enforced by the
// database index, so two concurrent registrations cannot both succeed; the
// loser gets ErrEmailExists. The caller supplies the already-hashed
// password. On success the assigned ID and creation time are written back
// into u.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, phone, role,
			subscription, is_verified, verification_code, verification_expires_at,
			welding_types, certifications, preferred_countries, willing_to_relocate, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role,
		u.Subscription, u.IsVerified, u.VerificationCode, u.VerificationExpiry,
		encodeList(u.WeldingTypes), encodeList(u.Certifications),
		encodeList(u.PreferredCountries), u.WillingToRelocate, now)
	if err != nil {
		if isDupKey(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	u.CreatedAt = now
	if u.WeldingTypes == nil {
		u.WeldingTypes = []string{}
	}
	if u.Certifications == nil {
		u.Certifications = []string{}
	}
	if u.PreferredCountries == nil {
		u.PreferredCountries = []string{}
	}
	return nil
}

// GetByEmail fetches a user by exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
	return scanUser(row)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	return scanUser(row)
}

// MarkVerified flips is_verified and clears the pending code and its
// expiry in one statement. Verification is never reset afterwards.
func (r *UserRepo) MarkVerified(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_verified=1, verification_code=NULL, verification_expires_at=NULL WHERE id=?",
		id)
	return err
}

// UpdateProfile applies the non-nil fields of p and returns the updated
// user. List-valued fields replace the stored list wholesale. Callers must
// reject an empty update before calling.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, p model.ProfileUpdate) (model.User, error) {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}

	if p.FirstName != nil {
		add("first_name", *p.FirstName)
	}
	if p.LastName != nil {
		add("last_name", *p.LastName)
	}
	if p.Phone != nil {
		add("phone", *p.Phone)
	}
	if p.ProfileHeadline != nil {
		add("profile_headline", *p.ProfileHeadline)
	}
	if p.Bio != nil {
		add("bio", *p.Bio)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Nationality != nil {
		add("nationality", *p.Nationality)
	}
	if p.WeldingTypes != nil {
		add("welding_types", encodeList(*p.WeldingTypes))
	}
	if p.ExperienceYears != nil {
		add("experience_years", *p.ExperienceYears)
	}
	if p.Certifications != nil {
		add("certifications", encodeList(*p.Certifications))
	}
	if p.AvailableFrom != nil {
		add("available_from", *p.AvailableFrom)
	}
	if p.WillingToRelocate != nil {
		add("willing_to_relocate", *p.WillingToRelocate)
	}
	if p.PreferredCountries != nil {
		add("preferred_countries", encodeList(*p.PreferredCountries))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id=?", args...); err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u                                       model.User
		phone, code, headline, bio, location    sql.NullString
		nationality, availableFrom, avatar, cv  sql.NullString
		weldTypes, certs, countries             string
		expYears                                sql.NullInt64
		codeExpiry                              sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&phone, &u.Role, &u.Subscription, &u.IsVerified, &code, &codeExpiry,
		&headline, &bio, &location, &nationality, &weldTypes, &expYears,
		&certs, &availableFrom, &u.WillingToRelocate, &countries, &avatar, &cv,
		&u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}

	u.Phone = optString(phone)
	u.VerificationCode = optString(code)
	u.ProfileHeadline = optString(headline)
	u.Bio = optString(bio)
	u.Location = optString(location)
	u.Nationality = optString(nationality)
	u.AvailableFrom = optString(availableFrom)
	u.AvatarURL = optString(avatar)
	u.ResumeURL = optString(cv)
	u.WeldingTypes = decodeList(weldTypes)
	u.Certifications = decodeList(certs)
	u.PreferredCountries = decodeList(countries)
	if expYears.Valid {
		n := int(expYears.Int64)
		u.ExperienceYears = &n
	}
	if codeExpiry.Valid {
		t := codeExpiry.Time
		u.VerificationExpiry = &t
	}
	return u, nil
}

func optString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
