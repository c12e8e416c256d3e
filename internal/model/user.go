package model

import "time"

// User mirrors the `users` table. JSON tags shape the API payload:
// credential and verification fields are never serialized, so handlers can
// return the struct directly without leaking the password hash or the
// pending verification code.
type User struct {
	ID                 uint64     `json:"id"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Phone              *string    `json:"phone"`
	Role               string     `json:"role"`
	Subscription       string     `json:"subscription"`
	IsVerified         bool       `json:"isVerified"`
	VerificationCode   *string    `json:"-"`
	VerificationExpiry *time.Time `json:"-"`
	ProfileHeadline    *string    `json:"profileHeadline"`
	Bio                *string    `json:"bio"`
	Location           *string    `json:"location"`
	Nationality        *string    `json:"nationality"`
	WeldingTypes       []string   `json:"weldingTypes"`
	ExperienceYears    *int       `json:"experienceYears"`
	Certifications     []string   `json:"certifications"`
	AvailableFrom      *string    `json:"availableFrom"`
	WillingToRelocate  bool       `json:"willingToRelocate"`
	PreferredCountries []string   `json:"preferredCountries"`
	AvatarURL          *string    `json:"avatarUrl"`
	ResumeURL          *string    `json:"resumeUrl"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// ProfileUpdate carries the mutable profile fields for PUT /auth/me. Nil
// means "leave unchanged"; list-valued fields are replaced wholesale. The
// set of non-nil fields is the allow-list: anything else in the request
// body is ignored by JSON decoding.
type ProfileUpdate struct {
	FirstName          *string   `json:"firstName"`
	LastName           *string   `json:"lastName"`
	Phone              *string   `json:"phone"`
	ProfileHeadline    *string   `json:"profileHeadline"`
	Bio                *string   `json:"bio"`
	Location           *string   `json:"location"`
	Nationality        *string   `json:"nationality"`
	WeldingTypes       *[]string `json:"weldingTypes"`
	ExperienceYears    *int      `json:"experienceYears"`
	Certifications     *[]string `json:"certifications"`
	AvailableFrom      *string   `json:"availableFrom"`
	WillingToRelocate  *bool     `json:"willingToRelocate"`
	PreferredCountries *[]string `json:"preferredCountries"`
}

// Empty reports whether the update carries no recognized field.
func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil &&
		p.ProfileHeadline == nil && p.Bio == nil && p.Location == nil &&
		p.Nationality == nil && p.WeldingTypes == nil && p.ExperienceYears == nil &&
		p.Certifications == nil && p.AvailableFrom == nil &&
		p.WillingToRelocate == nil && p.PreferredCountries == nil
}

// RefreshToken models a row in `refresh_tokens`. The token string is stored
// verbatim and looked up by exact match; rotation deletes the row.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
