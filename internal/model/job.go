package model

import "time"

// Job mirrors the `jobs` table. List-valued columns are stored as JSON text
// and decoded by the repository.
type Job struct {
	ID               uint64    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Country          string    `json:"country"`
	JobType          string    `json:"jobType"`
	ExperienceLevel  string    `json:"experienceLevel"`
	WeldingTypes     []string  `json:"weldingTypes"`
	Industry         string    `json:"industry"`
	SalaryMin        int       `json:"salaryMin"`
	SalaryMax        int       `json:"salaryMax"`
	Currency         string    `json:"currency"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Benefits         []string  `json:"benefits"`
	Certifications   []string  `json:"certifications"`
	IsActive         bool      `json:"isActive"`
	ApplicationCount int       `json:"applicationCount"`
	PostedAt         time.Time `json:"postedAt"`
}

// SavedJob is a job joined with the moment the caller saved it.
type SavedJob struct {
	Job
	SavedAt time.Time `json:"savedAt"`
}
