package model

import "time"

// Application mirrors the `applications` table.
type Application struct {
	ID          uint64    `json:"id"`
	JobID       uint64    `json:"jobId"`
	UserID      uint64    `json:"userId"`
	Status      string    `json:"status"`
	CoverLetter *string   `json:"coverLetter"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ApplicationWithJob is an application joined with enough job data for the
// applications list view.
type ApplicationWithJob struct {
	Application
	JobTitle        string   `json:"jobTitle"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Country         string   `json:"country"`
	JobType         string   `json:"jobType"`
	JobWeldingTypes []string `json:"jobWeldingTypes"`
}
