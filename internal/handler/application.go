package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linkedweld/linkedweld-api/internal/middleware"
	"github.com/linkedweld/linkedweld-api/internal/queue"
	"github.com/linkedweld/linkedweld-api/internal/repository"
)

// ApplicationHandler serves job applications.
type ApplicationHandler struct {
	Applications ApplicationStore
	Jobs         JobStore
	Publish      EventPublisher
}

func NewApplicationHandler(apps ApplicationStore, jobs JobStore, publish EventPublisher) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, Jobs: jobs, Publish: publish}
}

type applyReq struct {
	JobID       uint64  `json:"jobId"`
	CoverLetter *string `json:"coverLetter"`
}

// Apply submits an application to a job. A user can apply to a given job
// once; the duplicate surfaces as a conflict.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}
	var req applyReq
	if err := c.Bind(&req); err != nil || req.JobID == 0 {
		return jsonErr(c, http.StatusBadRequest, "Job ID is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	job, err := h.Jobs.GetByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonErr(c, http.StatusNotFound, "Job not found")
		}
		return jsonErr(c, http.StatusInternalServerError, "Lookup failed")
	}

	id, err := h.Applications.Create(ctx, req.JobID, userID, req.CoverLetter)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return jsonErr(c, http.StatusConflict, "Already applied to this job")
		}
		return jsonErr(c, http.StatusInternalServerError, "Application failed")
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.Event{
			Type: queue.TypeApplicationSubmitted,
			ApplicationSubmitted: &queue.ApplicationSubmittedEvent{
				ApplicationID: id,
				UserID:        userID,
				JobID:         job.ID,
				JobTitle:      job.Title,
				Company:       job.Company,
				SubmittedAt:   time.Now().UTC().Format(time.RFC3339),
			},
		})
	}
	return jsonOK(c, http.StatusCreated, echo.Map{"id": id, "status": "applied"})
}

// Mine lists the caller's applications with job data, newest first.
func (h *ApplicationHandler) Mine(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	apps, err := h.Applications.ListByUser(ctx, userID)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Lookup failed")
	}
	return jsonOK(c, http.StatusOK, apps)
}
