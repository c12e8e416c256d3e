package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/linkedweld/linkedweld-api/internal/middleware"
	"github.com/linkedweld/linkedweld-api/internal/repository"
)

// JobHandler serves the public job board and per-user saved jobs.
type JobHandler struct {
	Jobs JobStore
}

func NewJobHandler(jobs JobStore) *JobHandler { return &JobHandler{Jobs: jobs} }

// List returns active jobs filtered by search text, country, job type and
// welding type, newest first, with limit/offset pagination.
func (h *JobHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	q := repository.JobQuery{
		Search:      strings.TrimSpace(c.QueryParam("search")),
		Country:     strings.TrimSpace(c.QueryParam("country")),
		JobType:     strings.TrimSpace(c.QueryParam("jobType")),
		WeldingType: strings.TrimSpace(c.QueryParam("weldingType")),
		Limit:       limit,
		Offset:      offset,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	jobs, total, err := h.Jobs.Search(ctx, q)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Job search failed")
	}
	return jsonOK(c, http.StatusOK, echo.Map{"jobs": jobs, "total": total})
}

// Detail returns one active job by id.
func (h *JobHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return jsonErr(c, http.StatusNotFound, "Job not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	job, err := h.Jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonErr(c, http.StatusNotFound, "Job not found")
		}
		return jsonErr(c, http.StatusInternalServerError, "Lookup failed")
	}
	return jsonOK(c, http.StatusOK, job)
}

// ToggleSave saves or unsaves a job for the caller.
func (h *JobHandler) ToggleSave(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return jsonErr(c, http.StatusNotFound, "Job not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonErr(c, http.StatusNotFound, "Job not found")
		}
		return jsonErr(c, http.StatusInternalServerError, "Lookup failed")
	}

	saved, err := h.Jobs.ToggleSave(ctx, jobID, userID)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Save failed")
	}
	return jsonOK(c, http.StatusOK, echo.Map{"saved": saved})
}

// Saved lists the caller's saved jobs, most recently saved first.
func (h *JobHandler) Saved(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	jobs, err := h.Jobs.SavedByUser(ctx, userID)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Lookup failed")
	}
	return jsonOK(c, http.StatusOK, jobs)
}
