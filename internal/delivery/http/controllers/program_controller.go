package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventscheduling/internal/delivery/http/helpers"
	"eventscheduling/internal/delivery/http/middleware"
	"eventscheduling/internal/domain"
)

// SessionRequest is the request body for POST and PUT session endpoints.
// Times are RFC 3339. Structural rules (title length, time ordering) are
// enforced by the service and reported per field with code validation_failed.
type SessionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Room        string    `json:"room"`
	SpeakerID   string    `json:"speaker_id"`
}

func (s SessionRequest) draft() domain.SessionDraft {
	return domain.SessionDraft{
		Title:       s.Title,
		Description: s.Description,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Room:        s.Room,
		SpeakerID:   s.SpeakerID,
	}
}

// SessionSuccessResponse is the success response envelope for session create
// and update endpoints.
type SessionSuccessResponse struct {
	Data  *domain.Session   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListProgramSuccessResponse is the success response envelope for
// GET /events/{eventID}/sessions (200).
type ListProgramSuccessResponse struct {
	Data  []*domain.Session `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteSessionResponse is the data payload for DELETE /events/{eventID}/sessions/{sessionID} (200).
type DeleteSessionResponse struct {
	Status string `json:"status"`
}

// DeleteSessionSuccessResponse is the success response envelope for DELETE /events/{eventID}/sessions/{sessionID} (200).
type DeleteSessionSuccessResponse struct {
	Data  DeleteSessionResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ProgramController handles the session scheduling endpoints. The schedule
// service performs no authorization, so every mutating handler gates on
// EventService.IsEventAdmin before calling it.
type ProgramController struct {
	Logger    *slog.Logger
	Scheduler domain.ScheduleService
	Events    domain.EventService
}

func NewProgramController(logger *slog.Logger, scheduler domain.ScheduleService, events domain.EventService) *ProgramController {
	return &ProgramController{
		Logger:    logger,
		Scheduler: scheduler,
		Events:    events,
	}
}

// requireEventAdmin checks that the caller administers the event. It writes
// the error response and returns false when the caller may not proceed.
func (c *ProgramController) requireEventAdmin(w http.ResponseWriter, r *http.Request, eventID string) bool {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return false
	}
	isAdmin, err := c.Events.IsEventAdmin(r.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return false
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return false
	}
	if !isAdmin {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
		return false
	}
	return true
}

// writeScheduleError maps scheduling errors to HTTP responses. Validation
// failures carry the violated fields in details; conflicts carry the already
// booked session.
func (c *ProgramController) writeScheduleError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		helpers.WriteJSONErrorDetails(w, http.StatusBadRequest, helpers.ErrCodeValidationFailed, vErr.Error(), vErr.Fields)
		return
	}
	var cErr *domain.SpeakerConflictError
	if errors.As(err, &cErr) {
		helpers.WriteJSONErrorDetails(w, http.StatusConflict, helpers.ErrCodeConflict, cErr.Error(), cErr.Conflicting)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
		return
	}
	if errors.Is(err, domain.ErrForbidden) {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// ListProgram godoc
// @Summary List an event's program
// @Description Returns all sessions of the event ordered by start time. Public, no authentication required.
// @Tags sessions
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListProgramSuccessResponse "data is an array of sessions"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/sessions [get]
func (c *ProgramController) ListProgram(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	sessions, err := c.Scheduler.ListEventProgram(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// CreateSession godoc
// @Summary Schedule a new session
// @Description Validates the session and checks the speaker's calendar for overlapping sessions in this event before committing. Back-to-back sessions are allowed. Caller must be the event owner or an event admin.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param session body SessionRequest true "Session data"
// @Success 201 {object} controllers.SessionSuccessResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed, details lists the violated fields"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner or admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict, details contains the session the speaker is already booked for"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/sessions [post]
func (c *ProgramController) CreateSession(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if !c.requireEventAdmin(w, r, eventID) {
		return
	}
	session, err := c.Scheduler.ScheduleSession(r.Context(), eventID, req.draft(), "")
	if err != nil {
		c.writeScheduleError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, session)
}

// UpdateSession godoc
// @Summary Reschedule or edit a session
// @Description Replaces the session's fields after re-running validation and the speaker conflict check. The session's own current slot is excluded from the check, so shifting a session within its own time range succeeds. Caller must be the event owner or an event admin.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param sessionID path string true "Session ID (UUID)"
// @Param session body SessionRequest true "Session data (full replacement)"
// @Success 200 {object} controllers.SessionSuccessResponse "data contains the updated session"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed, details lists the violated fields"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner or admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or session, or session belongs to another event)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict, details contains the session the speaker is already booked for"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/sessions/{sessionID} [put]
func (c *ProgramController) UpdateSession(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	sessionID := r.PathValue("sessionID")
	if eventID == "" || sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or sessionID")
		return
	}
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if !c.requireEventAdmin(w, r, eventID) {
		return
	}
	session, err := c.Scheduler.ScheduleSession(r.Context(), eventID, req.draft(), sessionID)
	if err != nil {
		c.writeScheduleError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Remove a session from the program
// @Description Deletes the session. Freeing a slot cannot create a conflict, so no conflict check runs. Caller must be the event owner or an event admin.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} controllers.DeleteSessionSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner or admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/sessions/{sessionID} [delete]
func (c *ProgramController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	sessionID := r.PathValue("sessionID")
	if eventID == "" || sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or sessionID")
		return
	}
	if !c.requireEventAdmin(w, r, eventID) {
		return
	}
	if err := c.Scheduler.DeleteSession(r.Context(), eventID, sessionID); err != nil {
		c.writeScheduleError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteSessionResponse{Status: "deleted"})
}
