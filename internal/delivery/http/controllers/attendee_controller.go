package controllers

import (
	"log/slog"
	"net/http"

	"multitrackscheduling/internal/delivery/http/helpers"
	"multitrackscheduling/internal/delivery/http/middleware"
	"multitrackscheduling/internal/domain"
)

// AddAttendeeRequest is the request body for POST /events/{eventID}/attendees.
type AddAttendeeRequest struct {
	AttendeeID string `json:"attendee_id"`
}

// Validate implements Validator.
func (a AddAttendeeRequest) Validate() []string {
	if a.AttendeeID == "" {
		return []string{"attendee_id is required"}
	}
	return nil
}

// ScheduleSuccessResponse is the success envelope for GET /users/me/schedule (200).
type ScheduleSuccessResponse struct {
	Data  []domain.Event    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewAttendeeController(logger *slog.Logger, svc domain.ScheduleService) *AttendeeController {
	return &AttendeeController{Logger: logger, Service: svc}
}

// AddAttendee godoc
// @Summary Enroll an attendee in an event
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AddAttendeeRequest true "Attendee"
// @Success 200 {object} helpers.APIResponse{data=controllers.OutcomeResult}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: event_dne"
// @Failure 409 {object} helpers.APIResponse "error.code: already_attending, event_full, double_book_attendee"
// @Failure 422 {object} helpers.APIResponse "error.code: attendee_dne"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [post]
func (c *AttendeeController) AddAttendee(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	var req AddAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	o, err := c.Service.AddAttendee(r.Context(), eventID, req.AttendeeID)
	writeOutcome(w, r, c.Logger, c.Service, o, err, eventID)
}

// RemoveAttendee godoc
// @Summary Withdraw an attendee from an event
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param attendeeID path string true "Attendee ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.ChangeResult}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees/{attendeeID} [delete]
func (c *AttendeeController) RemoveAttendee(w http.ResponseWriter, r *http.Request) {
	ok, err := c.Service.RemoveAttendee(r.Context(), r.PathValue("eventID"), r.PathValue("attendeeID"))
	writeChange(w, r, c.Logger, ok, err, http.StatusNotFound, helpers.ErrCodeNotFound, "enrollment not found")
}

// MySchedule godoc
// @Summary Get my schedule
// @Description Events the authenticated user speaks at or attends, ordered by start time.
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ScheduleSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /users/me/schedule [get]
func (c *AttendeeController) MySchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events := c.Service.ScheduleForUser(r.Context(), userID)
	if events == nil {
		events = []domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
