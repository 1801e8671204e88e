package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"multitrackscheduling/internal/delivery/http/helpers"
	"multitrackscheduling/internal/domain"
)

// CreateEventRequest is the request body for POST /events. Every rule beyond
// presence of the id and type is enforced by the schedule and reported as an outcome.
type CreateEventRequest struct {
	ID          string            `json:"id"`
	Type        *domain.EventType `json:"type" swaggertype:"string" enums:"NO_SPEAKER,SINGLE_SPEAKER,MULTI_SPEAKER"`
	Capacity    int               `json:"capacity"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	RoomID      string            `json:"room_id"`
	SpeakerIDs  []string          `json:"speaker_ids"`
	AttendeeIDs []string          `json:"attendee_ids"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.ID == "" {
		errs = append(errs, "id is required")
	}
	if c.Type == nil {
		errs = append(errs, "type is required")
	}
	return errs
}

func (c CreateEventRequest) toDomain() domain.EventRequest {
	return domain.EventRequest{
		ID:          c.ID,
		Type:        *c.Type,
		Capacity:    c.Capacity,
		Start:       c.Start,
		End:         c.End,
		RoomID:      c.RoomID,
		SpeakerIDs:  c.SpeakerIDs,
		AttendeeIDs: c.AttendeeIDs,
	}
}

// ModifyCapacityRequest is the request body for PATCH /events/{eventID}/capacity.
type ModifyCapacityRequest struct {
	RoomID   string `json:"room_id"`
	Capacity int    `json:"capacity"`
}

// Validate implements Validator.
func (m ModifyCapacityRequest) Validate() []string {
	if m.RoomID == "" {
		return []string{"room_id is required"}
	}
	return nil
}

// CancelByTypeRequest is the request body for POST /events/cancel/type.
type CancelByTypeRequest struct {
	Type *domain.EventType `json:"type" swaggertype:"string" enums:"NO_SPEAKER,SINGLE_SPEAKER,MULTI_SPEAKER"`
}

// Validate implements Validator.
func (c CancelByTypeRequest) Validate() []string {
	if c.Type == nil {
		return []string{"type is required"}
	}
	return nil
}

// CancelBySizeRequest is the request body for POST /events/cancel/size.
// With greater_or_equal every event whose capacity is at least threshold is
// cancelled; otherwise every event with exactly threshold attendees.
type CancelBySizeRequest struct {
	Threshold      int  `json:"threshold"`
	GreaterOrEqual bool `json:"greater_or_equal"`
}

// EventListResponse is the payload of GET /events.
type EventListResponse = helpers.Page[domain.Event]

// EventListSuccessResponse is the success envelope for GET /events (200).
type EventListSuccessResponse struct {
	Data  EventListResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewEventController(logger *slog.Logger, svc domain.ScheduleService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// ListEvents godoc
// @Summary List events
// @Description Active events ordered by start time. Supports page and page_size query parameters.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.PageOf(r, c.Service.ListEvents(r.Context())))
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=domain.Event}
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		helpers.WriteInternalError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Validates the event against rooms, speakers, attendees and existing bookings. The first violated rule is returned as error.code (e.g. double_book_room).
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event"
// @Success 201 {object} helpers.APIResponse{data=controllers.OutcomeResult}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: event_already_exist, double_book_room, double_book_speaker"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_event_capacity, invalid_time_selection, room_dne, exceeds_room_capacity, num_speakers_mismatch, same_speaker_added, speaker_dne, attendee_dne, attendee_overload"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	o, err := c.Service.CreateEvent(r.Context(), req.toDomain())
	writeOutcome(w, r, c.Logger, c.Service, o, err, req.ID)
}

// writeOutcome answers an event or enrollment mutation, attaching the current
// event on success.
func writeOutcome(w http.ResponseWriter, r *http.Request, logger *slog.Logger, svc domain.ScheduleService, o domain.Outcome, err error, eventID string) {
	persisted, err := persistedFrom(err)
	if err != nil {
		helpers.WriteInternalError(w, r, logger, err)
		return
	}
	if !o.Succeeded() {
		helpers.WriteJSONError(w, outcomeStatus(o), o.Code(), o.String())
		return
	}
	res := OutcomeResult{Outcome: o.Code(), Persisted: persisted}
	if e, err := svc.GetEvent(r.Context(), eventID); err == nil {
		res.Event = &e
	}
	helpers.WriteJSONSuccess(w, outcomeStatus(o), res)
}

// ModifyCapacity godoc
// @Summary Change an event's capacity and room
// @Description Moves the event to room_id with the new capacity. Rejected when the room is unknown, too small, busy at that time, or the capacity is below current occupancy.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body ModifyCapacityRequest true "Target room and capacity"
// @Success 200 {object} helpers.APIResponse{data=controllers.ChangeResult}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/capacity [patch]
func (c *EventController) ModifyCapacity(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	var req ModifyCapacityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, err := c.Service.GetEvent(r.Context(), eventID); errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	ok, err := c.Service.ModifyCapacity(r.Context(), eventID, req.RoomID, req.Capacity)
	writeChange(w, r, c.Logger, ok, err, http.StatusConflict, helpers.ErrCodeConflict, "capacity change rejected")
}

// CancelEvent godoc
// @Summary Cancel an event
// @Description Cancels the event and notifies its speakers and attendees by email.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.ChangeResult}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	ok, err := c.Service.CancelByID(r.Context(), r.PathValue("eventID"))
	writeChange(w, r, c.Logger, ok, err, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
}

// CancelByType godoc
// @Summary Cancel all events of a type
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CancelByTypeRequest true "Event type"
// @Success 200 {object} helpers.APIResponse{data=controllers.ChangeResult} "changed is false when nothing matched"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/cancel/type [post]
func (c *EventController) CancelByType(w http.ResponseWriter, r *http.Request) {
	var req CancelByTypeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ok, err := c.Service.CancelByType(r.Context(), *req.Type)
	writeChange(w, r, c.Logger, ok, err, 0, "", "")
}

// CancelBySize godoc
// @Summary Cancel events by size
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CancelBySizeRequest true "Threshold and comparison"
// @Success 200 {object} helpers.APIResponse{data=controllers.ChangeResult} "changed is false when nothing matched"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/cancel/size [post]
func (c *EventController) CancelBySize(w http.ResponseWriter, r *http.Request) {
	var req CancelBySizeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ok, err := c.Service.CancelBySize(r.Context(), req.Threshold, req.GreaterOrEqual)
	writeChange(w, r, c.Logger, ok, err, 0, "", "")
}
