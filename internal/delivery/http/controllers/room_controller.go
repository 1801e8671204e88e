package controllers

import (
	"log/slog"
	"net/http"

	"multitrackscheduling/internal/delivery/http/helpers"
	"multitrackscheduling/internal/domain"
)

// CreateRoomRequest is the request body for POST /rooms.
type CreateRoomRequest struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
}

// Validate implements Validator. Capacity bounds are checked by the schedule.
func (c CreateRoomRequest) Validate() []string {
	var errs []string
	if c.ID == "" {
		errs = append(errs, "id is required")
	}
	return errs
}

// RoomResultResponse is the payload of POST /rooms (201).
// swagger:model RoomResultResponse
type RoomResultResponse struct {
	Result    string      `json:"result"`
	Room      domain.Room `json:"room"`
	Persisted bool        `json:"persisted"`
}

// RoomsSuccessResponse is the success envelope for GET /rooms (200).
type RoomsSuccessResponse struct {
	Data  []domain.Room     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RoomController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewRoomController(logger *slog.Logger, svc domain.ScheduleService) *RoomController {
	return &RoomController{Logger: logger, Service: svc}
}

// ListRooms godoc
// @Summary List rooms
// @Description Returns every registered room in registration order.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.RoomsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /rooms [get]
func (c *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.ListRooms(r.Context()))
}

// CreateRoom godoc
// @Summary Register a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room body CreateRoomRequest true "Room id and capacity"
// @Success 201 {object} helpers.APIResponse{data=controllers.RoomResultResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: room_already_exists"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_room_capacity"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.AddRoom(r.Context(), req.ID, req.Capacity)
	persisted, err := persistedFrom(err)
	if err != nil {
		helpers.WriteInternalError(w, r, c.Logger, err)
		return
	}
	if res != domain.RoomAdded {
		helpers.WriteJSONError(w, roomResultStatus(res), res.Code(), res.String())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RoomResultResponse{
		Result:    res.Code(),
		Room:      domain.NewRoom(req.ID, req.Capacity),
		Persisted: persisted,
	})
}

// DeleteRoom godoc
// @Summary Remove a room
// @Description Removes a room that no active event uses.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param roomID path string true "Room ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.ChangeResult}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (room in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{roomID} [delete]
func (c *RoomController) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")
	if !c.roomExists(r, roomID) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "room not found")
		return
	}
	ok, err := c.Service.RemoveRoom(r.Context(), roomID)
	writeChange(w, r, c.Logger, ok, err, http.StatusConflict, helpers.ErrCodeConflict, "room has scheduled events")
}

func (c *RoomController) roomExists(r *http.Request, id string) bool {
	for _, room := range c.Service.ListRooms(r.Context()) {
		if room.ID == id {
			return true
		}
	}
	return false
}
