package domain

import "strings"

// Room is a bookable space with a fixed seat capacity.
// swagger:model Room
type Room struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
}

// NewRoom returns a Room with the given id and capacity.
func NewRoom(id string, capacity int) Room {
	return Room{ID: id, Capacity: capacity}
}

// RoomResult is the outcome of registering a room.
type RoomResult int

const (
	RoomAdded RoomResult = iota
	RoomAlreadyExists
	InvalidRoomCapacity
)

// Code is the lower snake_case form used in API payloads.
func (r RoomResult) Code() string {
	return strings.ToLower(r.String())
}

func (r RoomResult) String() string {
	switch r {
	case RoomAdded:
		return "ROOM_ADDED"
	case RoomAlreadyExists:
		return "ROOM_ALREADY_EXISTS"
	case InvalidRoomCapacity:
		return "INVALID_ROOM_CAPACITY"
	}
	return "UNKNOWN"
}
