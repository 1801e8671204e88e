package http

import (
	"log/slog"
	"net/http"

	"multitrackscheduling/internal/delivery/http/controllers"
	"multitrackscheduling/internal/delivery/http/middleware"
	"multitrackscheduling/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the route handlers the router mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Rooms     *controllers.RoomController
	Events    *controllers.EventController
	Attendees *controllers.AttendeeController
	Import    *controllers.ImportController
}

// RouterConfig holds the cross-cutting pieces the router wires around the controllers.
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	Metrics        http.Handler
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes. Everything
// except login, metrics and the API docs requires a bearer token.
func NewRouter(cfg RouterConfig, c Controllers) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, auth(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Rooms
	protected("GET /rooms", c.Rooms.ListRooms)
	protected("POST /rooms", c.Rooms.CreateRoom)
	protected("DELETE /rooms/{roomID}", c.Rooms.DeleteRoom)

	// Events
	protected("GET /events", c.Events.ListEvents)
	protected("POST /events", c.Events.CreateEvent)
	protected("GET /events/{eventID}", c.Events.GetEvent)
	protected("DELETE /events/{eventID}", c.Events.CancelEvent)
	protected("PATCH /events/{eventID}/capacity", c.Events.ModifyCapacity)
	protected("POST /events/cancel/type", c.Events.CancelByType)
	protected("POST /events/cancel/size", c.Events.CancelBySize)

	// Attendees
	protected("POST /events/{eventID}/attendees", c.Attendees.AddAttendee)
	protected("DELETE /events/{eventID}/attendees/{attendeeID}", c.Attendees.RemoveAttendee)
	protected("GET /users/me/schedule", c.Attendees.MySchedule)

	// Import
	protected("POST /import/sessionize/{sessionizeID}", c.Import.ImportSessionize)

	// Ops
	mux.Handle("GET /metrics", cfg.Metrics)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(cfg.Logger, middleware.CORS(cfg.AllowedOrigins, mux))
}
