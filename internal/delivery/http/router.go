package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventscheduling/internal/delivery/http/controllers"
	"eventscheduling/internal/delivery/http/middleware"
	"eventscheduling/internal/domain"

	_ "eventscheduling/docs"
)

// NewRouter initializes the HTTP router with all application routes.
// Program and speaker listings are public; everything else requires a Bearer token.
func NewRouter(
	eventController *controllers.EventController,
	programController *controllers.ProgramController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/me", auth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEventByID))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))

	// Event admins
	mux.HandleFunc("POST /events/{eventID}/admins", auth(eventController.AddEventAdmin))
	mux.HandleFunc("DELETE /events/{eventID}/admins/{userID}", auth(eventController.RemoveEventAdmin))

	// Speakers
	mux.HandleFunc("POST /events/{eventID}/speakers", auth(eventController.CreateSpeaker))
	mux.HandleFunc("GET /events/{eventID}/speakers", eventController.ListEventSpeakers)

	// Sessions
	mux.HandleFunc("GET /events/{eventID}/sessions", programController.ListProgram)
	mux.HandleFunc("POST /events/{eventID}/sessions", auth(programController.CreateSession))
	mux.HandleFunc("PUT /events/{eventID}/sessions/{sessionID}", auth(programController.UpdateSession))
	mux.HandleFunc("DELETE /events/{eventID}/sessions/{sessionID}", auth(programController.DeleteSession))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
