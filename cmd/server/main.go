package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"eventscheduling/config"
	"eventscheduling/internal/adapters/auth"
	delivery "eventscheduling/internal/delivery/http"
	"eventscheduling/internal/delivery/http/controllers"
	"eventscheduling/internal/delivery/http/middleware"
	"eventscheduling/internal/repository/postgres"
	"eventscheduling/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Event Scheduling API
// @version 1.0
// @description Session scheduling with speaker double-booking prevention for managed events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	adminRepo := postgres.NewEventAdminRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	eventService := services.NewEventService(eventRepo, adminRepo, speakerRepo, serviceTimeout)
	scheduleService := services.NewScheduleService(eventRepo, sessionRepo, serviceTimeout)

	verifier := auth.NewJWTManager(cfg.JWTSecret)
	eventController := controllers.NewEventController(logger, eventService, scheduleService)
	programController := controllers.NewProgramController(logger, scheduleService, eventService)

	mux := delivery.NewRouter(eventController, programController, verifier)
	handler := middleware.Logging(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
