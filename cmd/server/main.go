package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"metro-ticketing-platform/internal/config"
	"metro-ticketing-platform/internal/database"
	"metro-ticketing-platform/internal/handlers"
	"metro-ticketing-platform/internal/middleware"
	"metro-ticketing-platform/internal/observability/metrics"
	"metro-ticketing-platform/internal/repositories"
	"metro-ticketing-platform/internal/services"
	"metro-ticketing-platform/internal/stations"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Build the station directory once at startup; it is shared
	// read-only across all handlers.
	directory, err := stations.Load(cfg.Stations.File)
	if err != nil {
		log.Fatalf("Failed to load station directory: %v", err)
	}
	log.Printf("Station directory loaded with %d stations", directory.Count())

	// Initialize the ticket store. When Postgres is unreachable the
	// server falls back to the in-memory store so the API stays usable
	// for local development.
	ticketRepo, db := buildTicketStore(cfg)
	if db != nil {
		defer db.Close()
	}

	ticketService := services.NewTicketService(ticketRepo, directory)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	stationHandler := handlers.NewStationHandler(directory)

	router := setupRouter(cfg, stationHandler, ticketHandler)

	srv := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func buildTicketStore(cfg *config.Config) (services.TicketRepository, *database.DB) {
	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Printf("Warning: Failed to connect to database: %v", err)
		log.Println("Continuing with the in-memory ticket store...")
		return repositories.NewMemoryTicketRepository(), nil
	}
	log.Println("Database connection established successfully")

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	metrics.RegisterDBMetrics(db.DB, log.Default())
	return repositories.NewTicketRepository(db.DB), db
}

func setupRouter(cfg *config.Config, stationHandler *handlers.StationHandler, ticketHandler *handlers.TicketHandler) *chi.Mux {
	router := chi.NewRouter()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORS.AllowedOrigins

	router.Use(middleware.ErrorHandlingMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.CORSMiddleware(corsConfig))
	router.Use(metrics.Instrument)

	router.Get("/health", handlers.Health)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/stations", stationHandler.ListStations)
		r.Get("/stations/{name}", stationHandler.GetStation)

		r.Route("/tickets", func(r chi.Router) {
			r.Post("/calculate-price", ticketHandler.CalculatePrice)
			r.Post("/book", ticketHandler.BookTicket)
			r.Post("/enter-station", ticketHandler.EnterStation)
			r.Post("/exit-station", ticketHandler.ExitStation)
			r.Get("/{ticketId}", ticketHandler.GetTicket)
		})
	})

	router.NotFound(middleware.NotFoundHandler().ServeHTTP)
	router.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	return router
}
