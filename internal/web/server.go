package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/database"
	"github.com/fittrack/fittrack/internal/web/handlers"
	"github.com/fittrack/fittrack/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	db         *database.DB
	port       int
	bind       string
	allowedNet *net.IPNet
	router     *chi.Mux
	handlers   *handlers.Handlers
}

// NewServer creates a new web server
func NewServer(db *database.DB, loader *config.Loader, port int, bind string, allowedNet *net.IPNet) *Server {
	s := &Server{
		db:         db,
		port:       port,
		bind:       bind,
		allowedNet: allowedNet,
		router:     chi.NewRouter(),
		handlers:   handlers.New(db, loader),
	}

	s.setupRoutes()

	return s
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router
	h := s.handlers

	// Global middleware
	r.Use(chimiddleware.RequestID)
	// AllowSubnet must come BEFORE RealIP so we check the actual connection source
	r.Use(middleware.AllowSubnet(s.allowedNet))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Public routes: profile management and active-user selection
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.SaveUser)
			r.Get("/lookup", h.LookupUser)
			r.Get("/{id}", h.GetUser)
		})

		r.Post("/session", h.SessionCreate)

		// Scoped routes: everything below acts as the session's user
		r.Group(func(r chi.Router) {
			r.Use(middleware.ActiveUser(s.db, h.SessionTTL()))

			r.Get("/session", h.SessionCurrent)
			r.Delete("/session", h.SessionDelete)

			r.Route("/friends", func(r chi.Router) {
				r.Get("/", h.ListFriends)
				r.Post("/", h.AddFriend)
				r.Delete("/{id}", h.RemoveFriend)
			})

			r.Route("/workouts", func(r chi.Router) {
				r.Get("/", h.ListWorkouts)
				r.Post("/", h.LogWorkout)
				r.Delete("/{id}", h.DeleteWorkout)

				r.Route("/{id}/exercises", func(r chi.Router) {
					r.Get("/", h.ListExercises)
					r.Post("/", h.AddExercise)
					r.Delete("/{exerciseID}", h.DeleteExercise)
				})
			})

			r.Route("/goals", func(r chi.Router) {
				r.Get("/", h.ListGoals)
				r.Post("/", h.CreateGoal)
				r.Post("/{id}/completed", h.SetGoalCompleted)
				r.Delete("/{id}", h.DeleteGoal)
			})

			r.Get("/leaderboard", h.Leaderboard)
			r.Get("/insights", h.Insights)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)
		})
	})
}

// Start starts the web server
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.bind != "" {
		addr = fmt.Sprintf("%s:%d", s.bind, s.port)
	} else {
		addr = fmt.Sprintf(":%d", s.port)
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
