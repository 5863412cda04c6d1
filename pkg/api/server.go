package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/swipeduel/pkg/api/handlers"
	"github.com/cbodonnell/swipeduel/pkg/api/middleware"
	"github.com/cbodonnell/swipeduel/pkg/log"
	"github.com/cbodonnell/swipeduel/pkg/repositories"
	"github.com/cbodonnell/swipeduel/pkg/state"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
}

type NewAPIServerOptions struct {
	Port         int
	StateManager state.StateManager
	// Repository is optional; the result routes are only served when it is set
	Repository repositories.Repository
}

// NewRouter returns the API routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger, middleware.CORS)

	router.HandleFunc("/state", handlers.HandleGetState(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	if opts.Repository != nil {
		router.HandleFunc("/results", handlers.HandleListResults(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
		router.HandleFunc("/results/{roundID}", handlers.HandleGetResult(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	}
	return router
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	log.Info("API server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
