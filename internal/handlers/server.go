package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"tvbridge/internal/config"
	"tvbridge/internal/core"
)

type Server struct {
	snap       *config.Snapshot
	logger     zerolog.Logger
	httpServer *http.Server
	apiHandler *APIHandler
}

func NewServer(snap *config.Snapshot, provider *core.Provider, logger zerolog.Logger) *Server {
	return &Server{
		snap:       snap,
		logger:     logger.With().Str("component", "http").Logger(),
		apiHandler: NewAPIHandler(provider, snap, logger),
	}
}

func (s *Server) router() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestID, s.accessLog, measure)

	router.HandleFunc("/", s.apiHandler.Manifest).Methods("GET")
	router.HandleFunc("/health", s.apiHandler.Health).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	library := router.PathPrefix("/library").Subrouter()
	library.HandleFunc("/metadata/{ratingKey}", s.apiHandler.GetMetadata).Methods("GET")
	library.HandleFunc("/metadata/{ratingKey}/children", s.apiHandler.GetChildren).Methods("GET")
	library.HandleFunc("/metadata/{ratingKey}/grandchildren", s.apiHandler.GetGrandchildren).Methods("GET")
	library.HandleFunc("/metadata/{ratingKey}/images", s.apiHandler.GetImages).Methods("GET")
	library.HandleFunc("/matches", s.apiHandler.Matches).Methods("GET")

	return router
}

func (s *Server) Start() error {
	port := s.snap.Get().App.Port
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info().Int("port", port).Msg("starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
