package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"microservice-loadtest/internal/config"
	"microservice-loadtest/internal/logger"
	"microservice-loadtest/internal/metrics"
)

type Server struct {
	router  *mux.Router
	config  *config.ServerConfig
	handler *Handlers
}

func NewServer(cfg *config.ServerConfig, logger *logger.Logger) *Server {
	store := metrics.NewStore(cfg.MetricDecimalPlaces, Endpoints...)
	handler := NewHandlers(store, cfg.MaxRandomNumber, logger)
	router := mux.NewRouter()

	// Register routes
	router.HandleFunc("/health", handler.HandleHealth).Methods("GET")
	router.HandleFunc("/ready", handler.HandleReady).Methods("GET")
	router.HandleFunc("/payload", handler.HandlePayload).Methods("GET")
	router.HandleFunc("/metrics", handler.HandleMetrics).Methods("GET")

	return &Server{
		router:  router,
		config:  cfg,
		handler: handler,
	}
}

// Handler returns the router wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	return corsHandler.Handler(s.router)
}

func (s *Server) Start() error {
	srv := &http.Server{
		Handler:      s.Handler(),
		Addr:         s.config.ServerPort,
		WriteTimeout: s.config.WriteTimeout,
		ReadTimeout:  s.config.ReadTimeout,
	}

	return srv.ListenAndServe()
}
