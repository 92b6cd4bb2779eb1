package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"probclass/internal/config"
	"probclass/internal/extractor"
	"probclass/internal/modelstore"
	"probclass/internal/names"
	"probclass/internal/predictor"
	"probclass/internal/store"
	"probclass/internal/trainer"
)

// Server is the HTTP API server for probclass.
type Server struct {
	router    chi.Router
	cfg       config.Config
	log       *slog.Logger
	store     *store.Store
	models    *modelstore.Store
	runner    *trainer.Runner
	extractor extractor.Extractor
	predictor *predictor.Predictor
	lookup    *names.Lookup
	metrics   *Metrics
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg config.Config, db *store.Store, models *modelstore.Store, runner *trainer.Runner, ext extractor.Extractor, lookup *names.Lookup, log *slog.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		log:       log,
		store:     db,
		models:    models,
		runner:    runner,
		extractor: ext,
		predictor: predictor.New(models),
		lookup:    lookup,
		metrics:   NewMetrics(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(s.metrics.Middleware)

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// API endpoints; authenticated only when a key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/files", s.handleListFiles)
		r.Post("/api/files", s.handleUploadFile)
		r.Post("/api/preprocess", s.handlePreprocess)
		r.Post("/api/train", s.handleTrain)
		r.Get("/api/train/{jobID}", s.handleTrainStatus)
		r.Post("/api/predict", s.handlePredict)
		r.Get("/api/outcomes", s.handleListOutcomes)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
