package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/adfharrison1/go-sortdex/pkg/api"
	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/adfharrison1/go-sortdex/pkg/metrics"
	"github.com/adfharrison1/go-sortdex/pkg/storage"
)

// Config controls what the server wires up at startup.
type Config struct {
	// Metrics enables the Prometheus collectors and GET /metrics.
	Metrics bool
	// Indexes lists "collection:path" specs created before serving.
	Indexes []string
}

// Server holds references to storage, router, etc.
type Server struct {
	router   *mux.Router
	dbEngine *storage.StorageEngine
	metrics  *metrics.Metrics
}

// NewServer creates a new instance of Server.
func NewServer(cfg Config, storageOptions ...storage.StorageOption) (*Server, error) {
	s := &Server{
		router: mux.NewRouter(),
	}

	if cfg.Metrics {
		s.metrics = metrics.New(prometheus.NewRegistry())
		storageOptions = append(storageOptions, storage.WithObserver(s.metrics))
	}
	s.dbEngine = storage.NewStorageEngine(storageOptions...)

	for _, spec := range cfg.Indexes {
		if err := s.ensureIndex(spec); err != nil {
			return nil, err
		}
	}

	// Define HTTP routes
	s.routes()

	// Use the logging middleware for all routes
	s.router.Use(requestLoggerMiddleware)
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})

	return s, nil
}

// requestLoggerMiddleware logs the method, URL path, and duration for each request.
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		log.Printf("INFO: Request %s %s took %s", r.Method, r.URL.Path, elapsed)
	})
}

// ParseIndexSpec splits a "collection:path" spec.
func ParseIndexSpec(spec string) (collection, path string, err error) {
	collection, path, ok := strings.Cut(spec, ":")
	if !ok || collection == "" || path == "" {
		return "", "", fmt.Errorf("invalid index spec %q, want collection:path", spec)
	}
	return collection, path, nil
}

// ensureIndex creates the collection if needed and indexes path in it.
func (s *Server) ensureIndex(spec string) error {
	collection, path, err := ParseIndexSpec(spec)
	if err != nil {
		return err
	}
	if err := s.dbEngine.CreateCollection(collection); err != nil && !errors.Is(err, domain.ErrCollectionExists) {
		return err
	}
	if err := s.dbEngine.CreateIndex(collection, path); err != nil && !errors.Is(err, domain.ErrIndexExists) {
		return err
	}
	return nil
}

// Engine exposes the storage engine.
func (s *Server) Engine() *storage.StorageEngine {
	return s.dbEngine
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}

// routes defines all REST endpoints.
func (s *Server) routes() {
	api.NewHandler(s.dbEngine).RegisterRoutes(s.router)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}
}
