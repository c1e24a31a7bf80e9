package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"postfeed/app/controllers"
	"postfeed/app/metrics"
	"postfeed/app/middleware"
	"postfeed/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SetupRoutes defines the posts API routes and returns a router. A nil
// collector disables /metrics and request metrics.
func SetupRoutes(catalog *services.CatalogService, logger *zap.Logger, collector *metrics.Collector) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	if collector != nil {
		router.Use(middleware.Metrics(collector))
		router.Handle("/metrics", collector.Handler()).Methods("GET")
	}

	router.NotFoundHandler = jsonFallback(http.StatusNotFound, "Not found")
	router.MethodNotAllowedHandler = jsonFallback(http.StatusMethodNotAllowed, "Method not allowed")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	postController := controllers.NewPostController(catalog, logger)
	authorController := controllers.NewAuthorController(catalog, logger)

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}/comments", postController.Comments).Methods("GET")
	api.HandleFunc("/authors/{id:[0-9]+}", authorController.Show).Methods("GET")

	return router
}

// jsonFallback answers unmatched API requests with a JSON error and
// everything else with a plain text one.
func jsonFallback(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
			return
		}
		http.Error(w, message, status)
	})
}
