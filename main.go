package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// newRouter wires the HTTP routes
func newRouter(service *Service) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()

	// Layout persistence
	api.HandleFunc("/layouts/", service.handleListLayouts).Methods("GET")
	api.HandleFunc("/layouts/{type}/", service.handleGetLayout).Methods("GET")
	api.HandleFunc("/layouts/{type}/", service.handleSaveLayout).Methods("PUT")
	api.HandleFunc("/layouts/{type}/", service.handleDeleteLayout).Methods("DELETE")

	// Editor operations
	api.HandleFunc("/layouts/{type}/sections/", service.handleAddSection).Methods("POST")
	api.HandleFunc("/layouts/{type}/sections/reorder/", service.handleReorderSections).Methods("POST")
	api.HandleFunc("/layouts/{type}/sections/{sectionId}/", service.handleUpdateSection).Methods("PATCH")
	api.HandleFunc("/layouts/{type}/sections/{sectionId}/", service.handleDeleteSection).Methods("DELETE")
	api.HandleFunc("/layouts/{type}/sections/{sectionId}/fields/", service.handleAddField).Methods("POST")
	api.HandleFunc("/layouts/{type}/sections/{sectionId}/fields/{index:[0-9]+}/", service.handleUpdateField).Methods("PATCH")
	api.HandleFunc("/layouts/{type}/sections/{sectionId}/fields/{index:[0-9]+}/", service.handleDeleteField).Methods("DELETE")
	api.HandleFunc("/layouts/{type}/sections/{sectionId}/columns/", service.handleAddColumn).Methods("POST")
	api.HandleFunc("/layouts/{type}/sections/{sectionId}/columns/{index:[0-9]+}/", service.handleUpdateColumn).Methods("PATCH")
	api.HandleFunc("/layouts/{type}/sections/{sectionId}/columns/{index:[0-9]+}/", service.handleDeleteColumn).Methods("DELETE")

	// Previews
	api.HandleFunc("/layouts/{type}/preview/", service.handleGetPreview).Methods("GET")
	api.HandleFunc("/layouts/{type}/preview/", service.handlePostPreview).Methods("POST")
	api.HandleFunc("/layouts/{type}/preview.xlsx", service.handleGetPreviewExcel).Methods("GET")

	// Segment mappings
	api.HandleFunc("/segment-mappings/{type}/", service.handleListSegmentMappings).Methods("GET")
	api.HandleFunc("/segment-mappings/{type}/search/", service.handleSearchSegmentMappings).Methods("GET")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := service.db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}

func main() {
	config := loadConfig()
	log := newLogger(config.LogLevel)
	log.Infof("starting EDI layout service on port %s", config.Port)

	service, err := NewService(config, log)
	if err != nil {
		log.Fatalf("failed to initialize service: %v", err)
	}
	defer service.db.Close()

	router := newRouter(service)

	// CORS middleware
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Tenant-ID"}),
	)(router)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      corsHandler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	go func() {
		log.Infof("server listening on :%s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}
