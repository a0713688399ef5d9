package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lexhub-io/lexhub/internal/api/handlers"
	appMiddleware "github.com/lexhub-io/lexhub/internal/api/middlewares"
	"github.com/lexhub-io/lexhub/internal/config"
	"github.com/lexhub-io/lexhub/internal/core"
	"github.com/lexhub-io/lexhub/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, db core.DbClient, docs *services.DocumentService) *Server {
	authHandler := handlers.NewAuthHandler(services.NewUserService(db))
	docHandler := handlers.NewDocumentHandler(docs)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/signup", authHandler.Signup)
		api.Post("/login", authHandler.Login)

		// uploads accept anonymous documents; a valid token attaches the owner
		api.Group(func(open chi.Router) {
			open.Use(appMiddleware.OptionalJWTMiddleware)
			open.Post("/documents", docHandler.UploadDocument)
			open.Get("/documents/{id}", docHandler.GetDocument)
			open.Get("/documents/{id}/content", docHandler.DownloadDocument)
			open.Get("/documents/{id}/records", docHandler.GetProcessingRecords)
			open.Post("/documents/{id}/process", docHandler.ProcessDocument)
			open.Delete("/documents/{id}", docHandler.DeleteDocument)
		})

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWTMiddleware)
			protected.Get("/documents", docHandler.GetDocuments)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
