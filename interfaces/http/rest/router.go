// Package rest wires the chi router: middleware stack, health probes and the
// versioned API surface.
package rest

import (
	"net/http"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/application/services"
	"github.com/RodCacioli/Authos-v2/interfaces/http/rest/handlers"
	"github.com/RodCacioli/Authos-v2/interfaces/http/rest/middleware"
	"github.com/RodCacioli/Authos-v2/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Services bundles the application services the router exposes.
type Services struct {
	Profiles   *services.ProfileService
	Memories   *services.MemoryService
	Products   *services.ProductService
	Drafts     *services.DraftService
	Chat       *services.ChatService
	Generation *services.GenerationService
}

// Router creates and configures the HTTP router
type Router struct {
	services Services
	local    ports.LocalStore
	verifier ports.SessionVerifier
	metrics  *observability.Collector
	logger   *zap.Logger

	enableCORS    bool
	enableMetrics bool
}

// NewRouter creates a new router instance
func NewRouter(
	svcs Services,
	local ports.LocalStore,
	verifier ports.SessionVerifier,
	metrics *observability.Collector,
	logger *zap.Logger,
	enableCORS, enableMetrics bool,
) *Router {
	return &Router{
		services:      svcs,
		local:         local,
		verifier:      verifier,
		metrics:       metrics,
		logger:        logger,
		enableCORS:    enableCORS,
		enableMetrics: enableMetrics,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.enableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health checks and metrics scrape, outside the session middleware
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.enableMetrics {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(rt.verifier, rt.logger))

		profileHandler := handlers.NewProfileHandler(rt.services.Profiles, rt.local, rt.logger)
		r.Get("/profile", profileHandler.GetProfile)
		r.Put("/profile", profileHandler.SaveProfile)
		r.Delete("/storage", profileHandler.ClearStorage)

		memoryHandler := handlers.NewMemoryHandler(rt.services.Memories, rt.services.Generation, rt.metrics, rt.logger)
		r.Route("/memories", func(r chi.Router) {
			r.Get("/", memoryHandler.ListMemories)
			r.Post("/", memoryHandler.CreateMemory)
			r.Put("/{memoryID}", memoryHandler.UpdateMemory)
			r.Delete("/{memoryID}", memoryHandler.DeleteMemory)
		})

		productHandler := handlers.NewProductHandler(rt.services.Products, rt.logger)
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Post("/", productHandler.CreateProduct)
			r.Put("/{productID}", productHandler.UpdateProduct)
			r.Delete("/{productID}", productHandler.DeleteProduct)
		})

		draftHandler := handlers.NewDraftHandler(rt.services.Drafts, rt.logger)
		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", draftHandler.ListDrafts)
			r.Put("/", draftHandler.SaveDrafts)
			r.Post("/", draftHandler.UpsertDraft)
		})

		chatHandler := handlers.NewChatHandler(rt.services.Chat, rt.services.Profiles, rt.services.Memories, rt.services.Generation, rt.logger)
		r.Route("/chat", func(r chi.Router) {
			r.Post("/", chatHandler.SendMessage)
			r.Get("/history", chatHandler.GetHistory)
			r.Delete("/history", chatHandler.ClearHistory)
		})

		generationHandler := handlers.NewGenerationHandler(
			rt.services.Generation, rt.services.Profiles, rt.services.Memories,
			rt.services.Products, rt.metrics, rt.logger)
		r.Route("/generate", func(r chi.Router) {
			r.Post("/content", generationHandler.GenerateContent)
			r.Post("/humanize", generationHandler.Humanize)
			r.Post("/repurpose", generationHandler.Repurpose)
			r.Post("/angles", generationHandler.Angles)
			r.Post("/brain-dump", generationHandler.BrainDump)
			r.Get("/topics", generationHandler.Topics)
			r.Post("/persona", generationHandler.Persona)
		})

		frameworkHandler := handlers.NewFrameworkHandler(rt.logger)
		r.Get("/frameworks", frameworkHandler.ListCatalogs)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
