package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/helixml/docnav"
	apimiddleware "github.com/helixml/docnav/infrastructure/api/middleware"
	v1 "github.com/helixml/docnav/infrastructure/api/v1"
)

// requestTimeout bounds API requests. A check with external probes is the
// slowest request.
const requestTimeout = 60 * time.Second

// APIServer provides an HTTP API backed by a docnav Client.
type APIServer struct {
	client       *docnav.Client
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given docnav Client.
func NewAPIServer(client *docnav.Client) *APIServer {
	return &APIServer{
		client: client,
		logger: client.Logger(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
// If not called, ListenAndServe creates a default router with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up the health, metrics and v1 API routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	if m := c.Metrics(); m != nil {
		router.Use(apimiddleware.Metrics(m))
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	router.Get("/health", healthHandler)
	router.Get("/healthz", healthHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(apimiddleware.CORS(c.Config().CORSOrigins()))
		r.Use(chimiddleware.Timeout(requestTimeout))

		r.Mount("/versions", v1.NewVersionsRouter(c).Routes())
		r.Mount("/checks", v1.NewChecksRouter(c).Routes())
		r.Mount("/pages", v1.NewPagesRouter(c).Routes())
	})
}

// Handler returns the complete handler with request logging and correlation
// IDs applied, as served by ListenAndServe.
func (a *APIServer) Handler() http.Handler {
	server := NewServer("", a.logger)
	a.mountDefault(server.Router())
	return server.Router()
}

func (a *APIServer) mountDefault(router chi.Router) {
	if a.routerCalled && a.router != nil {
		router.Mount("/", a.router)
		return
	}
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(a.logger))
	a.mountRoutes(router)
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server
	a.mountDefault(server.Router())
	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
