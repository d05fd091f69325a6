// Package web provides the HTTP server: public pages, the lead form
// endpoint, health and metrics.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/leadsite/internal/config"
	"github.com/JonMunkholm/leadsite/internal/core"
	"github.com/JonMunkholm/leadsite/internal/metrics"
	"github.com/JonMunkholm/leadsite/internal/web/middleware"
	"github.com/JonMunkholm/leadsite/internal/web/templates"
)

//go:embed static
var staticFiles embed.FS

// HealthChecker reports whether the store can be reached.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the server needs. Service is required;
// Health, Metrics and Gatherer may be nil.
type Deps struct {
	Service  *core.Service
	Health   HealthChecker
	Metrics  *metrics.SiteMetrics
	Gatherer prometheus.Gatherer
}

// Server is the HTTP server for the site.
type Server struct {
	cfg      *config.Config
	service  *core.Service
	health   HealthChecker
	metrics  *metrics.SiteMetrics
	gatherer prometheus.Gatherer
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, deps Deps) *Server {
	if deps.Service == nil {
		panic("web: server requires a service")
	}
	s := &Server{
		cfg:      cfg,
		service:  deps.Service,
		health:   deps.Health,
		metrics:  deps.Metrics,
		gatherer: deps.Gatherer,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger(s.metrics))
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(chimw.GetHead)

	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
	s.router.Use(middleware.CORS(s.cfg.Security.AllowedOrigins))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("web: embedded static files: %v", err))
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	site := s.cfg.Site.Name

	// Pages
	s.router.Get("/", page(templates.HomePage(site)))
	s.router.Get("/formats", page(templates.FormatsPage(site)))
	s.router.Get("/contacts", page(templates.ContactsPage(site)))
	s.router.Get("/how-it-works", page(templates.HowItWorksPage(site)))
	s.router.Get("/cases", page(templates.CasesPage(site)))
	s.router.Get("/reviews", page(templates.ReviewsPage(site)))
	s.router.Get("/faq", page(templates.FAQPage(site)))
	s.router.Get("/thank-you", page(templates.ThankYouPage(site)))
	s.router.Get("/order", page(templates.OrderPage(site)))

	// Lead form
	s.router.Post("/submit", s.handleSubmit)

	// Operations
	s.router.Get("/health", s.handleHealth)
	if s.cfg.Metrics.Enabled && s.gatherer != nil {
		s.router.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	s.router.NotFound(templ.Handler(templates.NotFoundPage(site), templ.WithStatus(http.StatusNotFound)).ServeHTTP)
}

// page serves a static templ component.
func page(c templ.Component) http.HandlerFunc {
	return templ.Handler(c).ServeHTTP
}

// Start begins listening for HTTP requests. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// contentSecurityPolicy allows only same-origin resources; pages use no
// inline script or style.
const contentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'"

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}
