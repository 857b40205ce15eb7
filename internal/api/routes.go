// internal/api/routes.go
//
// Route table and pipeline assembly.
//
// Context
// -------
// This is the one place the middleware chain is built, so its order is a
// property of the program, not of call sites: Wrap (request/response
// pair) → CORS (may short-circuit preflights) → access log → session →
// JSON body decode → router.  Routes are registered once here and the
// table is read-only afterwards.
package api

import (
	"net/http"

	"github.com/oakharbor/storefront/internal/auth"
	"github.com/oakharbor/storefront/internal/config"
	"github.com/oakharbor/storefront/internal/database"
	"github.com/oakharbor/storefront/internal/middleware"
	"github.com/oakharbor/storefront/internal/requestinfo"
	"github.com/oakharbor/storefront/internal/router"
	"github.com/oakharbor/storefront/internal/session"
)

// Handlers carries the shared dependencies of every endpoint.
type Handlers struct {
	db       *database.DB
	auth     *auth.Service
	sessions *session.Manager
}

// New wires the handler set to the process-wide pool and session store.
func New(db *database.DB, sessions *session.Manager) *Handlers {
	return &Handlers{
		db:       db,
		auth:     auth.NewService(db),
		sessions: sessions,
	}
}

// Routes registers every endpoint on a fresh router.
func (h *Handlers) Routes() *router.Router {
	rt := router.New()

	rt.Register(http.MethodPost, "/api/login", h.login)
	rt.Register(http.MethodPost, "/api/logout", h.logout)
	rt.Register(http.MethodGet, "/api/session", h.currentSession)
	rt.Register(http.MethodGet, "/api/health", h.health)
	rt.Register(http.MethodGet, "/api/pages", h.pages)
	rt.Register(http.MethodGet, "/api/pages/{slug}", h.pageBySlug)
	rt.Register(http.MethodGet, "/api/promotions", h.promotions)

	return rt
}

// Pipeline wraps the router in the fixed middleware chain.
func (h *Handlers) Pipeline(cfg *config.Config) http.Handler {
	var handler http.Handler = h.Routes()
	handler = middleware.JSONBody(handler)
	handler = middleware.Session(h.sessions)(handler)
	handler = requestinfo.Enrich(handler)
	handler = middleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedHeaders)(handler)
	handler = middleware.Wrap(handler)
	return handler
}
