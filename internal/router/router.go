// internal/router/router.go
//
// Route registry and dispatch.
//
// Context
// -------
// Routes are registered once at startup and never change afterwards.
// Dispatch itself is delegated to a chi mux (deterministic radix-tree
// matching, static segments before parameters), while an ordered route
// table is kept alongside it: the table drives the Allow header on 405
// responses and lets tests and tooling introspect what was mounted.
//
// A request reaches exactly one handler.  Unknown paths produce a JSON
// 404; a known path with the wrong method produces a JSON 405 whose
// Allow header lists every method registered for that path.
package router

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oakharbor/storefront/internal/metrics"
	"github.com/oakharbor/storefront/internal/web"
)

// Handler is the capability a route needs: consume the wrapped request,
// stage the response, and report any client-visible or internal error.
type Handler func(req *web.Request, res *web.Response) error

// Route is one registered (method, pattern, handler) triple.
type Route struct {
	Method  string
	Pattern string
	handler Handler
}

// Router dispatches requests to registered handlers.  Register before
// serving; the route table is read-only afterwards.
type Router struct {
	mux    *chi.Mux
	routes []Route
}

// New returns an empty Router with JSON 404/405 fallbacks installed.
func New() *Router {
	rt := &Router{mux: chi.NewRouter()}
	rt.mux.NotFound(rt.notFound)
	rt.mux.MethodNotAllowed(rt.methodNotAllowed)
	return rt
}

// Register adds a route.  Patterns use chi syntax: literal segments,
// `{name}` parameters, and an optional trailing `/*` catch-all.
func (rt *Router) Register(method, pattern string, h Handler) {
	rt.routes = append(rt.routes, Route{Method: method, Pattern: pattern, handler: h})
	rt.mux.Method(method, pattern, rt.adapt(h))
}

// Routes returns a copy of the registration table in order.
func (rt *Router) Routes() []Route {
	out := make([]Route, len(rt.routes))
	copy(out, rt.routes)
	return out
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

/*──────────────────────────── dispatch ────────────────────────────────────*/

// adapt bridges a Handler into the chi mux.  The request/response pair
// normally arrives via the pipeline context; when the router is used
// bare (tests), the pair is created here.
func (rt *Router) adapt(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, res := web.FromContext(r.Context())
		if req == nil {
			var err error
			req, err = web.NewRequest(r)
			if err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			res = web.NewResponse()
		}

		// Path parameters become visible to the handler only now; the
		// chi route context lives on r, not on the wrapped request.
		req.BindParams(func(name string) string {
			return chi.URLParamFromCtx(r.Context(), name)
		})

		if err := h(req, res); err != nil {
			if _, ok := err.(*web.Error); !ok {
				zap.S().Errorw("handler failed",
					"method", req.Method, "path", req.Path, "err", err)
			}
			web.WriteError(res, err)
		}

		finish(w, req.Method, res)
	}
}

func (rt *Router) notFound(w http.ResponseWriter, r *http.Request) {
	method, res := pairFor(r)
	web.WriteError(res, web.NotFound("no such path"))
	finish(w, method, res)
}

func (rt *Router) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_, res := pairFor(r)
	allow := rt.allowedMethods(r.URL.Path)
	res.Header().Set("Allow", strings.Join(allow, ", "))
	web.WriteError(res, web.MethodNotAllowed(allow))
	finish(w, r.Method, res)
}

// pairFor fetches the pipeline pair or builds a throwaway one, returning
// the request method either way.
func pairFor(r *http.Request) (string, *web.Response) {
	req, res := web.FromContext(r.Context())
	if res == nil {
		res = web.NewResponse()
	}
	method := r.Method
	if req != nil {
		method = req.Method
	}
	return method, res
}

// finish serialises the response and records the request metric.  A
// failed Send here means a middleware already wrote the response, which
// is a pipeline bug worth a loud log, not a silent drop.
func finish(w http.ResponseWriter, method string, res *web.Response) {
	if err := res.Send(w); err != nil {
		zap.S().Errorw("response send failed", "method", method, "err", err)
		return
	}
	metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(res.Status())).Inc()
}

/*─────────────────────── Allow-header matching ────────────────────────────*/

// allowedMethods lists, in registration order, every method whose
// pattern structurally matches path.
func (rt *Router) allowedMethods(path string) []string {
	var allow []string
	seen := make(map[string]struct{}, 4)
	for _, route := range rt.routes {
		if !matchPattern(route.Pattern, path) {
			continue
		}
		if _, dup := seen[route.Method]; dup {
			continue
		}
		seen[route.Method] = struct{}{}
		allow = append(allow, route.Method)
	}
	return allow
}

// matchPattern reports whether pattern structurally matches path:
// literal segments verbatim, `{name}` binds one non-empty segment, and a
// trailing `*` swallows the remainder.  Segment counts must otherwise be
// equal.
func matchPattern(pattern, path string) bool {
	ps := segments(pattern)
	ss := segments(path)

	for i, p := range ps {
		if p == "*" {
			return true
		}
		if i >= len(ss) {
			return false
		}
		if len(p) > 1 && p[0] == '{' && p[len(p)-1] == '}' {
			continue
		}
		if p != ss[i] {
			return false
		}
	}
	return len(ps) == len(ss)
}

func segments(s string) []string {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}
