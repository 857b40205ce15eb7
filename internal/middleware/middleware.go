// internal/middleware/middleware.go
//
// Front-controller middleware for the API pipeline.
//
// Context
// -------
// The chain order is fixed and assembled in exactly one place
// (internal/api/routes.go): Wrap → CORS → access log → Session →
// JSONBody → router.
// CORS must run before body parsing and routing because a preflight
// terminates the chain right after it; JSONBody must run before any
// handler that reads a parsed body.  Reordering changes observable
// behavior, so nothing here is self-registering.
package middleware

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/oakharbor/storefront/internal/metrics"
	"github.com/oakharbor/storefront/internal/web"
)

// Wrap creates the request/response pair every later stage shares.  The
// transport body is read here, exactly once.
func Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := web.NewRequest(r)
		if err != nil {
			zap.S().Warnw("request body read failed", "path", r.URL.Path, "err", err)
			http.Error(w, "unable to read request body", http.StatusBadRequest)
			return
		}
		res := web.NewResponse()
		next.ServeHTTP(w, r.WithContext(web.NewContext(r.Context(), req, res)))
	})
}

// shortCircuit ends the chain early: serialise what the middleware
// staged and record the request metric.
func shortCircuit(w http.ResponseWriter, method string, res *web.Response) {
	if err := res.Send(w); err != nil {
		zap.S().Errorw("middleware send failed", "method", method, "err", err)
		return
	}
	metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(res.Status())).Inc()
}
