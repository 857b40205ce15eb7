// internal/middleware/cors.go
//
// Cross-origin policy enforcement.
//
// Every response carries the CORS headers for its (allow-listed) origin.
// A preflight OPTIONS request terminates here with 204 and no body: no
// session, no body parsing, no routing.  That short-circuit is the
// reason CORS sits first in the chain.
package middleware

import (
	"net/http"
	"strings"

	"github.com/oakharbor/storefront/internal/web"
)

const allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// CORS returns the policy middleware for the configured origin and
// header allow-lists.  An empty header list falls back to the pair the
// frontend actually sends.
func CORS(allowedOrigins, allowedHeaders []string) func(http.Handler) http.Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[strings.TrimSuffix(o, "/")] = struct{}{}
	}

	headerList := "Content-Type, Authorization"
	if len(allowedHeaders) > 0 {
		headerList = strings.Join(allowedHeaders, ", ")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req, res := web.FromContext(r.Context())
			if req == nil {
				next.ServeHTTP(w, r)
				return
			}

			if origin := req.Header.Get("Origin"); origin != "" {
				if _, ok := origins[origin]; ok {
					// Echo the matching origin, never "*": the API sets
					// cookies, and credentialed CORS forbids wildcards.
					res.Header().Set("Access-Control-Allow-Origin", origin)
					res.Header().Set("Access-Control-Allow-Credentials", "true")
					res.Header().Add("Vary", "Origin")
				}
			}
			res.Header().Set("Access-Control-Allow-Methods", allowMethods)
			res.Header().Set("Access-Control-Allow-Headers", headerList)

			if req.Method == http.MethodOptions {
				res.SetStatus(http.StatusNoContent)
				shortCircuit(w, req.Method, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
