// internal/middleware/jsonbody.go
//
// JSON body decoding.
//
// Fills the request's parsed-body map when the client declared a JSON
// content type and sent bytes.  Malformed JSON is a client error: the
// chain stops with a structured 400 and no handler runs.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/oakharbor/storefront/internal/web"
)

// JSONBody decodes application/json request bodies.
func JSONBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, res := web.FromContext(r.Context())
		if req == nil {
			next.ServeHTTP(w, r)
			return
		}

		ct := req.Header.Get("Content-Type")
		if len(req.RawBody) > 0 && strings.Contains(strings.ToLower(ct), "application/json") {
			var body map[string]any
			if err := json.Unmarshal(req.RawBody, &body); err != nil {
				web.WriteError(res, web.BadRequest("malformed JSON body"))
				shortCircuit(w, req.Method, res)
				return
			}
			req.Body = body
		}

		next.ServeHTTP(w, r)
	})
}
