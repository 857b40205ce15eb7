// internal/middleware/session.go
//
// Session attachment.
//
// Resumes the visitor's session from the cookie or mints a fresh one,
// and hangs it on the wrapped request for handlers.  Runs after CORS so
// preflights never allocate sessions, and before JSONBody so the spec'd
// chain order (session → parse → route) holds for real requests.
package middleware

import (
	"net/http"

	"github.com/oakharbor/storefront/internal/session"
	"github.com/oakharbor/storefront/internal/web"
)

// Session returns the middleware bound to the process-wide manager.
func Session(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req, res := web.FromContext(r.Context())
			if req == nil {
				next.ServeHTTP(w, r)
				return
			}

			var val string
			if c, err := req.Cookie(mgr.CookieName()); err == nil {
				val = c.Value
			}

			sess, setCookie := mgr.Start(val)
			if setCookie != nil {
				res.SetCookie(setCookie)
			}
			req.Session = sess

			next.ServeHTTP(w, r)
		})
	}
}
