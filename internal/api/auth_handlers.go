// internal/api/auth_handlers.go
//
// Login, logout, and session introspection.
package api

import (
	"errors"
	"net/http"

	"github.com/oakharbor/storefront/internal/auth"
	"github.com/oakharbor/storefront/internal/metrics"
	"github.com/oakharbor/storefront/internal/web"
)

// login verifies credentials and establishes the session.  All three
// rejection causes (unknown address, inactive account, wrong password)
// share one 401 body.
func (h *Handlers) login(req *web.Request, res *web.Response) error {
	email := req.BodyString("email")
	password := req.BodyString("password")
	if email == "" || password == "" {
		return web.BadRequest("email and password are required")
	}

	u, err := h.auth.Login(req.Context(), email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		metrics.LoginFailureTotal.Inc()
		return web.Unauthorized()
	}
	if err != nil {
		return err // database fault; router logs and maps to 500
	}

	req.Session.Set(auth.SessionKeyUserID, u.ID)
	req.Session.Set(auth.SessionKeyRole, u.RoleName)
	metrics.LoginSuccessTotal.Inc()

	res.SetBody(map[string]any{"user": u})
	return nil
}

// logout destroys the server-side session and expires the cookie.  A
// visitor without meaningful session state still gets a 200; logout is
// idempotent from the client's point of view.
func (h *Handlers) logout(req *web.Request, res *web.Response) error {
	res.SetCookie(h.sessions.Destroy(req.Session))
	res.SetBody(map[string]any{"ok": true})
	return nil
}

// currentSession reports the authenticated identity, or 401 when the
// session carries none.
func (h *Handlers) currentSession(req *web.Request, res *web.Response) error {
	uid, ok := req.Session.Get(auth.SessionKeyUserID)
	if !ok {
		return &web.Error{
			Status:  http.StatusUnauthorized,
			Code:    "unauthenticated",
			Message: "no active session",
		}
	}

	res.SetBody(map[string]any{
		"user_id": uid,
		"role":    req.Session.GetString(auth.SessionKeyRole),
	})
	return nil
}
