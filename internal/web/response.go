// internal/web/response.go
//
// Response builder with a send-once guarantee.
//
// Context
// -------
// Middleware and handlers mutate a Response (status, headers, body) and
// exactly one point in the pipeline serialises it to the transport.  A
// second Send is a programmer error: it returns ErrAlreadySent and writes
// nothing, so a bug can never interleave two payloads on one connection.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// ErrAlreadySent is returned by Send when the response has already been
// written to the transport.
var ErrAlreadySent = errors.New("web: response already sent")

// Response accumulates the outbound status, headers, and body until Send.
// The zero value is not usable; construct with NewResponse.
type Response struct {
	status int
	header http.Header
	body   any
	sent   bool
}

// NewResponse returns a Response with status 200 and empty header state.
func NewResponse() *Response {
	return &Response{
		status: http.StatusOK,
		header: make(http.Header),
	}
}

// Status returns the currently staged status code.
func (r *Response) Status() int { return r.status }

// SetStatus stages the status code written by Send.
func (r *Response) SetStatus(code int) { r.status = code }

// Header exposes the staged header map.  Lookups and writes are
// case-insensitive (http.Header canonicalises keys).
func (r *Response) Header() http.Header { return r.header }

// SetBody stages the body.  []byte and string are written verbatim; any
// other value is JSON-encoded at send time.
func (r *Response) SetBody(v any) { r.body = v }

// SetCookie stages a Set-Cookie header.
func (r *Response) SetCookie(c *http.Cookie) {
	r.header.Add("Set-Cookie", c.String())
}

// Sent reports whether the response has been written.
func (r *Response) Sent() bool { return r.sent }

// Send serialises status, headers, and body to w.  It may be called at
// most once; later calls return ErrAlreadySent without touching w.
func (r *Response) Send(w http.ResponseWriter) error {
	if r.sent {
		zap.L().Error("response sent twice", zap.Int("status", r.status))
		return ErrAlreadySent
	}
	r.sent = true

	var payload []byte
	switch b := r.body.(type) {
	case nil:
		// header-only response
	case []byte:
		payload = b
	case string:
		payload = []byte(b)
	default:
		enc, err := json.Marshal(b)
		if err != nil {
			// Encoding our own body must not happen; fail as a 500 rather
			// than emit a truncated document.
			zap.L().Error("response body encode failed", zap.Error(err))
			r.status = http.StatusInternalServerError
			payload = []byte(`{"error":{"code":"internal","message":"internal error"}}`)
		} else {
			payload = enc
		}
		if r.header.Get("Content-Type") == "" {
			r.header.Set("Content-Type", "application/json; charset=utf-8")
		}
	}

	h := w.Header()
	for k, vals := range r.header {
		for _, v := range vals {
			h.Add(k, v)
		}
	}
	w.WriteHeader(r.status)
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}
