// internal/web/request.go
//
// Request wrapper for the API pipeline.
//
// Context
// -------
// Every inbound request is wrapped exactly once, at the top of the
// middleware chain, before CORS or body parsing run.  The wrapper reads
// the raw body from the transport a single time and carries it through
// the chain; the JSON body middleware later fills Body, and after that
// point the request is treated as read-only.  Header access stays on
// http.Header, which canonicalises names, so reads and writes are
// case-insensitive for free.
package web

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/oakharbor/storefront/internal/session"
)

// maxBodyBytes caps how much of a request body we are willing to buffer.
// The API only ever receives small JSON documents.
const maxBodyBytes = 1 << 20 // 1 MiB

// Request is the pipeline's view of one inbound HTTP request.  It is
// created once per request and owned by that request's goroutine.
type Request struct {
	Method  string
	Path    string
	Header  http.Header
	Query   url.Values
	RawBody []byte

	// Body holds the JSON-decoded request body.  It is nil until the JSON
	// body middleware has run, and must not be mutated afterwards.
	Body map[string]any

	// Session is attached by the session middleware; nil for requests that
	// short-circuit before it (CORS preflight).
	Session *session.Session

	raw    *http.Request
	params func(name string) string
}

// NewRequest wraps r, draining its body.  The transport is read exactly
// once; all later body access goes through RawBody / Body.
func NewRequest(r *http.Request) (*Request, error) {
	var raw []byte
	if r.Body != nil {
		var err error
		raw, err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		r.Body.Close()
	}

	return &Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Header:  r.Header,
		Query:   r.URL.Query(),
		RawBody: raw,
		raw:     r,
	}, nil
}

// Param returns the named path parameter bound during routing, or "" when
// the route declared no such segment.
func (r *Request) Param(name string) string {
	if r.params == nil {
		return ""
	}
	return r.params(name)
}

// BindParams installs the path-parameter lookup.  Called by the router
// immediately before handler dispatch; handlers never call this.
func (r *Request) BindParams(fn func(name string) string) { r.params = fn }

// Context returns the transport request context so handlers can pass the
// request deadline and cancellation down to database calls.
func (r *Request) Context() context.Context { return r.raw.Context() }

// Cookie returns the named request cookie.
func (r *Request) Cookie(name string) (*http.Cookie, error) {
	return r.raw.Cookie(name)
}

// RemoteAddr exposes the transport peer address for logging.
func (r *Request) RemoteAddr() string { return r.raw.RemoteAddr }

// BodyString returns the string value at key in the parsed body, or ""
// when the body is unparsed, the key is absent, or the value is not a
// string.  Handlers that need to distinguish those cases read Body
// directly.
func (r *Request) BodyString(key string) string {
	if r.Body == nil {
		return ""
	}
	s, _ := r.Body[key].(string)
	return s
}
