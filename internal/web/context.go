// internal/web/context.go
//
// Context plumbing for the request/response pair.
//
// The front controller wraps the transport request once and stashes the
// pair under an unexported context key, so every middleware and the
// router observe the same Request and Response instances regardless of
// how net/http re-derives *http.Request along the chain.
package web

import "context"

type ctxKey struct{} // unexported, collision-proof

type pair struct {
	req *Request
	res *Response
}

// NewContext returns ctx extended with the request/response pair.
func NewContext(ctx context.Context, req *Request, res *Response) context.Context {
	return context.WithValue(ctx, ctxKey{}, &pair{req: req, res: res})
}

// FromContext returns the pair stored by the front controller.  Both
// values are nil if the wrap middleware has not run.
func FromContext(ctx context.Context) (*Request, *Response) {
	p, _ := ctx.Value(ctxKey{}).(*pair)
	if p == nil {
		return nil, nil
	}
	return p.req, p.res
}
