// internal/api/content_handlers.go
//
// Public content endpoints: health, pages, promotions.  Read-only rows
// for the storefront frontend; no catalog rules live here.
package api

import (
	"errors"
	"net/http"

	"github.com/oakharbor/storefront/internal/content"
	"github.com/oakharbor/storefront/internal/database"
	"github.com/oakharbor/storefront/internal/web"
)

func (h *Handlers) health(req *web.Request, res *web.Response) error {
	if err := h.db.PingContext(req.Context()); err != nil {
		res.SetStatus(http.StatusInternalServerError)
		res.SetBody(map[string]any{"status": "degraded", "database": "down"})
		return nil
	}
	res.SetBody(map[string]any{"status": "ok", "database": "up"})
	return nil
}

func (h *Handlers) pages(req *web.Request, res *web.Response) error {
	rows, err := content.PublishedPages(req.Context(), h.db)
	if err != nil {
		return err
	}
	res.SetBody(map[string]any{"pages": rows})
	return nil
}

func (h *Handlers) pageBySlug(req *web.Request, res *web.Response) error {
	p, err := content.PageBySlug(req.Context(), h.db, req.Param("slug"))
	if errors.Is(err, database.ErrNotFound) {
		return web.NotFound("page not found")
	}
	if err != nil {
		return err
	}
	res.SetBody(map[string]any{"page": p})
	return nil
}

func (h *Handlers) promotions(req *web.Request, res *web.Response) error {
	rows, err := content.ActivePromotions(req.Context(), h.db)
	if err != nil {
		return err
	}
	res.SetBody(map[string]any{"promotions": rows})
	return nil
}
