// internal/content/repository.go
//
// Read-only queries behind the public content endpoints.  The site's
// rendering lives elsewhere; this layer only hands rows to the API.
package content

import (
	"context"

	"github.com/oakharbor/storefront/internal/database"
)

// PublishedPages returns every published page, newest first.
func PublishedPages(ctx context.Context, db *database.DB) ([]Page, error) {
	const q = `
        SELECT id, slug, title, body, updated_at
          FROM pages
         WHERE published = TRUE
         ORDER BY updated_at DESC`

	var rows []Page
	if err := db.FetchAll(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// PageBySlug fetches a single published page.  Returns
// database.ErrNotFound for unknown or unpublished slugs.
func PageBySlug(ctx context.Context, db *database.DB, slug string) (*Page, error) {
	const q = `
        SELECT id, slug, title, body, updated_at
          FROM pages
         WHERE slug = ? AND published = TRUE
         LIMIT 1`

	var p Page
	if err := db.FetchOne(ctx, &p, q, slug); err != nil {
		return nil, err
	}
	return &p, nil
}

// ActivePromotions returns promotions whose window covers now.
func ActivePromotions(ctx context.Context, db *database.DB) ([]Promotion, error) {
	const q = `
        SELECT id, title, blurb, starts_at, ends_at
          FROM promotions
         WHERE active = TRUE
           AND starts_at <= NOW()
           AND ends_at   >= NOW()
         ORDER BY starts_at`

	var rows []Promotion
	if err := db.FetchAll(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}
