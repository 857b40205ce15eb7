// internal/content/model.go
package content

import "time"

// Page is one static content page (legal text, FAQ, store info).
type Page struct {
	ID        int64     `db:"id"         json:"id"`
	Slug      string    `db:"slug"       json:"slug"`
	Title     string    `db:"title"      json:"title"`
	Body      string    `db:"body"       json:"body"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Promotion is one marketing banner row.
type Promotion struct {
	ID       int64     `db:"id"        json:"id"`
	Title    string    `db:"title"     json:"title"`
	Blurb    string    `db:"blurb"     json:"blurb"`
	StartsAt time.Time `db:"starts_at" json:"starts_at"`
	EndsAt   time.Time `db:"ends_at"   json:"ends_at"`
}
