// internal/content/repository_test.go

package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/oakharbor/storefront/internal/database"
)

func newMock(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return database.Wrap(sqlx.NewDb(raw, "sqlmock")), mock
}

func TestPageBySlug(t *testing.T) {
	db, mock := newMock(t)

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM pages").
		WithArgs("faq").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "body", "updated_at"}).
			AddRow(int64(3), "faq", "FAQ", "Questions.", now))

	p, err := PageBySlug(context.Background(), db, "faq")
	if err != nil {
		t.Fatalf("PageBySlug error: %v", err)
	}
	if p.ID != 3 || p.Slug != "faq" {
		t.Fatalf("unexpected page: %#v", p)
	}
}

func TestPageBySlugUnpublished(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT .* FROM pages").
		WithArgs("draft").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "body", "updated_at"}))

	_, err := PageBySlug(context.Background(), db, "draft")
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("want database.ErrNotFound, got %v", err)
	}
}

func TestActivePromotionsEmpty(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT .* FROM promotions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "blurb", "starts_at", "ends_at"}))

	rows, err := ActivePromotions(context.Background(), db)
	if err != nil {
		t.Fatalf("ActivePromotions error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("want no rows, got %d", len(rows))
	}
}
