// internal/user/repository_test.go
//
// Unit-tests for the user repository using sqlmock.

package user

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/oakharbor/storefront/internal/database"
)

const findQuery = `SELECT u.id, u.name, u.email, u.password_hash, u.role_id, r.name AS role_name, u.is_active FROM users u JOIN roles r ON r.id = u.role_id WHERE LOWER(u.email) = LOWER(?) LIMIT 1`

func newMock(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return database.Wrap(sqlx.NewDb(raw, "sqlmock")), mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "role_id", "role_name", "is_active",
	})
}

func TestFindByEmailWithRole(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(findQuery)).
		WithArgs("admin@x.com").
		WillReturnRows(userRows().
			AddRow(int64(1), "Admin", "admin@x.com", "$2a$10$hash", int64(2), "admin", true))

	u, err := FindByEmailWithRole(context.Background(), db, "admin@x.com")
	if err != nil {
		t.Fatalf("FindByEmailWithRole error: %v", err)
	}
	if u.ID != 1 || u.RoleName != "admin" || !u.IsActive {
		t.Fatalf("unexpected user: %#v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestFindByEmailWithRoleAbsent(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(findQuery)).
		WithArgs("ghost@x.com").
		WillReturnRows(userRows())

	_, err := FindByEmailWithRole(context.Background(), db, "ghost@x.com")
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("want database.ErrNotFound, got %v", err)
	}
}

func TestCreateStoresLowercaseEmail(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO users (email, is_active, name, password_hash, role_id) VALUES (?, ?, ?, ?, ?)`,
	)).
		WithArgs("new@x.com", true, "New Admin", "$2a$10$hash", int64(2)).
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := Create(context.Background(), db, "New Admin", "New@X.com", "$2a$10$hash", 2)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if id != 5 {
		t.Fatalf("want id 5, got %d", id)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO users (email, is_active, name, password_hash, role_id) VALUES (?, ?, ?, ?, ?)`,
	)).
		WithArgs("admin@x.com", true, "Admin", "$2a$10$hash", int64(2)).
		WillReturnError(errors.New(`Error 1062 (23000): Duplicate entry 'admin@x.com' for key 'users.email'`))

	_, err := Create(context.Background(), db, "Admin", "admin@x.com", "$2a$10$hash", 2)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}
