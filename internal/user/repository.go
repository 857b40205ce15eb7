// internal/user/repository.go
//
// Query helpers for the users/roles tables.
//
// Context
// -------
// The login path needs one joined lookup; the admin bootstrap needs role
// resolution and row creation.  All statements go through the DAL's
// parameterised helpers, so "no row" surfaces as database.ErrNotFound
// and is never conflated with a query failure.
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/oakharbor/storefront/internal/database"
)

// ErrDuplicateEmail reports a create against an already-registered
// address, translated from the raw constraint violation so callers can
// show it to the operator.
var ErrDuplicateEmail = errors.New("user: email already registered")

// FindByEmailWithRole fetches a user and its role name in one joined
// query.  Email matching is case-insensitive by policy: both sides are
// folded with LOWER(), so behavior does not depend on column collation.
// Returns database.ErrNotFound when no account matches.
func FindByEmailWithRole(ctx context.Context, db *database.DB, email string) (*User, error) {
	const q = `
        SELECT u.id, u.name, u.email, u.password_hash, u.role_id,
               r.name AS role_name, u.is_active
          FROM users u
          JOIN roles r ON r.id = u.role_id
         WHERE LOWER(u.email) = LOWER(?)
         LIMIT 1`

	var u User
	if err := db.FetchOne(ctx, &u, q, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleIDByName resolves a role name to its id.
func RoleIDByName(ctx context.Context, db *database.DB, name string) (int64, error) {
	const q = `SELECT id FROM roles WHERE name = ? LIMIT 1`

	var id int64
	if err := db.FetchOne(ctx, &id, q, name); err != nil {
		return 0, err
	}
	return id, nil
}

// Create inserts an active account and returns the generated id.  The
// address is stored lowercased, matching the lookup policy.
func Create(ctx context.Context, db *database.DB, name, email, passwordHash string, roleID int64) (int64, error) {
	id, err := db.Insert(ctx, "users", map[string]any{
		"name":          name,
		"email":         strings.ToLower(email),
		"password_hash": passwordHash,
		"role_id":       roleID,
		"is_active":     true,
	})
	if errors.Is(err, database.ErrDuplicate) {
		return 0, ErrDuplicateEmail
	}
	return id, err
}
