// internal/user/model.go
package user

// User is an account row joined with its role name.  The persistence
// layer owns the schema; this package only reads and creates rows.
type User struct {
	ID           int64  `db:"id"            json:"id"`
	Name         string `db:"name"          json:"name"`
	Email        string `db:"email"         json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	RoleID       int64  `db:"role_id"       json:"-"`
	RoleName     string `db:"role_name"     json:"role"`
	IsActive     bool   `db:"is_active"     json:"-"`
}
