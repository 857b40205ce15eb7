// internal/auth/service.go
//
// Login and account-creation logic.
//
// Context
// -------
// Login deliberately collapses "no such account", "inactive account",
// and "wrong password" into one ErrInvalidCredentials so the API cannot
// be used to enumerate registered addresses.  Database faults pass
// through untouched; callers map them to a generic 500.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/oakharbor/storefront/internal/database"
	"github.com/oakharbor/storefront/internal/user"
)

// Session keys written on successful login.
const (
	SessionKeyUserID = "user_id"
	SessionKeyRole   = "role"
)

// ErrInvalidCredentials is the single rejection every failed login gets.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// dummyHash is a throwaway bcrypt hash compared against when the account
// does not exist, keeping the unknown-address path roughly as slow as a
// real verification.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service bundles the dependencies of the auth flows.
type Service struct {
	db *database.DB
}

// NewService returns a Service bound to the process-wide pool.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Login verifies email+password and returns the account on success.
// Every rejection is ErrInvalidCredentials; any other error is a
// database fault.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := user.FindByEmailWithRole(ctx, s.db, email)
	if errors.Is(err, database.ErrNotFound) {
		VerifyPassword(password, dummyHash)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !u.IsActive || !VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

/*────────────────────────── admin bootstrap ───────────────────────────────*/

// AdminInput is what the bootstrap tool collects from the operator.
type AdminInput struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

// FieldError describes a single validation failure in operator terms.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError wraps field errors so callers can distinguish operator
// mistakes from system failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("auth: validation failed (%d field(s))", len(e.Fields))
}

var validate = validator.New()

// CreateAdmin validates the input, hashes the password, and inserts an
// active account with the admin role.  Duplicate addresses come back as
// a *ValidationError, never a raw constraint violation.
func (s *Service) CreateAdmin(ctx context.Context, in AdminInput) (int64, error) {
	if err := validate.Struct(in); err != nil {
		return 0, translateValidation(err)
	}

	roleID, err := user.RoleIDByName(ctx, s.db, "admin")
	if errors.Is(err, database.ErrNotFound) {
		return 0, errors.New("auth: admin role is not seeded")
	}
	if err != nil {
		return 0, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return 0, err
	}

	id, err := user.Create(ctx, s.db, in.Name, in.Email, hash, roleID)
	if errors.Is(err, user.ErrDuplicateEmail) {
		return 0, &ValidationError{Fields: []FieldError{
			{Field: "email", Message: "this email is already registered"},
		}}
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// translateValidation turns validator tags into operator-facing field
// messages.
func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		var msg string
		switch fe.Field() {
		case "Name":
			msg = "name must be between 2 and 100 characters"
		case "Email":
			msg = "email address is not valid"
		case "Password":
			msg = "password must be between 8 and 72 characters"
		default:
			msg = "invalid value"
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
