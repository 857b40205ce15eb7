// internal/auth/password.go
//
// One-way password hashing.
//
// bcrypt embeds a per-hash random salt and is deliberately expensive, so
// hashing the same password twice yields different outputs and offline
// guessing stays slow.  Comparison runs inside the bcrypt primitive,
// which is as close to constant-time as the scheme allows.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the salted bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether plain matches the stored hash.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
