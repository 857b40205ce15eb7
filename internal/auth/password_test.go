// internal/auth/password_test.go

package auth

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Admin123!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !VerifyPassword("Admin123!", hash) {
		t.Fatal("correct password did not verify")
	}
	if VerifyPassword("Admin123", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestPasswordHashIsSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if h1 == h2 {
		t.Fatal("two hashes of one password are identical; salt missing")
	}
	if !VerifyPassword("same-password", h1) || !VerifyPassword("same-password", h2) {
		t.Fatal("salted hashes must still verify")
	}
}
