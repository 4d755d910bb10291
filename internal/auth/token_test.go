package auth

import (
	"testing"
	"time"

	"github.com/iliyamo/product-inventory/internal/model"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	u := model.User{ID: 123, Username: "johndoe", Email: "john@example.com"}

	tok, err := IssueToken("super-secret", u, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims, err := VerifyToken("super-secret", tok)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("user id mismatch: got %d want %d", claims.UserID, u.ID)
	}
	if claims.Username != u.Username || claims.Email != u.Email {
		t.Fatalf("identity mismatch: got %q/%q", claims.Username, claims.Email)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issued-at %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	u := model.User{ID: 1, Username: "u1"}
	tok, err := IssueToken("secret", u, -1*time.Minute)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken("secret", tok)
	if err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("right-secret", model.User{ID: 2}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken("wrong-secret", tok)
	if err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := VerifyToken("k", "not.a.jwt")
	if err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}
}

func TestPassword_HashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("SecurePass123!", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "SecurePass123!" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "SecurePass123!") {
		t.Fatal("verify must succeed for the original password")
	}
	if VerifyPassword(hash, "OtherPass123!") {
		t.Fatal("verify must fail for a different password")
	}
}
