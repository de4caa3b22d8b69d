package core

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret1" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !VerifyPassword("secret1", hash) {
		t.Fatalf("expected verify to succeed for matching password")
	}
}

func TestHashPassword_SaltVaries(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input must differ (salt)")
	}
	if !VerifyPassword("same-password", h1) || !VerifyPassword("same-password", h2) {
		t.Fatalf("both encodings must verify the original password")
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("right")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if VerifyPassword("wrong", hash) {
		t.Fatalf("expected verify to fail for wrong password")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	// Malformed stored hashes are a verification failure, never a panic.
	for _, hashed := range []string{"", "not-a-bcrypt-hash", "$2a$garbage"} {
		if VerifyPassword("anything", hashed) {
			t.Fatalf("expected verify to fail for malformed hash %q", hashed)
		}
	}
}
