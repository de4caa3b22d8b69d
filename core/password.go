package core

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt encoding of plaintext. The encoding embeds
// a fresh salt, so two calls on the same input produce different strings.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
// A malformed hash is a verification failure, not an error.
func VerifyPassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// dummyHash is a valid bcrypt encoding of an unguessable throwaway value.
// Authenticate compares against it when the account does not exist so the
// unknown-email path costs the same as a real comparison.
var dummyHash = func() string {
	h, err := HashPassword("user-account-api-dummy-credential")
	if err != nil {
		panic(err)
	}
	return h
}()
