package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost intentionally sits above the library default; hashing takes a
// few hundred milliseconds, which is the point.
const bcryptCost = 12

// HashPassword produces a salted bcrypt hash. The salt is generated fresh on
// every call, so hashing the same password twice yields different strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// Malformed hashes, plaintext, or output of other algorithms simply return
// false.
func VerifyPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
