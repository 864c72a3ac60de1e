package util

import "golang.org/x/crypto/bcrypt"

// Cost 12 is the hashing work factor for stored credentials.
const passwordHashCost = 12

// HashPassword derives the bcrypt digest stored in the user directory.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plain password matches the stored
// digest. It never distinguishes a malformed digest from a mismatch.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
