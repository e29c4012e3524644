package hash

import "golang.org/x/crypto/bcrypt"

// Cost 12 keeps offline brute force expensive without dominating login latency.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hashbytes), nil
}

// CheckPassword reports whether password matches the stored digest.
// Every bcrypt failure, including a malformed digest, reads as a plain
// mismatch so callers cannot tell the cases apart.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
