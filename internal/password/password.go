// Package password wraps bcrypt hashing for stored credentials. The salt is
// embedded in the hash, so verification only needs the stored value.
package password

import (
	customerrors "forum/internal/customErrors"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor applied to every new hash.
const Cost = bcrypt.DefaultCost

func Hash(password string) (string, error) {
	if password == "" {
		return "", customerrors.ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. A mismatch is not
// an error, it just returns false.
func Verify(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
