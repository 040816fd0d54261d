package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces the bcrypt hash stored in the credential store.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
