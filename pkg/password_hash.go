package pkg

import "golang.org/x/crypto/bcrypt"

// PasswordHashCost matches the cost used for the stored hashes of existing accounts.
const PasswordHashCost = 10

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
