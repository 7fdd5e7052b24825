package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ErrPasswordFormat is returned when a password does not satisfy the
// registration policy.
var ErrPasswordFormat = errors.New("password must include at least one capital letter, one number, and one symbol")

// CheckPasswordFormat enforces the registration password policy: at least
// one uppercase letter, one digit and one symbol or punctuation character.
// There is no minimum length.
func CheckPasswordFormat(password string) error {
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsSymbol(r) || unicode.IsPunct(r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasDigit || !hasSymbol {
		return ErrPasswordFormat
	}
	return nil
}
