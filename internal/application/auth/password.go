package auth

import (
	"net/mail"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 128
)

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// validatePassword exige longitud 8..128, una mayúscula, una minúscula y un dígito.
func validatePassword(field, pw string) error {
	if n := len(pw); n < minPasswordLen || n > maxPasswordLen {
		return domain.Invalid(field, "debe tener entre %d y %d caracteres", minPasswordLen, maxPasswordLen)
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case !upper:
		return domain.Invalid(field, "debe contener al menos una mayúscula")
	case !lower:
		return domain.Invalid(field, "debe contener al menos una minúscula")
	case !digit:
		return domain.Invalid(field, "debe contener al menos un número")
	}
	return nil
}

// HashPassword valida la fortaleza y devuelve el hash bcrypt.
func HashPassword(field, pw string) (string, error) {
	if err := validatePassword(field, pw); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
