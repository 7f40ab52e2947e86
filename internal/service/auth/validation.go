package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

const minPasswordLength = 6

var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

func validatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("%w: number is required", ErrInvalidInput)
	}
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: number must be 7-15 digits (optional +)", ErrInvalidInput)
	}
	return nil
}

func validatePassword(password, repeat string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: password length must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if repeat != "" && repeat != password {
		return fmt.Errorf("%w: password and repeat password must be the same", ErrInvalidInput)
	}
	return nil
}

func normalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
