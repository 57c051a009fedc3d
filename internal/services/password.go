package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sonit/feedbacksite/internal/constants"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
)

// ValidatePassword checks the password policy and reports every rule the
// password violates in one validation error.
func ValidatePassword(password string) error {
	var (
		hasDigit   bool
		hasUpper   bool
		hasLower   bool
		hasSpecial bool
		length     int
	)

	for _, r := range password {
		length++
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case !unicode.IsLetter(r):
			hasSpecial = true
		}
	}

	var problems []string
	if length < constants.MinPasswordLength {
		problems = append(problems, fmt.Sprintf("be at least %d characters long", constants.MinPasswordLength))
	}
	if len(password) > constants.MaxPasswordBytes {
		problems = append(problems, fmt.Sprintf("be at most %d bytes long", constants.MaxPasswordBytes))
	}
	if !hasDigit {
		problems = append(problems, "contain a digit")
	}
	if !hasUpper {
		problems = append(problems, "contain an uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "contain a lowercase letter")
	}
	if !hasSpecial {
		problems = append(problems, "contain a special character")
	}

	if len(problems) > 0 {
		return apierrors.Validation("password must " + strings.Join(problems, ", "))
	}
	return nil
}
