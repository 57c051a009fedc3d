package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sonit/feedbacksite/internal/constants"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
)

// normalizeName trims a tab or sub-tab name and checks its length.
func normalizeName(what, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apierrors.Validation(fmt.Sprintf("%s name cannot be empty", what))
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return "", apierrors.Validation(fmt.Sprintf("%s name must be at most %d characters", what, constants.MaxNameLength))
	}
	return name, nil
}
