package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ticketly/ticketly/internal/common"
)

// Form limits enforced by the terminal client before it calls the store.
// The ticket repository itself does not check them.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// ValidateForm checks a title/description pair the way the ticket forms do.
// All problems are reported together.
func ValidateForm(title, description string) error {
	var errs []error

	title = strings.TrimSpace(title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		errs = append(errs, errors.New("title is required"))
	case n < TitleMinLen:
		errs = append(errs, fmt.Errorf("title must be at least %d characters", TitleMinLen))
	case n > TitleMaxLen:
		errs = append(errs, fmt.Errorf("title must be at most %d characters", TitleMaxLen))
	}

	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		errs = append(errs, fmt.Errorf("description must be at most %d characters", DescriptionMaxLen))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", common.ErrValidation, errors.Join(errs...))
}

// ValidateSignup requires every signup field and a plausible email.
func ValidateSignup(email, password, name string) error {
	var errs []error

	if strings.TrimSpace(name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs = append(errs, errors.New("email is required"))
	case !strings.Contains(email, "@"):
		errs = append(errs, errors.New("email must contain @"))
	}
	if password == "" {
		errs = append(errs, errors.New("password is required"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", common.ErrValidation, errors.Join(errs...))
}
