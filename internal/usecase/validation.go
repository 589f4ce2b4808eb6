package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) < 2 {
		errors = append(errors, ValidationError{"name", "must have at least 2 characters"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.BusinessType) == "" {
		errors = append(errors, ValidationError{"business_type", "is required"})
	} else if len(input.BusinessType) > 100 {
		errors = append(errors, ValidationError{"business_type", "must not exceed 100 characters"})
	}

	if strings.TrimSpace(input.Requirement) == "" {
		errors = append(errors, ValidationError{"requirement", "is required"})
	} else if len(input.Requirement) > 5000 {
		errors = append(errors, ValidationError{"requirement", "must not exceed 5000 characters"})
	}

	// budget e timeline são opcionais: o formulário manda brackets fixos,
	// mas o banco guarda texto livre. Só limitamos o tamanho.
	if len(input.Budget) > 100 {
		errors = append(errors, ValidationError{"budget", "must not exceed 100 characters"})
	}
	if len(input.Timeline) > 100 {
		errors = append(errors, ValidationError{"timeline", "must not exceed 100 characters"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	return len(cleaned) >= 7 && len(cleaned) <= 15
}
