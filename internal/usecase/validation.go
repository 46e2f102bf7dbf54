package usecase

import "strings"

func ValidateSubmitLeadInput(input SubmitLeadInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return &ValidationError{Message: "Name and email are required."}
	}
	return nil
}
