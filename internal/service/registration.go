package service

import (
	"evaluator/internal/domain"
	"evaluator/internal/validation"
)

var registrationMessages = map[string]string{
	"name":     "Name must be at least 3 characters long.",
	"email":    "Please enter a valid email.",
	"password": "Password must be at least 6 characters long.",
	"mobile":   "Mobile number must be 10 digits.",
}

type RegistrationService struct {
	validator *validation.Validator
}

func NewRegistrationService(v *validation.Validator) *RegistrationService {
	return &RegistrationService{validator: v}
}

// Validate returns nil when every field passes, otherwise an
// *errdefs.ValidationError with one message per failing field.
func (s *RegistrationService) Validate(form domain.Registration) error {
	return s.validator.Struct(form, registrationMessages)
}
