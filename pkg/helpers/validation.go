package helpers

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// rfcRegex matches Mexican RFC tax identifiers (personas morales y fisicas).
var rfcRegex = regexp.MustCompile(`^[A-ZÑ&]{3,4}[0-9]{6}[A-Z0-9]{2,3}$`)

// CustomValidator wraps go-playground validator with domain rules
type CustomValidator struct {
	validate *validator.Validate
}

// NewCustomValidator creates a new custom validator
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("rfc", validateRFC)
	v.RegisterValidation("address_type", validateAddressType)

	return &CustomValidator{validate: v}
}

// Validate validates a struct
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// validateRFC validates a Mexican RFC tax identifier (case-insensitive input)
func validateRFC(fl validator.FieldLevel) bool {
	return rfcRegex.MatchString(NormalizeRFC(fl.Field().String()))
}

// validateAddressType validates the address type tag
func validateAddressType(fl validator.FieldLevel) bool {
	switch NormalizeAddressType(fl.Field().String()) {
	case "BILLING", "SHIPPING":
		return true
	}
	return false
}
