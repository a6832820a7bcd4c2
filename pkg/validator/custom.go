package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("phone", validatePhone)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180.0 && lng <= 180.0
}

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// At least 10 digits once separators are stripped, optional leading +.
func validatePhone(fl validator.FieldLevel) bool {
	cleaned := nonPhoneChars.ReplaceAllString(fl.Field().String(), "")
	if len(cleaned) < 10 {
		return false
	}
	if cleaned[0] == '+' {
		cleaned = cleaned[1:]
	}
	for _, c := range cleaned {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(cleaned) >= 10
}
