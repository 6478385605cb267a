package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Booking status validation
	validate.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"pending", "confirmed", "cancelled", "completed"}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Photo category validation
	validate.RegisterValidation("photo_category", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		validCategories := []string{"general", "portrait", "wedding", "landscape", "event", "commercial", ""}
		for _, c := range validCategories {
			if category == c {
				return true
			}
		}
		return false
	})

	// Service type validation
	validate.RegisterValidation("service_type", func(fl validator.FieldLevel) bool {
		service := fl.Field().String()
		validServices := []string{"portrait", "wedding", "event", "commercial", "family", "other"}
		for _, s := range validServices {
			if service == s {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "booking_status":
			errors[field] = "Invalid status. Must be: pending, confirmed, cancelled, or completed"
		case "photo_category":
			errors[field] = "Invalid category"
		case "service_type":
			errors[field] = "Invalid service type"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
