package validators

import "github.com/go-playground/validator/v10"

// Validator adapts go-playground/validator to echo.Validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates a bound form or request struct
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldErrors flattens a validation error into a field -> message map for
// form re-rendering. Unknown error shapes map to a single form-level entry.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["__all__"] = "Invalid input"
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "This field is required"
		case "email":
			out[fe.Field()] = "Enter a valid email address"
		case "min":
			out[fe.Field()] = "Value is too short"
		case "max":
			out[fe.Field()] = "Value is too long"
		default:
			out[fe.Field()] = "Invalid value"
		}
	}
	return out
}
