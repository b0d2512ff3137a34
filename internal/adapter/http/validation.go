package http

import (
	"math"
	"regexp"
	"sort"

	"github.com/go-playground/validator/v10"

	"insurance-brokerage/internal/validation"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	_ = v.RegisterValidation("alpha_es", func(fl validator.FieldLevel) bool {
		return validation.IsAlpha(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return validation.IsIsoDate(fl.Field().String())
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return validation.IsDigitsOnly(fl.Field().String())
	})
	_ = v.RegisterValidation("decstr", func(fl validator.FieldLevel) bool {
		return validation.IsDecimal(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "alpha_es":
			out = append(out, FieldError{Field: field, Message: "must contain letters and spaces only"})
		case "isodate":
			out = append(out, FieldError{Field: field, Message: "must be a YYYY-MM-DD date"})
		case "digits":
			out = append(out, FieldError{Field: field, Message: "must contain digits only"})
		case "decstr":
			out = append(out, FieldError{Field: field, Message: "must be a decimal number"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " long"})
		case "len":
			out = append(out, FieldError{Field: field, Message: "must be exactly " + e.Param() + " long"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

// fromMap renders a field -> message map in stable field order.
func fromMap(m map[string]string) []FieldError {
	out := make([]FieldError, 0, len(m))
	for f, msg := range m {
		out = append(out, FieldError{Field: f, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
