package contact

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Submission is a contact form payload after normalization. Validation
// runs against the normalized values, so "required" means non-empty after
// trimming.
type Submission struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,contactemail"`
	Phone    string `json:"phone" validate:"omitempty,usphone"`
	Date     string `json:"date" validate:"omitempty,isodate"`
	Location string `json:"location" validate:"required"`
	Message  string `json:"message" validate:"required"`

	Instruments []string `json:"instruments"`
	Genres      []string `json:"genres"`
	GenreOther  string   `json:"genre_other"`
	FormName    string   `json:"formName"`
}

// emailPattern is deliberately loose: local@domain.tld with a 2+ char TLD.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidISODate reports whether s is a real calendar date in YYYY-MM-DD
// form. No silent correction: 2026-02-31 fails.
func IsValidISODate(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsValidPhone accepts anything that resolves to 10 or 11 digits.
func IsValidPhone(s string) bool {
	n := len(Digits(s))
	return n == 10 || n == 11
}

// NewValidator builds the validator with the form's custom rules
// registered. Field names in errors come from the json tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("usphone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return IsValidISODate(fl.Field().String())
	})
	return v
}

var fieldMessages = map[string]string{
	"name.required":      "Name is required.",
	"email.required":     "Email is required.",
	"email.contactemail": "Email looks invalid.",
	"location.required":  "Location is required.",
	"message.required":   "Message is required.",
	"date.isodate":       "Event date must be YYYY-MM-DD format.",
	"phone.usphone":      "Phone number looks invalid. Use format: (804) 555-1234",
}

// Validate returns a field → message map covering every failing field.
// An empty map means the submission is valid.
func Validate(v *validator.Validate, s Submission) map[string]string {
	errs := map[string]string{}
	err := v.Struct(s)
	if err == nil {
		return errs
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = "Validation failed."
		return errs
	}
	for _, fe := range validationErrs {
		key := fe.Field() + "." + fe.Tag()
		if msg, found := fieldMessages[key]; found {
			errs[fe.Field()] = msg
		} else {
			errs[fe.Field()] = fe.Field() + " is invalid"
		}
	}
	return errs
}
