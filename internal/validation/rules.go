package validation

import (
	"fmt"
	"regexp"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()

	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{4,15}$`)
	allDigits       = regexp.MustCompile(`^[0-9]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return usernamePattern.MatchString(s) && !allDigits.MatchString(s)
	})
	return v
}

// IsStrongPassword requires at least 6 characters with a lowercase letter, an
// uppercase letter, a digit and a symbol.
func IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < 6 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// Var checks value against a validator tag and reports kind with message on failure.
func Var(field, value, tag string, kind Kind, message string) Rule {
	return func() *FieldError {
		if err := validate.Var(value, tag); err != nil {
			return &FieldError{Field: field, Kind: kind, Message: message}
		}
		return nil
	}
}

// Required rejects empty values.
func Required(field, value string) Rule {
	return Var(field, value, "required", KindRequired, field+" is required")
}

// Length bounds the rune count of value.
func Length(field, value string, min, max int) Rule {
	return Var(field, value, fmt.Sprintf("min=%d,max=%d", min, max), KindLength,
		fmt.Sprintf("%s length must be from %d to %d", field, min, max))
}

// Email checks the address format.
func Email(field, value string) Rule {
	return Var(field, value, "email", KindFormat, "email is invalid")
}

// StrongPassword enforces the password policy of IsStrongPassword.
func StrongPassword(field, value string) Rule {
	return Var(field, value, "strongpassword", KindWeak,
		field+" must be at least 6 characters long and contain at least 1 lowercase letter, 1 uppercase letter, 1 number and 1 symbol")
}

// Matches requires value to equal other.
func Matches(field, value, other, message string) Rule {
	return func() *FieldError {
		if value != other {
			return &FieldError{Field: field, Kind: KindMismatch, Message: message}
		}
		return nil
	}
}

// ISO8601Date requires an RFC 3339 timestamp or a YYYY-MM-DD date.
func ISO8601Date(field, value string) Rule {
	return func() *FieldError {
		if _, err := ParseDate(value); err != nil {
			return &FieldError{Field: field, Kind: KindFormat, Message: field + " must be ISO8601"}
		}
		return nil
	}
}

// ParseDate parses the date formats accepted by ISO8601Date.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, value)
}

// Optional runs rule only when value is non-empty.
func Optional(value string, rule Rule) Rule {
	return func() *FieldError {
		if value == "" {
			return nil
		}
		return rule()
	}
}
