package clients

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/soft-m/softm-api/internal/platform/httpx"
)

var (
	siretPattern      = regexp.MustCompile(`^[0-9]{14}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
	phonePattern      = regexp.MustCompile(`^(\+33|0)[1-9]( ?[0-9]{2}){4}$`)
	emailPattern      = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$")
)

// Fixed messages for the format rules.
const (
	MsgInvalidSIRET      = "SIRET must contain exactly 14 digits"
	MsgInvalidPostalCode = "Postal code must contain 5 digits"
	MsgInvalidPhone      = "Invalid French phone format"
	MsgInvalidEmail      = "email must be an email"
)

// IsSIRET reports whether s is exactly 14 ASCII digits.
func IsSIRET(s string) bool { return siretPattern.MatchString(s) }

// IsPostalCode reports whether s is exactly 5 ASCII digits.
func IsPostalCode(s string) bool { return postalCodePattern.MatchString(s) }

// IsFrenchPhone reports whether s is a French number: +33 or 0, a digit 1-9,
// then four pairs of digits optionally separated by single spaces.
func IsFrenchPhone(s string) bool { return phonePattern.MatchString(s) }

// IsEmail reports whether the trimmed s looks like local@domain.tld.
func IsEmail(s string) bool { return emailPattern.MatchString(strings.TrimSpace(s)) }

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "siret", func(fl validator.FieldLevel) bool { return IsSIRET(fl.Field().String()) })
	mustRegister(v, "postalcode", func(fl validator.FieldLevel) bool { return IsPostalCode(fl.Field().String()) })
	mustRegister(v, "frphone", func(fl validator.FieldLevel) bool { return IsFrenchPhone(fl.Field().String()) })
	mustRegister(v, "contactemail", func(fl validator.FieldLevel) bool { return IsEmail(fl.Field().String()) })
	mustRegister(v, "clienttype", func(fl validator.FieldLevel) bool {
		return ClientType(fl.Field().String()).Valid()
	})
	mustRegister(v, "accountingsystem", func(fl validator.FieldLevel) bool {
		return AccountingSystem(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("clients: register %s validation: %v", tag, err))
	}
}

// validateCreate runs every rule in one pass and collects all failures.
func validateCreate(v *validator.Validate, req CreateClientRequest) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("clients: validate: %w", err)
	}
	out := &httpx.ValidationError{Fields: make([]httpx.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, httpx.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " should not be empty"
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", fe.Field(), fe.Param())
	case "siret":
		return MsgInvalidSIRET
	case "postalcode":
		return MsgInvalidPostalCode
	case "frphone":
		return MsgInvalidPhone
	case "contactemail":
		return MsgInvalidEmail
	case "clienttype":
		return enumMessage(fe.Field(), ClientTypes())
	case "accountingsystem":
		return enumMessage(fe.Field(), AccountingSystems())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

func enumMessage[T ~string](field string, values []T) string {
	return fmt.Sprintf("%s must be one of the following values: %s", field, strings.Join(enumStrings(values), ", "))
}
