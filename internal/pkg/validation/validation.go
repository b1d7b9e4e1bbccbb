package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"semdex-backend/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

// Same shape as the login form's check: something@something.tld
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DefaultRegion is used to parse phone identifiers written without a country prefix.
const DefaultRegion = "MU"

// Identifier kinds reported by ClassifyIdentifier.
const (
	KindEmail   = "email"
	KindPhone   = "phone"
	KindUnknown = "unknown"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report json names so errors match request bodies
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
			}
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ClassifyIdentifier reports whether a login identifier looks like an email or a phone number.
// It is informational only; login matching is always exact.
func ClassifyIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if IsValidEmail(identifier) {
		return KindEmail
	}
	if _, err := libphonenumber.Parse(identifier, DefaultRegion); err == nil {
		return KindPhone
	}
	return KindUnknown
}

// Struct validates v against its `validate` tags and converts failures to a *domain.ValidationError.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError(err.Error(), nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return domain.NewValidationError("Invalid input", fields)
}
