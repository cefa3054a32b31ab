// Package inputval wraps go-playground/validator with English messages keyed
// by JSON field names, plus the small format checks shared by handlers and
// the record validator.
package inputval

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	once  sync.Once
	v     *validator.Validate
	trans ut.Translator
)

// Validator returns the shared validator, configured on first use.
func Validator() *validator.Validate {
	once.Do(setup)
	return v
}

func setup() {
	v = validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names in errors, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)
}

// Struct validates s and returns nil or a field -> message map.
func Struct(s any) map[string]string {
	if err := Validator().Struct(s); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// TranslateErrors turns a validation error into field -> message. Any other
// error is reported under "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// IsValidEmail reports whether s (trimmed) is a bare email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return Validator().Var(s, "email") == nil
}
