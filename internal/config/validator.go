package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const deckFileTag = "deckfile"

// newValidator returns a validator naming fields by their config key.
func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation(deckFileTag, isDeckFile); err != nil {
		return nil, nil, fmt.Errorf("failed to register %s validation: %w", deckFileTag, err)
	}
	if err := validate.RegisterTranslation(deckFileTag, trans, func(ut ut.Translator) error {
		return ut.Add(deckFileTag, "{0} must be a readable .yml or .yaml deck file, got {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		msg, _ := ut.T(deckFileTag, strings.TrimPrefix(fe.Namespace(), "Config."), fmt.Sprint(fe.Value()))
		return msg
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register %s translation: %w", deckFileTag, err)
	}

	return validate, trans, nil
}

// isDeckFile accepts regular YAML files the process can open.
func isDeckFile(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
	default:
		return false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	return f.Close() == nil
}
