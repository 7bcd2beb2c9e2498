package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	namespaceSeparator = "."
	emptyTagName       = "-"
	yamlTagName        = "yaml"
	requiredTagName    = "required"
)

// WriteFile writes data to path, replacing any previous content
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, global.FilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// GetConfigFileName returns the path of the configuration file `name` in dir.
// Both yaml extensions are accepted, the exact name is preferred when both exist.
func GetConfigFileName(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	if ext != ".yaml" && ext != ".yml" {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return "", errs.New(fmt.Sprintf("`%s` configuration file not found", name))
		}
		return filepath.Join(dir, name), nil
	}
	matches, _ := doublestar.Glob(os.DirFS(dir), strings.TrimSuffix(name, ext)+".{yml,yaml}")
	if len(matches) == 0 {
		return "", errs.New(fmt.Sprintf("`%s` configuration file not found", name))
	}
	path := matches[0]
	for _, match := range matches {
		if match == name {
			path = match
		}
	}
	return filepath.Join(dir, path), nil
}

// ValidateStruct validates config against its `validate` tags.
// source names the configuration in the returned error.
func ValidateStruct(config interface{}, source string) error {
	validate, err := getValidator()
	if err != nil {
		return err
	}
	return validateStruct(validate, config, source)
}

// configureValidator configure the struct validator
func configureValidator(validate *validator.Validate, trans ut.Translator) {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// nolint: gomnd
		name := strings.SplitN(fld.Tag.Get(yamlTagName), ",", 2)[0]
		if name == emptyTagName || name == "" {
			return fld.Name
		}
		return name
	})

	// nolint: errcheck
	validate.RegisterTranslation(requiredTagName, trans, func(ut ut.Translator) error {
		return ut.Add(requiredTagName, "{0} field is required!", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		i := strings.Index(fe.Namespace(), namespaceSeparator)
		t, _ := ut.T(requiredTagName, fe.Namespace()[i+1:])
		return t
	})
}

func getValidator() (*validator.Validate, error) {
	enObj := en.New()
	uni := ut.New(enObj, enObj)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	configureValidator(validate, trans)
	return validate, nil
}

func validateStruct(validate *validator.Validate, config interface{}, source string) error {
	validateErr := validate.Struct(config)
	if validateErr != nil {
		// translate all error at once
		validationErrs := validateErr.(validator.ValidationErrors)
		err := new(errs.ErrInvalidConf)
		err.Message = errs.New(
			fmt.Sprintf(
				"Invalid values provided for the following fields in the `%s` configuration: \n",
				source),
		).Error()
		for _, e := range validationErrs {
			err.Fields = append(err.Fields, e.Field())
			err.Values = append(err.Values, e.Value())
		}
		return err
	}
	return nil
}
