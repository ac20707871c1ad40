package snapshot

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxTagLength bounds the size of a single tag.
const MaxTagLength = 64

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateCreateInput validates fields required to create a snapshot.
func ValidateCreateInput(req CreateRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}
	if err := validateURLs(req.URLs); err != nil {
		return err
	}
	if err := validateFiles(req.Files); err != nil {
		return err
	}
	return validateTags(req.Tags)
}

// ValidatePatch validates the fields present in a partial update.
func ValidatePatch(p Patch) error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalidStatusError()
	}
	if p.URLs != nil {
		if err := validateURLs(*p.URLs); err != nil {
			return err
		}
	}
	if p.Files != nil {
		if err := validateFiles(*p.Files); err != nil {
			return err
		}
	}
	if p.Tags != nil {
		return validateTags(*p.Tags)
	}
	return nil
}

func validateName(name string) error {
	if err := validate.Var(name, "notblank"); err != nil {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

func validateURLs(urls []string) error {
	for i, u := range urls {
		if err := validate.Var(u, "required,url"); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("urls[%d]", i),
				Message: fmt.Sprintf("urls[%d] must be a valid absolute URL", i),
			}
		}
	}
	return nil
}

func validateFiles(files []FileLocation) error {
	for i, f := range files {
		err := validate.Struct(f)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return fmt.Errorf("validating files[%d]: %w", i, err)
		}
		fe := fieldErrs[0]
		field := fmt.Sprintf("files[%d].%s", i, fe.Field())
		msg := field + " is invalid"
		switch fe.Tag() {
		case "required":
			msg = field + " is required"
		case "gte":
			msg = field + " must not be negative"
		}
		return &ValidationError{Field: field, Message: msg}
	}
	return nil
}

func validateTags(tags []string) error {
	for i, tag := range tags {
		if err := validate.Var(tag, "notblank"); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("tags[%d]", i),
				Message: fmt.Sprintf("tags[%d] must not be blank", i),
			}
		}
		if err := validate.Var(tag, fmt.Sprintf("max=%d", MaxTagLength)); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("tags[%d]", i),
				Message: fmt.Sprintf("tags[%d] must be at most %d characters", i, MaxTagLength),
			}
		}
	}
	return nil
}
