package validation

import (
	"fmt"
	"strings"
	"time"

	errors "github.com/joshwmy/record-management/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
	errors []errors.ValidationError
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
		errors: make([]errors.ValidationError, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

// OneOf rejects string values outside the allowed set. Empty values pass so
// optional enum fields can combine with Required as needed.
func (fv *FieldValidator) OneOf(allowed []string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok && v != "" {
			for _, a := range allowed {
				if v == a {
					return nil
				}
			}
			return errors.NewValidationFieldError(fv.FieldName,
				fmt.Sprintf("%s must be one of %s", fv.FieldName, strings.Join(allowed, ", ")), code)
		}
		return nil
	})
	return fv
}

// Date rejects string values that do not parse with the given layouts.
func (fv *FieldValidator) Date(layouts ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		for _, layout := range layouts {
			if _, err := time.Parse(layout, v); err == nil {
				return nil
			}
		}
		return errors.NewValidationFieldError(fv.FieldName,
			fmt.Sprintf("%s is not a valid date", fv.FieldName), errors.ErrCodeInvalidDate)
	})
	return fv
}

func (fv *FieldValidator) MinInt(min int64, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(int64); ok {
			if v < min {
				return errors.NewValidationFieldError(fv.FieldName,
					fmt.Sprintf("%s must be at least %d", fv.FieldName, min), code)
			}
		}
		return nil
	})
	return fv
}

// Validate runs every registered validator and collects field errors.
func (v *ValidationBuilder) Validate() *errors.AppError {
	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if appErr := validator(field.Value); appErr != nil {
				if ve, ok := appErr.Details.(errors.ValidationErrors); ok {
					v.errors = append(v.errors, ve.Errors...)
				}
			}
		}
	}

	if len(v.errors) > 0 {
		return &errors.AppError{
			Type:       errors.ErrorTypeValidation,
			Code:       errors.ErrCodeValidationFailed,
			Message:    "Validation failed",
			StatusCode: 400,
			Details:    errors.ValidationErrors{Errors: v.errors},
		}
	}
	return nil
}
