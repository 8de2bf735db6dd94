package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if c.General == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "general",
			Message:   "configuration must contain 'general' section",
		})
		return validationErrors
	}

	if err := validate.Struct(c.General); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "general", "")...)
	}

	if c.API != nil {
		if err := validate.Struct(c.API); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "api", "")...)
		}
		if c.API.RateLimitRPS > 0 && c.API.RateLimitBurst < 1 {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: "api.rate_limit_burst",
				Message:   "must be >= 1 when rate_limit_rps is set",
			})
		}
	}

	if c.DNS != nil {
		if err := validate.Struct(c.DNS); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "dns", "")...)
		}
	}

	if c.Watch != nil {
		if err := validate.Struct(c.Watch); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "watch", "")...)
		}
	}

	if c.API != nil && c.DNS != nil && c.DNS.Enable && c.API.ListenAddr == c.DNS.ListenAddr {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "dns.listen_addr",
			Message:   fmt.Sprintf("conflicts with api.listen_addr %s", c.API.ListenAddr),
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because we registered TagNameFunc
				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + e.Field()
				} else {
					fieldPath = e.Field()
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
