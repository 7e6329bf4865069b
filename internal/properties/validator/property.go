package validator

import (
	"errors"
	"fmt"
	"strings"

	"rumahstay/pkg/logger"
	"rumahstay/pkg/model"
	"rumahstay/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type PropertyValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPropertyValidator(log *logger.Logger) *PropertyValidator {
	v := validator.New()

	if err := v.RegisterValidation("my_phone", validateWhatsAppNumber); err != nil {
		log.Fatal("Failed to register 'my_phone' validator", "error", err)
	}

	log.Info("Property validator initialized successfully")

	return &PropertyValidator{
		validate: v,
		logger:   log,
	}
}

// validateWhatsAppNumber accepts any number a supported region (MY, SG)
// can parse into a valid E.164 contact.
func validateWhatsAppNumber(fl validator.FieldLevel) bool {
	return sanitizer.NormalizePhone(fl.Field().String()) != ""
}

func (v *PropertyValidator) Validate(property *model.Property) error {
	if err := v.validate.Struct(property); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *PropertyValidator) ValidateUpdate(update *model.PropertyUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ValidateStep checks one page of the multi-step listing form. Later
// pages do not re-check earlier ones; the full Validate runs on submit.
func (v *PropertyValidator) ValidateStep(draft *model.PropertyDraft, step int) error {
	switch step {
	case 1:
		var errs ValidationErrors
		if len(strings.TrimSpace(draft.Title)) < 2 {
			errs = append(errs, ValidationError{Field: "Title", Message: "title must be at least 2 characters"})
		}
		if len(strings.TrimSpace(draft.Description)) < 10 {
			errs = append(errs, ValidationError{Field: "Description", Message: "description must be at least 10 characters"})
		}
		if len(errs) > 0 {
			return errs
		}
		return nil

	case 2:
		if err := v.validate.Struct(&draft.Location); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				return v.translateValidationErrors(validationErrs)
			}
			return err
		}
		return nil

	case 3:
		var errs ValidationErrors
		if draft.PricePerNightSen < 1 {
			errs = append(errs, ValidationError{Field: "PricePerNightSen", Message: "nightly price must be positive"})
		}
		if draft.MaxGuests < 1 {
			errs = append(errs, ValidationError{Field: "MaxGuests", Message: "guest capacity must be at least 1"})
		}
		if sanitizer.NormalizePhone(draft.WhatsAppNumber) == "" {
			errs = append(errs, ValidationError{Field: "WhatsAppNumber", Message: "whatsapp_number must be a valid Malaysian or Singaporean number"})
		}
		if len(errs) > 0 {
			return errs
		}
		return nil

	case 4:
		if len(sanitizer.NormalizeAmenities(draft.Amenities)) == 0 {
			return ValidationErrors{
				ValidationError{Field: "Amenities", Message: "at least one amenity is required"},
			}
		}
		return nil

	default:
		return ValidationErrors{
			ValidationError{Field: "Step", Message: fmt.Sprintf("step must be between 1 and 4, got %d", step)},
		}
	}
}

func (v *PropertyValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		case "numeric":
			message = fmt.Sprintf("%s must contain only digits", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "my_phone":
			message = fmt.Sprintf("%s must be a valid Malaysian or Singaporean phone number", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "url":
			message = fmt.Sprintf("%s must contain valid URLs", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
