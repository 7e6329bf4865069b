package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rumahstay/pkg/calendar"
	"rumahstay/pkg/logger"
	"rumahstay/pkg/model"

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

type BookingValidator struct {
	validate      *validator.Validate
	logger        *logger.Logger
	maxStayNights int
}

func NewBookingValidator(log *logger.Logger, maxStayNights int) *BookingValidator {
	v := validator.New()

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate:      v,
		logger:        log,
		maxStayNights: maxStayNights,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	checkIn := calendar.Truncate(booking.CheckIn)
	checkOut := calendar.Truncate(booking.CheckOut)

	if !checkIn.Equal(booking.CheckIn) || !checkOut.Equal(booking.CheckOut) {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckIn",
				Message: "stay dates must be day-granularity UTC values",
			},
		}
	}

	nights := calendar.DaysBetween(checkIn, checkOut)
	if nights < 1 {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckOut",
				Message: "check-out must be after check-in",
			},
		}
	}
	if v.maxStayNights > 0 && nights > v.maxStayNights {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckOut",
				Message: fmt.Sprintf("stay length (%d nights) exceeds the maximum of %d nights", nights, v.maxStayNights),
			},
		}
	}

	if !calendar.After(checkIn, calendar.Truncate(time.Now())) {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckIn",
				Message: "check-in must be at least one day ahead",
			},
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
