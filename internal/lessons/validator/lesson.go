package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"aulario/pkg/logger"
	"aulario/pkg/model"

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

type LessonValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewLessonValidator(log *logger.Logger) *LessonValidator {
	v := validator.New()

	if err := v.RegisterValidation("lesson_date", validateLessonDate); err != nil {
		log.Fatal("Failed to register 'lesson_date' validator",
			"error", err,
		)
	}
	if err := v.RegisterValidation("lesson_time", validateLessonTime); err != nil {
		log.Fatal("Failed to register 'lesson_time' validator",
			"error", err,
		)
	}

	log.Info("Lesson validator initialized successfully")

	return &LessonValidator{
		validate: v,
		logger:   log,
	}
}

// validateLessonDate accepts ISO calendar dates, e.g. "2026-03-02".
func validateLessonDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// validateLessonTime accepts 24h wall-clock times, e.g. "09:15".
func validateLessonTime(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

func (v *LessonValidator) Validate(lesson *model.Lesson) error {
	if err := v.validate.Struct(lesson); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if lesson.EndTime != "" && lesson.EndTime <= lesson.StartTime {
		return ValidationErrors{
			ValidationError{
				Field:   "EndTime",
				Message: "end_time must be after start_time",
			},
		}
	}

	return nil
}

func (v *LessonValidator) ValidateUpdate(update *model.LessonUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.EndTime != nil && *update.EndTime != "" {
		if _, err := time.Parse("15:04", *update.EndTime); err != nil {
			return ValidationErrors{
				ValidationError{
					Field:   "EndTime",
					Message: "end_time must be a 24h wall-clock time (e.g. 10:30)",
				},
			}
		}
		if update.StartTime != "" && *update.EndTime <= update.StartTime {
			return ValidationErrors{
				ValidationError{
					Field:   "EndTime",
					Message: "end_time must be after start_time",
				},
			}
		}
	}

	return nil
}

func (v *LessonValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "lesson_date":
			message = fmt.Sprintf("%s must be an ISO calendar date (e.g. 2026-03-02)", err.Field())
		case "lesson_time":
			message = fmt.Sprintf("%s must be a 24h wall-clock time (e.g. 09:15)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
