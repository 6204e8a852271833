package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"aulario/pkg/logger"
	"aulario/pkg/model"

	"github.com/go-playground/validator/v10"
)

var (
	codeRegex = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)
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

type ClassroomValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewClassroomValidator(log *logger.Logger) *ClassroomValidator {
	v := validator.New()

	if err := v.RegisterValidation("classroom_code", validateClassroomCode); err != nil {
		log.Fatal("Failed to register 'classroom_code' validator",
			"error", err,
		)
	}

	log.Info("Classroom validator initialized successfully")

	return &ClassroomValidator{
		validate: v,
		logger:   log,
	}
}

// validateClassroomCode accepts normalized codes like "AULA-B-12".
func validateClassroomCode(fl validator.FieldLevel) bool {
	return codeRegex.MatchString(fl.Field().String())
}

func (v *ClassroomValidator) Validate(classroom *model.Classroom) error {
	if err := v.validate.Struct(classroom); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !codeRegex.MatchString(classroom.Code) {
		return ValidationErrors{
			ValidationError{
				Field:   "Code",
				Message: "code must contain only uppercase letters, digits and dashes (e.g. AULA-B-12)",
			},
		}
	}

	return nil
}

func (v *ClassroomValidator) ValidateUpdate(update *model.ClassroomUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.Code != "" && !codeRegex.MatchString(update.Code) {
		return ValidationErrors{
			ValidationError{
				Field:   "Code",
				Message: "code must contain only uppercase letters, digits and dashes (e.g. AULA-B-12)",
			},
		}
	}

	return nil
}

func (v *ClassroomValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
