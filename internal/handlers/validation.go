package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/boardhub/board-api/internal/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validator checks request bodies once at the boundary.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails for an empty tag or a nil func
	_ = v.RegisterValidation("notcontainsfield", notContainsField)
	return &Validator{validate: v}
}

// notContainsField passes when the field does not contain the value of the
// sibling field named by the tag parameter.
func notContainsField(fl validator.FieldLevel) bool {
	other := fl.Parent().FieldByName(fl.Param())
	if !other.IsValid() || other.Kind() != reflect.String || other.String() == "" {
		return true
	}
	return !strings.Contains(fl.Field().String(), other.String())
}

// Struct validates req and returns a Validation AppError listing every failed rule.
func (v *Validator) Struct(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.NewInternal("failed to validate request", err)
	}
	fields := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperror.FieldError{Field: e.Field(), Message: fieldMessage(e)})
	}
	return apperror.NewValidation(fields)
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", e.Field())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", e.Field(), lowerFirst(e.Param()))
	case "notcontainsfield":
		return fmt.Sprintf("%s must not contain the %s", e.Field(), lowerFirst(e.Param()))
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// parseBody decodes the JSON body into req and validates it.
func (v *Validator) parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperror.New(apperror.BadRequestError, "invalid request body", err)
	}
	return v.Struct(req)
}

// idParam reads a positive numeric path parameter.
func idParam(c *fiber.Ctx, name string) (uint64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequest(fmt.Sprintf("%s must be a positive integer", name))
	}
	return uint64(id), nil
}
