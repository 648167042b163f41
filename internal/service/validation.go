package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/competition-service/internal/domain"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

var errNoRows = pgx.ErrNoRows

// newValidator builds a validator that reports json field names and knows
// the league codes.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("league", func(fl validator.FieldLevel) bool {
		_, ok := domain.LookupLeague(fl.Field().String())
		return ok
	})
	return v
}

// validateStruct maps validator failures onto a VALIDATION_FAILED error
// whose details name each offending field and the rule it broke.
func validateStruct(v *validator.Validate, input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[fe.Field()] = rule
	}
	return apperrors.NewValidationError("invalid input", details)
}

// notFoundOr converts a missing-row error into a NOT_FOUND for resource.
func notFoundOr(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}
