package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their JSON name and
// knows the "notblank" rule.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return !common.IsBlank(fl.Field().String())
	})
	return v
}

// check validates spec and converts the first violation into an
// InvalidArgumentError.
func check(v *validator.Validate, spec any) error {
	err := v.Struct(spec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return common.NewInvalidArgument(fe.Field(), "failed "+fe.Tag()+" rule")
	}
	return common.NewInvalidArgument("", err.Error())
}
