package utils

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	apperrors "equipment-system/pkg/errors"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		fields := map[string]interface{}{}
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		return apperrors.NewHttpError(http.StatusBadRequest, "validation failed", err, fields)
	}
	return nil
}
