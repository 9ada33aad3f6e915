package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "equipment-system/pkg/errors"
)

type HttpResponse struct {
	Status   bool        `json:"status"`
	Body     interface{} `json:"body,omitempty"`
	Message  string      `json:"message"`
	Total    *uint64     `json:"total_count,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		response.Total = &total[0]
	}
	return ctx.JSON(code, response)
}

// SuccessResponseWithWarnings reports an operation that completed while some
// best-effort side effects failed, listing what went wrong alongside the
// successful result.
func SuccessResponseWithWarnings(ctx echo.Context, body interface{}, message string, code int, warnings []string) error {
	return ctx.JSON(code, &HttpResponse{
		Status:   true,
		Body:     body,
		Message:  message,
		Warnings: warnings,
	})
}

func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusFor(err)
	message := err.Error()
	var details map[string]interface{}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = httpErr.Message
		details = httpErr.Details
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		code = http.StatusBadRequest
		message = inputErr.Message
	}

	if code >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Int("status", code), zap.Error(err))
	}

	body := interface{}(struct{}{})
	if details != nil {
		body = details
	}
	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    body,
		Message: message,
	})
}
