package serverutils

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AppError is an error that already knows its HTTP status.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) StatusCode() int {
	return e.Code
}

func NotFound(format string, args ...any) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// StatusCoder lets domain errors choose their status without this package importing them.
type StatusCoder interface {
	StatusCode() int
}

// DataCarrier lets domain errors attach a payload to the error envelope.
type DataCarrier interface {
	ResponseData() any
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ErrorHandlerMiddleware turns errors returned by later handlers into the JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, body := ResolveError(err)
		if code >= fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)
		}
		return ctx.Status(code).JSON(body)
	}
}

// ResolveError maps an error to a status code and envelope.
func ResolveError(err error) (int, *Response[any]) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, FieldError{Field: strings.ToLower(fe.Field()), Rule: fe.Tag()})
		}
		return fiber.StatusBadRequest, ErrorResponseWithData(fiber.StatusBadRequest, "Validation failed", fields)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, ErrorResponse(fiberErr.Code, fiberErr.Message)
	}

	var coder StatusCoder
	if errors.As(err, &coder) {
		code := coder.StatusCode()
		var carrier DataCarrier
		if errors.As(err, &carrier) {
			return code, ErrorResponseWithData(code, err.Error(), carrier.ResponseData())
		}
		return code, ErrorResponse(code, err.Error())
	}

	return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, err.Error())
}
