package presenters

import (
	"errors"

	"foodgram-backend/domain"
	"foodgram-backend/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
		res.Errors = fieldErrors(err)
	}
	return c.Status(statusCode).JSON(res)
}

// ServiceErrorResponse picks the status code from the error kind.
func ServiceErrorResponse(c *fiber.Ctx, message string, err error) error {
	status := StatusFromError(err)
	if status >= fiber.StatusInternalServerError {
		logging.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg(message)
	}
	return ErrorResponse(c, status, message, err)
}

func StatusFromError(err error) int {
	var validationErr *domain.ValidationError
	var fieldErrs validator.ValidationErrors

	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrRelationExists),
		errors.Is(err, domain.ErrSelfFollow),
		errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrUsernameExists),
		errors.Is(err, domain.ErrTagExists),
		errors.Is(err, domain.ErrIngredientExists),
		errors.Is(err, domain.ErrInvalidImageFormat),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInactiveUser),
		errors.Is(err, domain.ErrInvalidID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenNotFound):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrRelationNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func fieldErrors(err error) map[string][]string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return map[string][]string{validationErr.Field: {validationErr.Message}}
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make(map[string][]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			out[fe.Field()] = append(out[fe.Field()], "failed on the '"+fe.Tag()+"' rule")
		}
		return out
	}
	return nil
}
