package presenters

import (
	"Foodgram-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  string `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the error payload. Server errors never expose the
// underlying error text.
func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if code >= fiber.StatusInternalServerError {
		res.Errors = domain.ErrInternal.Error()
	} else if err != nil {
		res.Errors = err.Error()
	}
	return c.Status(code).JSON(res)
}

// StatusForError maps domain errors to HTTP status codes. Anything it does
// not recognise is a server error.
func StatusForError(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotAllowed),
		errors.Is(err, domain.ErrUnauthorizedRecipeAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrTagNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrStorageUnavailable),
		errors.Is(err, domain.ErrArtifactWrite),
		errors.Is(err, domain.ErrInternal):
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrEmailAlreadyUsed),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrInvalidIngredients),
		errors.Is(err, domain.ErrRecipeNameTooShort),
		errors.Is(err, domain.ErrDuplicateTag),
		errors.Is(err, domain.ErrDuplicateIngredient),
		errors.Is(err, domain.ErrInvalidCookingTime),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAlreadyFavorited),
		errors.Is(err, domain.ErrNotFavorited),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrNotInCart),
		errors.Is(err, domain.ErrSelfSubscription),
		errors.Is(err, domain.ErrAlreadySubscribed),
		errors.Is(err, domain.ErrNotSubscribed):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorFromService is ErrorResponse with the status picked by StatusForError.
func ErrorFromService(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusForError(err), message, err)
}
