package domain

import (
	"errors"
	"fmt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	MaxPageSize = 100
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageSuccessPing          = "pong"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
	ErrInternal       = errors.New("internal server error")
)

// knownErrors are the sentinels services hand to handlers unchanged.
var knownErrors = []error{
	ErrParseUUID, ErrUserNotAllowed, ErrTokenNotFound, ErrTokenInvalid, ErrTokenExpired, ErrInternal,
	ErrUserNotFound, ErrEmailAlreadyUsed, ErrUsernameTaken, ErrInvalidCredentials, ErrWrongPassword,
	ErrIngredientNotFound, ErrTagNotFound, ErrInvalidIngredients,
	ErrRecipeNotFound, ErrUnauthorizedRecipeAccess, ErrRecipeNameTooShort, ErrDuplicateTag,
	ErrDuplicateIngredient, ErrAlreadyFavorited, ErrNotFavorited, ErrInvalidCookingTime, ErrInvalidAmount,
	ErrAlreadyInCart, ErrNotInCart, ErrStorageUnavailable, ErrArtifactWrite, ErrUnsupportedExtension,
	ErrSelfSubscription, ErrAlreadySubscribed, ErrNotSubscribed,
}

// StorageError marks a repository failure as ErrStorageUnavailable. Errors
// that already match a domain sentinel pass through unchanged.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

type (
	PaginationRequest struct {
		Page  int `query:"page" validate:"min=1"`
		Limit int `query:"limit" validate:"min=1,max=100"`
	}

	PaginationResponse struct {
		Count      int64 `json:"count"`
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalPages int64 `json:"total_pages"`
	}
)

func NewPaginationResponse(count int64, page, limit int) PaginationResponse {
	return PaginationResponse{
		Count:      count,
		Page:       page,
		Limit:      limit,
		TotalPages: (count + int64(limit) - 1) / int64(limit),
	}
}
