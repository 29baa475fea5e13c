package domain

import (
	"errors"
	"io"
)

var (
	MessageSuccessAddToCart        = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart   = "recipe removed from shopping cart"
	MessageSuccessSendShoppingCart = "shopping cart sent to your email"

	MessageFailedAddToCart            = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart       = "failed to remove recipe from shopping cart"
	MessageFailedDownloadShoppingCart = "failed to prepare shopping cart"
	MessageFailedSendShoppingCart     = "failed to send shopping cart"

	ErrAlreadyInCart        = errors.New("recipe is already in shopping cart")
	ErrNotInCart            = errors.New("recipe is not in shopping cart")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrArtifactWrite        = errors.New("failed to write shopping cart artifact")
	ErrUnsupportedExtension = errors.New("unsupported shopping cart file extension")
)

type (
	// IngredientAmount is one (ingredient, unit, amount) row of a recipe in a cart.
	IngredientAmount struct {
		Name            string
		MeasurementUnit string
		Amount          int
	}

	// AggregatedLine is one consolidated row of the shopping list.
	AggregatedLine struct {
		IngredientName  string `json:"ingredient_name"`
		MeasurementUnit string `json:"measurement_unit"`
		TotalAmount     int    `json:"total_amount"`
	}

	// ShoppingCartFile is a rendered shopping list ready to be streamed.
	// Body must be closed by the caller; closing releases the backing artifact.
	ShoppingCartFile struct {
		Filename    string
		ContentType string
		Size        int64
		Body        io.ReadCloser
	}
)
