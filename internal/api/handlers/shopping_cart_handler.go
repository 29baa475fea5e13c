package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/shoppingcart"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingCartHandler interface {
		AddToCart(c *fiber.Ctx) error
		RemoveFromCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
		SendShoppingCart(c *fiber.Ctx) error
	}

	shoppingCartHandler struct {
		shoppingCartService shoppingcart.ShoppingCartService
	}
)

func NewShoppingCartHandler(shoppingCartService shoppingcart.ShoppingCartService) ShoppingCartHandler {
	return &shoppingCartHandler{shoppingCartService: shoppingCartService}
}

func (h *shoppingCartHandler) AddToCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := pathID(c)
	if err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedAddToCart, err)
	}

	res, err := h.shoppingCartService.AddToCart(c.Context(), userID, id)
	if err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedAddToCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToCart)
}

func (h *shoppingCartHandler) RemoveFromCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := pathID(c)
	if err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedRemoveFromCart, err)
	}

	if err := h.shoppingCartService.RemoveFromCart(c.Context(), userID, id); err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedRemoveFromCart, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveFromCart)
}

// DownloadShoppingCart streams the rendered list as an attachment. The
// response writer closes the body, which releases the backing artifact.
func (h *shoppingCartHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := h.shoppingCartService.DownloadShoppingCart(c.Context(), userID)
	if err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedDownloadShoppingCart, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.SendStream(file.Body, int(file.Size))
}

func (h *shoppingCartHandler) SendShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.shoppingCartService.SendShoppingCart(c.Context(), userID); err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedSendShoppingCart, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendShoppingCart)
}
