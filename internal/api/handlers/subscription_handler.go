package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/subscription"

	"github.com/gofiber/fiber/v2"
)

type (
	SubscriptionHandler interface {
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	subscriptionHandler struct {
		subscriptionService subscription.SubscriptionService
	}
)

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{subscriptionService: subscriptionService}
}

func (h *subscriptionHandler) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := pathID(c)
	if err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedSubscribe, err)
	}

	res, err := h.subscriptionService.Subscribe(c.Context(), userID, id, c.QueryInt("recipes_limit", 0))
	if err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedSubscribe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubscribe)
}

func (h *subscriptionHandler) Unsubscribe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := pathID(c)
	if err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedUnsubscribe, err)
	}

	if err := h.subscriptionService.Unsubscribe(c.Context(), userID, id); err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedUnsubscribe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnsubscribe)
}

func (h *subscriptionHandler) GetSubscriptions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.subscriptionService.GetSubscriptions(
		c.Context(),
		userID,
		c.QueryInt("page", 1),
		c.QueryInt("limit", 0),
		c.QueryInt("recipes_limit", 0),
	)
	if err != nil {
		return presenters.ErrorFromService(c, domain.MessageFailedGetSubscriptions, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSubscriptions)
}
