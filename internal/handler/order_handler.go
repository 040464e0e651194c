package handler

import (
	"microsite-shop/internal/middleware"
	"microsite-shop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrder is the checkout endpoint. A session credential links the order
// to the customer; anything else is a guest checkout.
// POST /api/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	var userID *uint
	if cred := middleware.CredentialFrom(c); cred.Kind == middleware.CredentialSession {
		userID = &cred.UserID
	}

	order, err := h.service.Checkout(&req, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// GetMyOrders lists the caller's own orders. The legacy admin token has no user behind it.
// GET /api/orders/my
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	cred := middleware.CredentialFrom(c)
	if cred.Kind != middleware.CredentialSession {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID required"})
	}
	orders, err := h.service.GetUserOrders(cred.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	order, err := h.service.UpdateStatus(id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
