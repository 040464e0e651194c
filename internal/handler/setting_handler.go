package handler

import (
	"microsite-shop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	service service.SettingService
}

func NewSettingHandler(s service.SettingService) *SettingHandler {
	return &SettingHandler{service: s}
}

func (h *SettingHandler) GetSettings(c *fiber.Ctx) error {
	setting, err := h.service.GetSettings()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(setting)
}

func (h *SettingHandler) UpdateSettings(c *fiber.Ctx) error {
	var req service.SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	setting, err := h.service.UpdateSettings(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(setting)
}
