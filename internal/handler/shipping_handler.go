package handler

import (
	"microsite-shop/internal/service"
	"microsite-shop/pkg/rajaongkir"

	"github.com/gofiber/fiber/v2"
)

type ShippingHandler struct {
	service service.ShippingService
}

func NewShippingHandler(s service.ShippingService) *ShippingHandler {
	return &ShippingHandler{service: s}
}

// costRequest accepts district ids as numbers or strings.
type costRequest struct {
	Origin      rajaongkir.ID `json:"origin"`
	Destination rajaongkir.ID `json:"destination"`
	Weight      int           `json:"weight"`
	Courier     string        `json:"courier"`
}

func (h *ShippingHandler) GetProvinces(c *fiber.Ctx) error {
	provinces, err := h.service.Provinces(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(provinces)
}

func (h *ShippingHandler) GetCities(c *fiber.Ctx) error {
	provinceID, err := paramID(c, "provinceId")
	if err != nil {
		return respondError(c, err)
	}
	cities, err := h.service.Cities(c.UserContext(), provinceID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cities)
}

func (h *ShippingHandler) GetDistricts(c *fiber.Ctx) error {
	cityID, err := paramID(c, "cityId")
	if err != nil {
		return respondError(c, err)
	}
	districts, err := h.service.Districts(c.UserContext(), cityID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(districts)
}

// CalculateCost proxies the courier quote and returns the upstream list as is.
// POST /api/rajaongkir/cost
func (h *ShippingHandler) CalculateCost(c *fiber.Ctx) error {
	var body costRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidJSON(c)
	}

	req := &rajaongkir.CostRequest{
		Courier: body.Courier,
		Weight:  body.Weight,
	}
	if body.Origin > 0 {
		req.Origin = body.Origin.String()
	}
	if body.Destination > 0 {
		req.Destination = body.Destination.String()
	}

	data, err := h.service.Cost(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
