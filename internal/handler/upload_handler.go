package handler

import (
	"microsite-shop/internal/apperr"
	"microsite-shop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	service service.UploadService
}

func NewUploadHandler(s service.UploadService) *UploadHandler {
	return &UploadHandler{service: s}
}

// UploadImage takes the multipart field "file" and returns {"url": ...}
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}

	f, err := fh.Open()
	if err != nil {
		return respondError(c, apperr.Internal("Failed to upload image", err))
	}
	defer f.Close()

	url, err := h.service.UploadImage(f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
