package handler

import (
	"microsite-shop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	service service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

func (h *PostHandler) GetPosts(c *fiber.Ctx) error {
	posts, err := h.service.GetAllPosts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost accepts either the numeric id or the slug.
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.service.GetPost(c.Params("idOrSlug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req service.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	post, err := h.service.CreatePost(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	post, err := h.service.UpdatePost(id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeletePost(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
