package handlers

import (
	"log/slog"

	"github.com/ankithstudio/mediadesk/internal/service"
	"github.com/ankithstudio/mediadesk/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type EditorHandler struct {
	s service.EditorService
}

func NewEditorHandler(service service.EditorService) *EditorHandler {
	return &EditorHandler{s: service}
}

func (h *EditorHandler) CreateEditor(c *fiber.Ctx) error {
	var ec transfer.EditorCreation
	if err := c.BodyParser(&ec); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	editor, err := h.s.Create(c.Context(), &ec)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(editor)
}

func (h *EditorHandler) ListEditors(c *fiber.Ctx) error {
	editors, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list editors",
		})
	}

	return c.Status(fiber.StatusOK).JSON(editors)
}

func (h *EditorHandler) RemoveEditor(c *fiber.Ctx) error {
	editorID, err := c.ParamsInt("id", 0)
	if err != nil || editorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Editor id is required",
		})
	}

	if err := h.s.Remove(c.Context(), int64(editorID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove editor",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Editor and all related data deleted successfully",
	})
}
