package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func GetEditorID(c *fiber.Ctx) int64 {
	editorID, _ := strconv.Atoi(c.Locals("editor_id").(string))
	return int64(editorID)
}
