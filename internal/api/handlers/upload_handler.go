package handlers

import (
	"io"
	"log/slog"

	"github.com/ankithstudio/mediadesk/internal/service"
	"github.com/ankithstudio/mediadesk/internal/transfer"
	"github.com/ankithstudio/mediadesk/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	s service.UploadService
}

func NewUploadHandler(service service.UploadService) *UploadHandler {
	return &UploadHandler{s: service}
}

func (h *UploadHandler) CreateUpload(c *fiber.Ctx) error {
	requestID, _ := utils.GenerateRandomKey(8)
	editorID := GetEditorID(c)

	var uc transfer.UploadCreation
	if err := c.BodyParser(&uc); err != nil {
		slog.Error(err.Error(), "request_id", requestID)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	upload, err := h.s.CreateMetadata(c.Context(), editorID, &uc)
	if err != nil {
		slog.Info("upload metadata rejected", "request_id", requestID, "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      err.Error(),
			"request_id": requestID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(upload)
}

func (h *UploadHandler) UploadFile(c *fiber.Ctx) error {
	editorID := GetEditorID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file selected",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to open file",
		})
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read file",
		})
	}

	caption := c.FormValue("caption")

	upload, err := h.s.UploadFile(c.Context(), editorID, fileHeader.Filename, caption, fileBytes)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(upload)
}

func (h *UploadHandler) SignUpload(c *fiber.Ctx) error {
	var req transfer.SignRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	signed, err := h.s.SignUpload(c.Context(), &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(signed)
}

func (h *UploadHandler) ListUploads(c *fiber.Ctx) error {
	editorID := c.QueryInt("editor_id", 0)

	uploads, err := h.s.List(c.Context(), int64(editorID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list uploads",
		})
	}

	return c.Status(fiber.StatusOK).JSON(uploads)
}

func (h *UploadHandler) RemoveUpload(c *fiber.Ctx) error {
	uploadID := c.QueryInt("upload_id", 0)
	if uploadID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing upload_id",
		})
	}

	if err := h.s.Remove(c.Context(), int64(uploadID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove upload",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}
