package handlers

import (
	"fmt"
	"log/slog"

	"github.com/ankithstudio/mediadesk/internal/service"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	as service.ArchiveService
	ss service.StatsService
	es service.ExportService
}

func NewAdminHandler(as service.ArchiveService, ss service.StatsService, es service.ExportService) *AdminHandler {
	return &AdminHandler{as: as, ss: ss, es: es}
}

func (h *AdminHandler) ExportCSV(c *fiber.Ctx) error {
	exportType := c.Query("type", "all")

	fileName, data, err := h.es.ExportCSV(c.Context(), exportType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv;charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *AdminHandler) ArchiveUploads(c *fiber.Ctx) error {
	var req struct {
		UploadIDs []string `json:"upload_ids"`
	}
	// Body is optional: no ids means archive everything pending.
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	count, err := h.as.ArchiveUploads(c.Context(), req.UploadIDs, "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to archive uploads",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":        true,
		"archived_count": count,
	})
}

func (h *AdminHandler) PurgeOld(c *fiber.Ctx) error {
	count, err := h.as.PurgeOld(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to purge uploads",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":        true,
		"archived_count": count,
	})
}

func (h *AdminHandler) ResetDaily(c *fiber.Ctx) error {
	count, err := h.as.ResetDaily(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reset daily uploads",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":        true,
		"archived_count": count,
	})
}

func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	logs, err := h.as.ListLogs(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch logs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(logs)
}

func (h *AdminHandler) RemoveLogs(c *fiber.Ctx) error {
	var req struct {
		LogIDs []string `json:"log_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if len(req.LogIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid log ids",
		})
	}

	count, err := h.as.RemoveLogs(c.Context(), req.LogIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete logs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"deleted_count": count,
	})
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.ss.WeeklyStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stats",
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
