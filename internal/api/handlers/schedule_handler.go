package handlers

import (
	"errors"
	"log/slog"

	"github.com/ankithstudio/mediadesk/internal/queue"
	"github.com/ankithstudio/mediadesk/internal/service"
	"github.com/ankithstudio/mediadesk/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type ScheduleHandler struct {
	s           service.ScheduleService
	AsynqClient *asynq.Client
}

func NewScheduleHandler(service service.ScheduleService, asynqClient *asynq.Client) *ScheduleHandler {
	return &ScheduleHandler{s: service, AsynqClient: asynqClient}
}

// ScheduleBatch runs the batch synchronously and returns the full report.
// Per-item failures live inside the report; only input and configuration
// problems surface as non-2xx.
func (h *ScheduleHandler) ScheduleBatch(c *fiber.Ctx) error {
	var req transfer.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	report, err := h.s.ScheduleBatch(c.Context(), req.Items)
	if err != nil {
		if errors.Is(err, service.ErrNoItems) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No items provided",
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Scheduling failed",
		})
	}

	// ?archive=true hands the successfully scheduled records straight to the
	// archive worker instead of waiting for a second manual call.
	if c.QueryBool("archive", false) && len(report.ArchivableIDs) > 0 {
		err = queue.EnqueueArchive(h.AsynqClient, queue.ArchiveUploadsPayload{
			UploadIDs: report.ArchivableIDs,
			Reason:    "manual",
		})
		if err != nil {
			slog.Info("failed to enqueue archive task", "error", err.Error())
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"scheduled": report,
	})
}
