package api

import (
	"errors"
	"strconv"

	"devquest/jobs"
	"devquest/model"
	"devquest/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *service.AnalyticsService
	queue  *jobs.Queue
	logger *zap.Logger
}

func NewHandler(svc *service.AnalyticsService, queue *jobs.Queue, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, queue: queue, logger: logger}
}

func respond(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(model.GenericResponse{
		Success: true,
		Status:  status,
		Payload: payload,
	})
}

func respondError(c *fiber.Ctx, status int, errorType, message string) error {
	return c.Status(status).JSON(model.GenericResponse{
		Success: false,
		Status:  status,
		Error: &model.ErrorInfo{
			ErrorType: errorType,
			Code:      status,
			Message:   message,
		},
	})
}

// StartSync enqueues a sync job. When a fresh aggregate is already cached, the
// sync is skipped and the cached stats are returned.
func (h *Handler) StartSync(c *fiber.Ctx) error {
	userID := c.Params("userId")
	username := c.Query("username")
	csrfToken := c.Get("x-csrftoken")
	cookie := c.Get("Cookie")

	if username == "" {
		return respondError(c, fiber.StatusBadRequest, "MISSING_USERNAME", "username query parameter is required")
	}
	if csrfToken == "" || cookie == "" {
		return respondError(c, fiber.StatusBadRequest, "MISSING_CREDENTIALS", "x-csrftoken header and session cookie are required")
	}

	if stats := h.svc.GetCachedStats(userID); stats != nil {
		return respond(c, fiber.StatusOK, fiber.Map{
			"message": "Sync already completed",
			"stats":   stats,
		})
	}

	jobID, err := h.queue.Enqueue(model.SyncJob{
		UserID:    userID,
		Username:  username,
		CSRFToken: csrfToken,
		Cookie:    cookie,
	})
	if err != nil {
		h.logger.Error("Failed to enqueue sync job", zap.String("userId", userID), zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError, "SYNC_ENQUEUE_FAILED", "Failed to initiate sync")
	}

	return respond(c, fiber.StatusAccepted, fiber.Map{
		"message": "Sync initiated",
		"job_id":  jobID,
	})
}

// GetSyncStatus reports pending, success or failure for a previously enqueued job.
func (h *Handler) GetSyncStatus(c *fiber.Ctx) error {
	jobID := c.Params("jobId")

	status, err := h.queue.PollStatus(jobID)
	if errors.Is(err, jobs.ErrJobNotFound) {
		return respondError(c, fiber.StatusNotFound, "JOB_NOT_FOUND", "Unknown or expired job")
	}
	if err != nil {
		h.logger.Error("Failed to poll job status", zap.String("jobId", jobID), zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError, "JOB_STATUS_FAILED", "Failed to read job status")
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"job_id": jobID,
		"status": status,
	})
}

func (h *Handler) GetProgress(c *fiber.Ctx) error {
	userID := c.Params("userId")

	progress, err := h.svc.GetProgress(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load progress", zap.String("userId", userID), zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError, "DB_ERROR", "Failed to load progress")
	}
	if progress == nil {
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "User progress not found")
	}
	return respond(c, fiber.StatusOK, progress)
}

func (h *Handler) GetStats(c *fiber.Ctx) error {
	userID := c.Params("userId")

	stats, err := h.svc.GetStats(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load stats", zap.String("userId", userID), zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError, "DB_ERROR", "Failed to load stats")
	}
	if stats == nil {
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "User statistics not found")
	}
	return respond(c, fiber.StatusOK, stats)
}

func (h *Handler) GetHeatmap(c *fiber.Ctx) error {
	userID := c.Params("userId")

	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "INVALID_YEAR", "year must be an integer")
		}
		year = parsed
	}

	heatmap, err := h.svc.GetHeatmap(c.Context(), userID, year)
	if err != nil {
		h.logger.Error("Failed to build heatmap", zap.String("userId", userID), zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError, "DB_ERROR", "Failed to build heatmap")
	}
	if heatmap == nil {
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "User statistics not found")
	}
	return respond(c, fiber.StatusOK, heatmap)
}

func (h *Handler) GetLeaderboard(c *fiber.Ctx) error {
	limit := int64(10)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return respondError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
		}
		limit = parsed
	}

	users, err := h.svc.GetLeaderboard(c.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to load leaderboard", zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError, "DB_ERROR", "Failed to load leaderboard")
	}
	return respond(c, fiber.StatusOK, users)
}

// Health reports queue connectivity.
func (h *Handler) Health(c *fiber.Ctx) error {
	if !h.queue.NatsClient.IsConnected() {
		return respondError(c, fiber.StatusServiceUnavailable, "QUEUE_UNHEALTHY", "Job queue is not connected")
	}
	return respond(c, fiber.StatusOK, fiber.Map{"status": "healthy"})
}
