package health

import (
	"errors"

	"guardias/core/database"
	"guardias/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/api/v1/health", h.HandleHealth)
	app.Get("/api/v1/health/schema", h.HandleSchemaCheck)
	app.Get("/api/v1/health/snapshots", h.HandleSnapshotCheck)
}

// HandleHealth runs every health check.
// @Summary Health
// @Description Pings the database, checks the school tables against their models and verifies the snapshot bucket.
// @Tags health
// @Produce json
// @Success 200 {object} health.Report "Healthy"
// @Failure 500 {object} health.Report "Unhealthy"
// @Router /api/v1/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Check(c.UserContext())
	if report.Status != Healthy {
		logger.WithRayID(h.service.logger, c).Warn("Health check failed",
			zap.String("database", report.Database.Status),
			zap.String("storage", report.Storage.Status))
		return c.Status(fiber.StatusInternalServerError).JSON(report)
	}
	return c.JSON(report)
}

// HandleSchemaCheck checks the database schema only.
// @Summary Check Schema
// @Description Checks that profesores, grupos, reportes and guardias have the expected columns and types.
// @Tags health
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 503 {object} map[string]string "Database not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/v1/health/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckSchema()
	if err != nil {
		if errors.Is(err, database.ErrDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "database not configured"})
		}
		logger.WithRayID(h.service.logger, c).Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleSnapshotCheck checks and optionally seeds the fallback snapshots.
// @Summary Check Snapshots
// @Description Checks that the CSV and JSON fallback snapshots exist in storage. Optionally uploads the local files for the missing ones.
// @Tags health
// @Produce json
// @Param fix query boolean false "Seed missing snapshots from local files"
// @Success 200 {object} map[string]interface{} "Snapshot Report"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/v1/health/snapshots [get]
func (h *Handler) HandleSnapshotCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix")

	missing, err := h.service.MissingSnapshots(c.UserContext())
	if err != nil {
		if errors.Is(err, errStorageDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
		}
		l.Error("Snapshot check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing snapshots detected", zap.Strings("missing", missing))

		if fix {
			if err := h.service.FixSnapshots(c.UserContext(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to seed snapshots",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}
