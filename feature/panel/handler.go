package panel

import (
	"errors"
	"fmt"
	"time"

	"guardias/core/database"
	"guardias/core/logger"
	"guardias/core/utils"
	"guardias/feature/sources"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the panel.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers one panel route per source plus the coverage routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Post("/cubrir-ausencia", h.HandleCover)
	group.Get("/coberturas", h.HandleListCoverage)
	for _, name := range h.service.Sources() {
		source := name
		group.Get("/"+source, func(c *fiber.Ctx) error {
			return h.HandleGetPanel(c, source)
		})
	}
}

// HandleGetPanel returns the reconciled periods of one source.
// @Summary Get Panel
// @Description Loads absences and available substitutes from a source and groups them per period, with recorded coverage applied.
// @Tags panel
// @Produce json
// @Param source path string true "Source (mysql, csv, json, mongo, sample)"
// @Param fecha query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} panel.Result "Panel"
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "Unknown source"
// @Failure 500 {object} map[string]string "Source failed"
// @Failure 503 {object} map[string]string "Database not configured"
// @Router /api/{source} [get]
func (h *Handler) HandleGetPanel(c *fiber.Ctx, source string) error {
	l := logger.WithRayID(h.service.logger, c)

	date := c.Query("fecha")
	if date != "" && !utils.IsDate(date) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid fecha %q, expected YYYY-MM-DD", date),
		})
	}

	result, err := h.service.Panel(c.UserContext(), source, sources.Query{Date: date})
	switch {
	case err == nil:
		return c.JSON(result)
	case errors.Is(err, sources.ErrUnknownSource):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, database.ErrDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "database not configured"})
	default:
		l.Error("Panel build failed", zap.String("source", source), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// HandleCover records a coverage assignment.
// @Summary Cover Absence
// @Description Records that a substitute covers an absent teacher during a period.
// @Tags panel
// @Accept json
// @Produce json
// @Param request body panel.CoverRequest true "Coverage"
// @Success 200 {object} map[string]interface{} "Recorded assignment"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/cubrir-ausencia [post]
func (h *Handler) HandleCover(c *fiber.Ctx) error {
	start := time.Now()

	var req CoverRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": utils.InvalidFields(err),
		})
	}

	a := h.service.Cover(req)
	return c.JSON(fiber.Map{
		"ok":         true,
		"message":    fmt.Sprintf("%s covers %s during %s", a.Substitute, a.AbsentTeacher, a.Period),
		"assignment": a,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
}

// HandleListCoverage returns the coverage log.
// @Summary List Coverage
// @Description Returns every coverage assignment recorded since the service started.
// @Tags panel
// @Produce json
// @Success 200 {object} map[string]interface{} "Assignments"
// @Router /api/coberturas [get]
func (h *Handler) HandleListCoverage(c *fiber.Ctx) error {
	items := h.service.Assignments()
	return c.JSON(fiber.Map{
		"count":       len(items),
		"assignments": items,
	})
}
