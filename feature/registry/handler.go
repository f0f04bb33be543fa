package registry

import (
	"errors"
	"time"

	"guardias/core/database"
	"guardias/core/logger"
	"guardias/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the school records.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the v1 REST routes and the plain listings.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	api := app.Group("/api")
	api.Get("/profesores", h.HandleTeacherNames)
	api.Get("/grupos", h.HandleGroupNames)
	api.Get("/profesores-disponibles", h.requireDB, h.HandleAvailableTeachers)

	v1 := api.Group("/v1")
	v1.Get("/ausencias", h.requireDB, h.HandleListAbsences)
	v1.Post("/ausencias", h.requireDB, h.HandleCreateAbsence)
	v1.Get("/ausencias/:id", h.requireDB, h.HandleGetAbsence)
	v1.Put("/ausencias/:id", h.requireDB, h.HandleUpdateAbsence)
	v1.Delete("/ausencias/:id", h.requireDB, h.HandleDeleteAbsence)

	v1.Get("/profesores", h.requireDB, h.HandleListTeachers)
	v1.Post("/profesores", h.requireDB, h.HandleCreateTeacher)
	v1.Get("/profesores/:id", h.requireDB, h.HandleGetTeacher)

	v1.Get("/grupos", h.requireDB, h.HandleListGroups)
	v1.Post("/grupos", h.requireDB, h.HandleCreateGroup)
	v1.Get("/grupos/:id", h.requireDB, h.HandleGetGroup)

	v1.Get("/guardias", h.requireDB, h.HandleListGuards)
	v1.Post("/guardias", h.requireDB, h.HandleCreateGuard)
	v1.Delete("/guardias/:id", h.requireDB, h.HandleDeleteGuard)
}

// requireDB answers 503 when no database is configured.
func (h *Handler) requireDB(c *fiber.Ctx) error {
	if !h.service.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "database not configured",
		})
	}
	return c.Next()
}

func (h *Handler) fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "not found"})
	case errors.Is(err, database.ErrDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "error": "database not configured"})
	}
	logger.WithRayID(h.service.logger, c).Error("Registry request failed", zap.String("action", action), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   action,
		"message": err.Error(),
	})
}

func invalid(c *fiber.Ctx, err error, required []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success":  false,
		"error":    "missing or invalid fields",
		"required": required,
		"fields":   utils.InvalidFields(err),
	})
}

// bind parses and validates a JSON body into dst.
func bind(c *fiber.Ctx, dst any, required []string) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return false, invalid(c, err, required)
	}
	return true, nil
}

func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
}

// HandleListAbsences lists reported absences.
// @Summary List Absences
// @Description Lists reported absences, newest first, optionally filtered.
// @Tags ausencias
// @Produce json
// @Param fecha query string false "Date (YYYY-MM-DD)"
// @Param profesor_id query int false "Teacher ID"
// @Param grupo_id query int false "Group ID"
// @Success 200 {object} map[string]interface{} "Absences"
// @Failure 503 {object} map[string]interface{} "Database not configured"
// @Router /api/v1/ausencias [get]
func (h *Handler) HandleListAbsences(c *fiber.Ctx) error {
	f := AbsenceFilter{
		Fecha:      c.Query("fecha"),
		ProfesorID: uint(max(c.QueryInt("profesor_id"), 0)),
		GrupoID:    uint(max(c.QueryInt("grupo_id"), 0)),
	}
	items, err := h.service.ListAbsences(c.UserContext(), f)
	if err != nil {
		return h.fail(c, "failed to list absences", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items, "count": len(items)})
}

// HandleGetAbsence returns one absence.
// @Summary Get Absence
// @Tags ausencias
// @Produce json
// @Param id path int true "Absence ID"
// @Success 200 {object} map[string]interface{} "Absence"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/v1/ausencias/{id} [get]
func (h *Handler) HandleGetAbsence(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	item, err := h.service.GetAbsence(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "failed to get absence", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

var absenceRequired = []string{"profesor_id", "grupo_id", "hora_inicio", "fecha"}

// HandleCreateAbsence reports a new absence.
// @Summary Create Absence
// @Tags ausencias
// @Accept json
// @Produce json
// @Param request body registry.AbsenceInput true "Absence"
// @Success 201 {object} map[string]interface{} "Created absence"
// @Failure 400 {object} map[string]interface{} "Missing fields"
// @Router /api/v1/ausencias [post]
func (h *Handler) HandleCreateAbsence(c *fiber.Ctx) error {
	var in AbsenceInput
	if ok, err := bind(c, &in, absenceRequired); !ok {
		return err
	}
	item, err := h.service.CreateAbsence(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "failed to create absence", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item, "message": "absence created"})
}

// HandleUpdateAbsence replaces an absence.
// @Summary Update Absence
// @Tags ausencias
// @Accept json
// @Produce json
// @Param id path int true "Absence ID"
// @Param request body registry.AbsenceInput true "Absence"
// @Success 200 {object} map[string]interface{} "Updated absence"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/v1/ausencias/{id} [put]
func (h *Handler) HandleUpdateAbsence(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in AbsenceInput
	if ok, err := bind(c, &in, absenceRequired); !ok {
		return err
	}
	item, err := h.service.UpdateAbsence(c.UserContext(), id, in)
	if err != nil {
		return h.fail(c, "failed to update absence", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": item, "message": "absence updated"})
}

// HandleDeleteAbsence removes an absence.
// @Summary Delete Absence
// @Tags ausencias
// @Produce json
// @Param id path int true "Absence ID"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/v1/ausencias/{id} [delete]
func (h *Handler) HandleDeleteAbsence(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.service.DeleteAbsence(c.UserContext(), id); err != nil {
		return h.fail(c, "failed to delete absence", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "absence deleted"})
}

// HandleListTeachers lists teachers.
// @Summary List Teachers
// @Tags profesores
// @Produce json
// @Success 200 {object} map[string]interface{} "Teachers"
// @Router /api/v1/profesores [get]
func (h *Handler) HandleListTeachers(c *fiber.Ctx) error {
	items, err := h.service.ListTeachers(c.UserContext())
	if err != nil {
		return h.fail(c, "failed to list teachers", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items, "count": len(items)})
}

// HandleGetTeacher returns one teacher.
// @Summary Get Teacher
// @Tags profesores
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} map[string]interface{} "Teacher"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/v1/profesores/{id} [get]
func (h *Handler) HandleGetTeacher(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	item, err := h.service.GetTeacher(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "failed to get teacher", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

// HandleCreateTeacher adds a teacher.
// @Summary Create Teacher
// @Tags profesores
// @Accept json
// @Produce json
// @Param request body registry.TeacherInput true "Teacher"
// @Success 201 {object} map[string]interface{} "Created teacher"
// @Failure 400 {object} map[string]interface{} "Missing fields"
// @Router /api/v1/profesores [post]
func (h *Handler) HandleCreateTeacher(c *fiber.Ctx) error {
	var in TeacherInput
	if ok, err := bind(c, &in, []string{"nombre", "apellidos"}); !ok {
		return err
	}
	item, err := h.service.CreateTeacher(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "failed to create teacher", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item, "message": "teacher created"})
}

// HandleListGroups lists class groups.
// @Summary List Groups
// @Tags grupos
// @Produce json
// @Success 200 {object} map[string]interface{} "Groups"
// @Router /api/v1/grupos [get]
func (h *Handler) HandleListGroups(c *fiber.Ctx) error {
	items, err := h.service.ListGroups(c.UserContext())
	if err != nil {
		return h.fail(c, "failed to list groups", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items, "count": len(items)})
}

// HandleGetGroup returns one class group.
// @Summary Get Group
// @Tags grupos
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]interface{} "Group"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/v1/grupos/{id} [get]
func (h *Handler) HandleGetGroup(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	item, err := h.service.GetGroup(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "failed to get group", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

// HandleCreateGroup adds a class group.
// @Summary Create Group
// @Tags grupos
// @Accept json
// @Produce json
// @Param request body registry.GroupInput true "Group"
// @Success 201 {object} map[string]interface{} "Created group"
// @Failure 400 {object} map[string]interface{} "Missing fields"
// @Router /api/v1/grupos [post]
func (h *Handler) HandleCreateGroup(c *fiber.Ctx) error {
	var in GroupInput
	if ok, err := bind(c, &in, []string{"nombre"}); !ok {
		return err
	}
	item, err := h.service.CreateGroup(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "failed to create group", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item, "message": "group created"})
}

// HandleListGuards lists guard assignments.
// @Summary List Guards
// @Tags guardias
// @Produce json
// @Param fecha query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Guards"
// @Router /api/v1/guardias [get]
func (h *Handler) HandleListGuards(c *fiber.Ctx) error {
	items, err := h.service.ListGuards(c.UserContext(), c.Query("fecha"))
	if err != nil {
		return h.fail(c, "failed to list guards", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items, "count": len(items)})
}

// HandleCreateGuard assigns a guard teacher to an absence.
// @Summary Create Guard
// @Tags guardias
// @Accept json
// @Produce json
// @Param request body registry.GuardInput true "Guard"
// @Success 201 {object} map[string]interface{} "Created guard"
// @Failure 400 {object} map[string]interface{} "Missing fields"
// @Router /api/v1/guardias [post]
func (h *Handler) HandleCreateGuard(c *fiber.Ctx) error {
	var in GuardInput
	if ok, err := bind(c, &in, []string{"reporte_id", "profesor_guardia_id", "hora", "fecha"}); !ok {
		return err
	}
	item, err := h.service.CreateGuard(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "failed to create guard", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item, "message": "guard created"})
}

// HandleDeleteGuard removes a guard assignment.
// @Summary Delete Guard
// @Tags guardias
// @Produce json
// @Param id path int true "Guard ID"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/v1/guardias/{id} [delete]
func (h *Handler) HandleDeleteGuard(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.service.DeleteGuard(c.UserContext(), id); err != nil {
		return h.fail(c, "failed to delete guard", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "guard deleted"})
}

// HandleTeacherNames lists teacher names, falling back to a sample roster.
// @Summary Teacher Names
// @Tags profesores
// @Produce json
// @Success 200 {object} map[string]interface{} "Teachers"
// @Router /api/profesores [get]
func (h *Handler) HandleTeacherNames(c *fiber.Ctx) error {
	start := time.Now()
	items, fallback := h.service.TeacherNames(c.UserContext())
	return c.JSON(fiber.Map{
		"elapsed_ms": time.Since(start).Milliseconds(),
		"profesores": items,
		"fallback":   fallback,
	})
}

// HandleGroupNames lists group names, falling back to a sample list.
// @Summary Group Names
// @Tags grupos
// @Produce json
// @Success 200 {object} map[string]interface{} "Groups"
// @Router /api/grupos [get]
func (h *Handler) HandleGroupNames(c *fiber.Ctx) error {
	start := time.Now()
	items, fallback := h.service.GroupNames(c.UserContext())
	return c.JSON(fiber.Map{
		"elapsed_ms": time.Since(start).Milliseconds(),
		"grupos":     items,
		"fallback":   fallback,
	})
}

// HandleAvailableTeachers lists teachers free to guard at a given time.
// @Summary Available Teachers
// @Description Teachers with no absence covering the hour and no guard already assigned at that hour.
// @Tags profesores
// @Produce json
// @Param fecha query string true "Date (YYYY-MM-DD)"
// @Param hora query string true "Clock time (HH:MM) or period label"
// @Success 200 {object} map[string]interface{} "Teachers"
// @Failure 400 {object} map[string]interface{} "Missing parameters"
// @Router /api/profesores-disponibles [get]
func (h *Handler) HandleAvailableTeachers(c *fiber.Ctx) error {
	fecha, hora := c.Query("fecha"), c.Query("hora")
	if !utils.IsDate(fecha) || hora == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":  false,
			"error":    "fecha (YYYY-MM-DD) and hora are required",
			"required": []string{"fecha", "hora"},
		})
	}
	items, err := h.service.AvailableTeachers(c.UserContext(), fecha, hora)
	if err != nil {
		return h.fail(c, "failed to list available teachers", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items, "count": len(items)})
}
