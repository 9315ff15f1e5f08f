package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	appanalytics "github.com/jhoicas/elimu-hub/internal/application/analytics"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
)

// DashboardHandler counters and the seeded CBC catalog.
type DashboardHandler struct {
	uc      *appanalytics.DashboardUseCase
	catalog *usecase.CatalogUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, catalog *usecase.CatalogUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, catalog: catalog}
}

// Stats godoc
// @Summary      Dashboard counters
// @Description  Documents and library files by status, schemes, lesson plans and AI queries in the last 7 days.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Subjects godoc
// @Summary      CBC subjects with their Kiswahili names
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        education_level  query  string  false  "education level code, e.g. PRI, JSS"
// @Success      200  {array}  dto.SubjectDTO
// @Router       /api/catalog/subjects [get]
func (h *DashboardHandler) Subjects(c *fiber.Ctx) error {
	out, err := h.catalog.Subjects(c.UserContext(), c.Query("education_level"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EducationLevels godoc
// @Summary      CBC education levels
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        include_inactive  query  bool  false  "also list deactivated levels"
// @Success      200  {array}  dto.EducationLevelDTO
// @Router       /api/catalog/education-levels [get]
func (h *DashboardHandler) EducationLevels(c *fiber.Ctx) error {
	out, err := h.catalog.EducationLevels(c.UserContext(), c.QueryBool("include_inactive"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateEducationLevel godoc
// @Summary      Add an education level
// @Description  super_admin only. Names and codes are unique, case-insensitively.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EducationLevelRequest  true  "level"
// @Success      201   {object}  dto.EducationLevelDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalog/education-levels [post]
func (h *DashboardHandler) CreateEducationLevel(c *fiber.Ctx) error {
	var in dto.EducationLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.catalog.CreateEducationLevel(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateEducationLevel godoc
// @Summary      Replace an education level
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "level id"
// @Param        body  body  dto.EducationLevelRequest  true  "level"
// @Success      200   {object}  dto.EducationLevelDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalog/education-levels/{id} [put]
func (h *DashboardHandler) UpdateEducationLevel(c *fiber.Ctx) error {
	var in dto.EducationLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.catalog.UpdateEducationLevel(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteEducationLevel godoc
// @Summary      Deactivate an education level
// @Description  Refused with 409 while curriculum documents are filed under the level.
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  int  true  "level id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/catalog/education-levels/{id} [delete]
func (h *DashboardHandler) DeleteEducationLevel(c *fiber.Ctx) error {
	if err := h.catalog.DeleteEducationLevel(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "education level deleted"})
}
