package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
)

// LessonPlanHandler lesson plans: CRUD and AI generation.
type LessonPlanHandler struct {
	uc *usecase.LessonPlanUseCase
	ai *usecase.AIUseCase
}

func NewLessonPlanHandler(uc *usecase.LessonPlanUseCase, ai *usecase.AIUseCase) *LessonPlanHandler {
	return &LessonPlanHandler{uc: uc, ai: ai}
}

// Create godoc
// @Summary      Save a lesson plan
// @Tags         lesson-plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LessonPlanRequest  true  "lesson plan"
// @Success      201   {object}  dto.LessonPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lesson-plans [post]
func (h *LessonPlanHandler) Create(c *fiber.Ctx) error {
	var in dto.LessonPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List lesson plans (own, or all for admins)
// @Tags         lesson-plans
// @Security     Bearer
// @Produce      json
// @Param        subject  query  string  false  "subject"
// @Param        grade    query  string  false  "grade"
// @Success      200  {object}  dto.LessonPlanListResponse
// @Router       /api/lesson-plans [get]
func (h *LessonPlanHandler) List(c *fiber.Ctx) error {
	var q dto.PlanListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), actor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a lesson plan
// @Tags         lesson-plans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "lesson plan id"
// @Success      200  {object}  dto.LessonPlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lesson-plans/{id} [get]
func (h *LessonPlanHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Replace a lesson plan
// @Tags         lesson-plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "lesson plan id"
// @Param        body  body  dto.LessonPlanRequest  true  "lesson plan"
// @Success      200   {object}  dto.LessonPlanResponse
// @Router       /api/lesson-plans/{id} [put]
func (h *LessonPlanHandler) Update(c *fiber.Ctx) error {
	var in dto.LessonPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a lesson plan
// @Tags         lesson-plans
// @Security     Bearer
// @Param        id   path  string  true  "lesson plan id"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/lesson-plans/{id} [delete]
func (h *LessonPlanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "lesson plan deleted"})
}

// Generate godoc
// @Summary      Generate a lesson plan with AI
// @Description  Returns an unsaved lesson plan.
// @Tags         lesson-plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateLessonPlanRequest  true  "subject, grade, topic..."
// @Success      200   {object}  dto.LessonPlanResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/lesson-plans/generate [post]
func (h *LessonPlanHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateLessonPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ai.GenerateLessonPlan(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
