package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// AdminHandler user management and the audit trail. Mounted behind RequireRole(admin, super_admin).
type AdminHandler struct {
	users *usecase.UserUseCase
	audit *usecase.AuditUseCase
}

// NewAdminHandler builds the handler.
func NewAdminHandler(users *usecase.UserUseCase, audit *usecase.AuditUseCase) *AdminHandler {
	return &AdminHandler{users: users, audit: audit}
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        role    query  string  false  "teacher | admin | super_admin"
// @Param        status  query  string  false  "active | inactive | suspended"
// @Param        search  query  string  false  "matches email or full name"
// @Param        limit   query  int     false  "page size"
// @Param        offset  query  int     false  "offset"
// @Success      200  {object}  dto.UserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.users.List(c.UserContext(), c.Query("role"), c.Query("status"), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeRole godoc
// @Summary      Change a user's role
// @Description  Only super_admin may grant or revoke admin roles.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "user id"
// @Param        body  body  dto.ChangeRoleRequest  true  "new role"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/role [put]
func (h *AdminHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.ChangeRole(c.UserContext(), actor(c), c.Params("id"), in.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Activate, deactivate or suspend a user
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "user id"
// @Param        body  body  dto.ChangeStatusRequest  true  "new status"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/status [put]
func (h *AdminHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.ChangeStatus(c.UserContext(), actor(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AuditLogs godoc
// @Summary      List audit entries, newest first
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        user_id      query  string  false  "actor"
// @Param        entity_type  query  string  false  "document, scheme, library_file..."
// @Param        action       query  string  false  "create, approve, role_change..."
// @Success      200  {object}  dto.AuditLogListResponse
// @Router       /api/admin/audit-logs [get]
func (h *AdminHandler) AuditLogs(c *fiber.Ctx) error {
	out, err := h.audit.List(c.UserContext(), repository.AuditFilter{
		UserID:     c.Query("user_id"),
		EntityType: c.Query("entity_type"),
		Action:     c.Query("action"),
		Limit:      c.QueryInt("limit"),
		Offset:     c.QueryInt("offset"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
