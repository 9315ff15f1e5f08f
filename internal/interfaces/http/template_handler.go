package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ingestion"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// TemplateHandler sample schemes and lesson plans used to steer generation.
type TemplateHandler struct {
	svc   *ingestion.TemplateService
	limit uploadLimit
}

func NewTemplateHandler(svc *ingestion.TemplateService, maxBytes int64) *TemplateHandler {
	return &TemplateHandler{svc: svc, limit: uploadLimit{allow: ingestion.TemplateAllowList, maxBytes: maxBytes}}
}

// Upload godoc
// @Summary      Upload a template
// @Description  The text is extracted before the response is sent; a file without text is rejected.
// @Tags         templates
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file           formData  file    true   "PDF, DOCX or TXT"
// @Param        name           formData  string  false  "defaults to the file name"
// @Param        description    formData  string  false  "description"
// @Param        template_type  formData  string  true   "scheme | lesson_plan"
// @Success      201  {object}  dto.TemplateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/templates [post]
func (h *TemplateHandler) Upload(c *fiber.Ctx) error {
	return withUpload(c, h.limit, func(fh *multipart.FileHeader, r io.Reader) error {
		out, err := h.svc.Upload(c.UserContext(), GetUserID(c), dto.UploadTemplateInput{
			Name:         c.FormValue("name"),
			Description:  c.FormValue("description"),
			TemplateType: c.FormValue("template_type"),
			FileName:     fh.Filename,
			Size:         fh.Size,
		}, r)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	})
}

// List godoc
// @Summary      List templates
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Param        template_type  query  string  false  "scheme | lesson_plan"
// @Success      200  {object}  dto.TemplateListResponse
// @Router       /api/templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.svc.List(c.UserContext(), c.Query("template_type"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a template with its extracted text
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "template id"
// @Success      200  {object}  dto.TemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [get]
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a template (owner or admin)
// @Tags         templates
// @Security     Bearer
// @Param        id   path  string  true  "template id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), GetUserID(c), entity.IsAdminRole(GetRole(c)), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "template deleted"})
}
