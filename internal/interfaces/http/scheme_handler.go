package http

import (
	"encoding/base64"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/export"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
)

// SchemeHandler schemes of work: CRUD, AI generation and export.
type SchemeHandler struct {
	uc       *usecase.SchemeUseCase
	ai       *usecase.AIUseCase
	exporter *export.Service
}

// NewSchemeHandler builds the handler.
func NewSchemeHandler(uc *usecase.SchemeUseCase, ai *usecase.AIUseCase, exporter *export.Service) *SchemeHandler {
	return &SchemeHandler{uc: uc, ai: ai, exporter: exporter}
}

// Create godoc
// @Summary      Save a scheme of work
// @Tags         schemes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SchemeRequest  true  "scheme"
// @Success      201   {object}  dto.SchemeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/schemes [post]
func (h *SchemeHandler) Create(c *fiber.Ctx) error {
	var in dto.SchemeRequest
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
// @Summary      List schemes (own, or all for admins)
// @Tags         schemes
// @Security     Bearer
// @Produce      json
// @Param        subject  query  string  false  "subject"
// @Param        grade    query  string  false  "grade"
// @Param        term     query  string  false  "term"
// @Param        limit    query  int     false  "page size"
// @Param        offset   query  int     false  "offset"
// @Success      200  {object}  dto.SchemeListResponse
// @Router       /api/schemes [get]
func (h *SchemeHandler) List(c *fiber.Ctx) error {
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
// @Summary      Get a scheme
// @Tags         schemes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "scheme id"
// @Success      200  {object}  dto.SchemeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schemes/{id} [get]
func (h *SchemeHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Replace a scheme
// @Tags         schemes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "scheme id"
// @Param        body  body  dto.SchemeRequest  true  "scheme"
// @Success      200   {object}  dto.SchemeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/schemes/{id} [put]
func (h *SchemeHandler) Update(c *fiber.Ctx) error {
	var in dto.SchemeRequest
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
// @Summary      Delete a scheme
// @Tags         schemes
// @Security     Bearer
// @Param        id   path  string  true  "scheme id"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/schemes/{id} [delete]
func (h *SchemeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "scheme deleted"})
}

// Generate godoc
// @Summary      Generate a scheme of work with AI
// @Description  Returns an unsaved scheme with exactly `weeks` weekly plans.
// @Tags         schemes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateSchemeRequest  true  "subject, grade, term, strand, weeks (1-20)"
// @Success      200   {object}  dto.SchemeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/schemes/generate [post]
func (h *SchemeHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateSchemeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ai.GenerateScheme(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportSaved godoc
// @Summary      Download a saved scheme as csv, pdf or docx
// @Tags         schemes
// @Security     Bearer
// @Produce      octet-stream
// @Param        id      path  string  true  "scheme id"
// @Param        format  path  string  true  "csv | pdf | docx"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schemes/{id}/export/{format} [get]
func (h *SchemeHandler) ExportSaved(c *fiber.Ctx) error {
	scheme, err := h.uc.Load(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return h.sendExport(c, h.exporter.Export(c.UserContext(), scheme, c.Params("format")))
}

// ExportBody godoc
// @Summary      Export an unsaved scheme as csv, pdf or docx
// @Tags         schemes
// @Security     Bearer
// @Accept       json
// @Produce      octet-stream
// @Param        format  path  string             true  "csv | pdf | docx"
// @Param        body    body  dto.SchemeRequest  true  "scheme"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/schemes/export/{format} [post]
func (h *SchemeHandler) ExportBody(c *fiber.Ctx) error {
	var in dto.SchemeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	scheme := usecase.SchemeFromRequest(in)
	return h.sendExport(c, h.exporter.Export(c.UserContext(), scheme, c.Params("format")))
}

// ExportMany godoc
// @Summary      Export a scheme to several formats at once
// @Description  Formats are produced one after another; one failing format does not stop the others. Data is base64.
// @Tags         schemes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExportRequest  true  "scheme and formats (default csv, pdf, docx)"
// @Success      200   {object}  dto.ExportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/schemes/export [post]
func (h *SchemeHandler) ExportMany(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	scheme := usecase.SchemeFromRequest(in.Scheme)
	results := h.exporter.ExportAll(c.UserContext(), scheme, in.Formats)

	resp := dto.ExportResponse{Results: make([]dto.ExportResultDTO, 0, len(results))}
	for _, r := range results {
		item := dto.ExportResultDTO{Format: r.Format, Success: r.OK()}
		if r.OK() {
			item.Filename = r.Filename
			item.ContentType = r.ContentType
			item.Data = base64.StdEncoding.EncodeToString(r.Data)
			resp.Succeeded++
		} else {
			item.Message = r.Err.Error()
			resp.Failed++
		}
		resp.Results = append(resp.Results, item)
	}
	return c.JSON(resp)
}

func (h *SchemeHandler) sendExport(c *fiber.Ctx, r export.Result) error {
	if !r.OK() {
		return writeError(c, r.Err)
	}
	c.Set(fiber.HeaderContentType, r.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, r.Filename))
	return c.Send(r.Data)
}
