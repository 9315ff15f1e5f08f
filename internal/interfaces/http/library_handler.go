package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ingestion"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
)

// LibraryHandler the shared resource library and its approval workflow.
type LibraryHandler struct {
	uc    *usecase.LibraryUseCase
	limit uploadLimit
}

// NewLibraryHandler builds the handler.
func NewLibraryHandler(uc *usecase.LibraryUseCase, maxBytes int64) *LibraryHandler {
	return &LibraryHandler{uc: uc, limit: uploadLimit{allow: ingestion.LibraryAllowList, maxBytes: maxBytes}}
}

// Upload godoc
// @Summary      Upload a library resource
// @Description  PDF, video (mp4, webm), audio (mp3, wav, m4a) or image (png, jpeg). Stored as PENDING until an admin approves it.
// @Tags         library
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "resource"
// @Param        title        formData  string  false  "defaults to the file name"
// @Param        description  formData  string  false  "description"
// @Param        section      formData  string  true   "section"
// @Param        subfolder    formData  string  false  "subfolder"
// @Success      201  {object}  dto.LibraryFileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/library [post]
func (h *LibraryHandler) Upload(c *fiber.Ctx) error {
	return withUpload(c, h.limit, func(fh *multipart.FileHeader, r io.Reader) error {
		out, err := h.uc.Upload(c.UserContext(), actor(c), dto.UploadLibraryInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Section:     c.FormValue("section"),
			Subfolder:   c.FormValue("subfolder"),
			FileName:    fh.Filename,
			Size:        fh.Size,
		}, r)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	})
}

// List godoc
// @Summary      List library resources
// @Description  Non-admins see APPROVED resources plus their own uploads.
// @Tags         library
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "PENDING | APPROVED | DECLINED"
// @Param        section    query  string  false  "section"
// @Param        subfolder  query  string  false  "subfolder"
// @Param        file_type  query  string  false  "pdf | video | audio | image"
// @Success      200  {object}  dto.LibraryListResponse
// @Router       /api/library [get]
func (h *LibraryHandler) List(c *fiber.Ctx) error {
	var q dto.LibraryListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), actor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sections godoc
// @Summary      Section and subfolder tree with file counts
// @Tags         library
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LibrarySectionDTO
// @Router       /api/library/sections [get]
func (h *LibraryHandler) Sections(c *fiber.Ctx) error {
	out, err := h.uc.Sections(c.UserContext(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a library resource
// @Tags         library
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "file id"
// @Success      200  {object}  dto.LibraryFileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/library/{id} [get]
func (h *LibraryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Download a library resource
// @Tags         library
// @Security     Bearer
// @Produce      octet-stream
// @Param        id   path  string  true  "file id"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/library/{id}/download [get]
func (h *LibraryHandler) Download(c *fiber.Ctx) error {
	rc, f, err := h.uc.Open(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, f.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, f.FileName))
	// fasthttp closes rc once the body is written
	return c.SendStream(rc, int(f.FileSize))
}

// Approve godoc
// @Summary      Approve a pending resource
// @Tags         library
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "file id"
// @Success      200  {object}  dto.LibraryFileResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/library/{id}/approve [put]
func (h *LibraryHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Decline godoc
// @Summary      Decline a pending resource
// @Tags         library
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true   "file id"
// @Param        body  body  dto.DeclineRequest  false  "reason"
// @Success      200   {object}  dto.LibraryFileResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/library/{id}/decline [put]
func (h *LibraryHandler) Decline(c *fiber.Ctx) error {
	var in dto.DeclineRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Decline(c.UserContext(), actor(c), c.Params("id"), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
