package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ingestion"
)

// DocumentHandler curriculum document upload, listing and reference search.
type DocumentHandler struct {
	svc   *ingestion.DocumentService
	limit uploadLimit
}

// NewDocumentHandler builds the handler.
func NewDocumentHandler(svc *ingestion.DocumentService, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{svc: svc, limit: uploadLimit{allow: ingestion.DocumentAllowList, maxBytes: maxBytes}}
}

// Upload godoc
// @Summary      Upload a curriculum document
// @Description  PDF, DOCX or TXT. The document is stored as PENDING and its text is extracted in the background.
// @Tags         documents
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file           formData  file    true   "document"
// @Param        title          formData  string  false  "defaults to the file name"
// @Param        subject        formData  string  true   "subject"
// @Param        grade          formData  string  true   "grade"
// @Param        document_type  formData  string  false  "curriculum | syllabus | teachers_guide | assessment | other"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	return withUpload(c, h.limit, func(fh *multipart.FileHeader, r io.Reader) error {
		out, err := h.svc.Upload(c.UserContext(), GetUserID(c), dto.UploadDocumentInput{
			Title:        c.FormValue("title"),
			Subject:      c.FormValue("subject"),
			Grade:        c.FormValue("grade"),
			DocumentType: c.FormValue("document_type"),
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
// @Summary      List curriculum documents
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        subject        query  string  false  "subject"
// @Param        grade          query  string  false  "grade"
// @Param        document_type  query  string  false  "document type"
// @Param        status         query  string  false  "PENDING | PROCESSING | COMPLETED | FAILED"
// @Param        limit          query  int     false  "page size"
// @Param        offset         query  int     false  "offset"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var q dto.DocumentListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.svc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a document with its extracted text
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "document id"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a document and its stored file
// @Tags         documents
// @Security     Bearer
// @Param        id   path  string  true  "document id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "document deleted"})
}

// Search godoc
// @Summary      Reference search over extracted curriculum text
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        q        query  string  true   "free text"
// @Param        subject  query  string  false  "subject"
// @Param        grade    query  string  false  "grade"
// @Param        limit    query  int     false  "max results (default 10)"
// @Success      200  {object}  dto.ReferenceSearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/search [get]
func (h *DocumentHandler) Search(c *fiber.Ctx) error {
	out, err := h.svc.Search(c.UserContext(), c.Query("q"), c.Query("subject"), c.Query("grade"), c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
