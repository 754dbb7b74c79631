package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	"github.com/aqarhub/aqar-hub-api/internal/service"
	appErrors "github.com/aqarhub/aqar-hub-api/pkg/errors"
	"github.com/aqarhub/aqar-hub-api/pkg/response"
)

// DocumentHandler wires HTTP endpoints to the document workflow.
type DocumentHandler struct {
	service        *service.DocumentService
	exportsEnabled bool
}

// NewDocumentHandler creates a new handler.
func NewDocumentHandler(svc *service.DocumentService, exportsEnabled bool) *DocumentHandler {
	return &DocumentHandler{service: svc, exportsEnabled: exportsEnabled}
}

// List godoc
// @Summary List documents
// @Description List documents; faculty are scoped to their own uploads
// @Tags Documents
// @Produce json
// @Param criteria query string false "Filter by criteria"
// @Param year query string false "Filter by academic year"
// @Param status query string false "Filter by review status"
// @Param facultyId query string false "Filter by faculty (reviewers only)"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	actor := userFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := models.DocumentFilter{
		FacultyID: c.Query("facultyId"),
		Criteria:  c.Query("criteria"),
		Year:      c.Query("year"),
		Status:    models.ReviewStatus(c.Query("status")),
	}

	docs, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, docs, nil)
}

// Get godoc
// @Summary Get document
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	actor := userFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	doc, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, doc, nil)
}

// Upload godoc
// @Summary Upload document
// @Description Store a compliance document against a sub-criteria; review starts Pending
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param criteria formData string true "Criteria number"
// @Param subCriteria formData string true "Sub-criteria code"
// @Param academicYear formData string true "Academic year"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	actor := userFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}

	req := service.UploadDocumentRequest{
		Criteria:     c.PostForm("criteria"),
		SubCriteria:  c.PostForm("subCriteria"),
		AcademicYear: c.PostForm("academicYear"),
		FileName:     fileHeader.Filename,
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
		return
	}
	defer file.Close() //nolint:errcheck

	doc, err := h.service.Upload(c.Request.Context(), actor, req, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, doc)
}

// Reupload godoc
// @Summary Replace document file
// @Description Replace the stored file; the review resets to Pending
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Document ID"
// @Param file formData file true "Document file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id}/file [put]
func (h *DocumentHandler) Reupload(c *gin.Context) {
	actor := userFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}

	req := service.UploadDocumentRequest{
		Criteria:     c.PostForm("criteria"),
		SubCriteria:  c.PostForm("subCriteria"),
		AcademicYear: c.PostForm("academicYear"),
		FileName:     fileHeader.Filename,
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
		return
	}
	defer file.Close() //nolint:errcheck

	doc, err := h.service.Reupload(c.Request.Context(), actor, c.Param("id"), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, doc, nil)
}

// Review godoc
// @Summary Review document
// @Description Record an approve/reject decision; rejections require remarks
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param payload body service.ReviewDocumentRequest true "Review decision"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id}/status [put]
func (h *DocumentHandler) Review(c *gin.Context) {
	actor := userFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	doc, err := h.service.Review(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, doc, nil)
}

// Delete godoc
// @Summary Delete document
// @Description Remove a document record and its stored file
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	actor := userFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export godoc
// @Summary Export document register
// @Description Download the visible document register as CSV or PDF
// @Tags Documents
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /documents/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	actor := userFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if !h.exportsEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}

	filter := models.DocumentFilter{
		FacultyID: c.Query("facultyId"),
		Criteria:  c.Query("criteria"),
		Year:      c.Query("year"),
		Status:    models.ReviewStatus(c.Query("status")),
	}
	format := c.DefaultQuery("format", "csv")

	payload, contentType, err := h.service.ExportRegister(c.Request.Context(), actor, filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("document-register-%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
