package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	appErrors "github.com/aqarhub/aqar-hub-api/pkg/errors"
	"github.com/aqarhub/aqar-hub-api/pkg/export"
	"github.com/aqarhub/aqar-hub-api/pkg/storage"
)

type documentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Document, error)
	List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error)
	Create(ctx context.Context, doc *models.Document) error
	ReplaceFile(ctx context.Context, doc *models.Document) error
	UpdateStatus(ctx context.Context, id string, status models.ReviewStatus, remarks, reviewedBy string, reviewedAt time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
}

type documentStorage interface {
	SaveStream(name string, r io.Reader) (string, error)
	Delete(name string) error
}

type statsInvalidator interface {
	Invalidate(ctx context.Context)
}

type workflowMetrics interface {
	RecordUpload()
	RecordReview(status string)
}

// UploadDocumentRequest carries the metadata of a multipart upload. The
// file itself travels alongside as a stream.
type UploadDocumentRequest struct {
	Criteria     string `form:"criteria" validate:"required"`
	SubCriteria  string `form:"subCriteria" validate:"required"`
	AcademicYear string `form:"academicYear" validate:"required"`
	FileName     string `validate:"required"`
	FileSize     int64
	MimeType     string
}

// ReviewDocumentRequest records an approve/reject decision.
type ReviewDocumentRequest struct {
	Status  models.ReviewStatus `json:"iqacStatus" validate:"required,oneof=Approved Rejected"`
	Remarks string              `json:"remarks"`
}

// DocumentConfig bounds what uploads are accepted.
type DocumentConfig struct {
	MaxFileSizeBytes  int64
	AllowedExtensions []string
}

// DocumentService owns the document workflow: upload, re-upload, review,
// listing and deletion.
type DocumentService struct {
	repo      documentRepository
	storage   documentStorage
	stats     statsInvalidator
	metrics   workflowMetrics
	validator *validator.Validate
	logger    *zap.Logger
	config    DocumentConfig
	clock     func() time.Time
}

// NewDocumentService constructs a DocumentService instance.
func NewDocumentService(repo documentRepository, store documentStorage, stats statsInvalidator, metrics workflowMetrics, validate *validator.Validate, logger *zap.Logger, config DocumentConfig) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DocumentService{
		repo:      repo,
		storage:   store,
		stats:     stats,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		config:    config,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// List returns documents visible to the actor. Faculty only ever see
// their own uploads regardless of the requested filter.
func (s *DocumentService) List(ctx context.Context, actor *models.User, filter models.DocumentFilter) ([]models.Document, error) {
	if actor.Role == models.RoleFaculty {
		filter.FacultyID = actor.ID
	}
	docs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

// Get returns a single document, enforcing faculty ownership.
func (s *DocumentService) Get(ctx context.Context, actor *models.User, id string) (*models.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}
	if actor.Role == models.RoleFaculty && doc.FacultyID != actor.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "document belongs to another faculty member")
	}
	return doc, nil
}

// Upload validates and stores a new document for the actor. The file
// lands under <year>/Criteria_<n>/Sub_Criteria_<code>/ with a unique name,
// and the record starts in Pending review.
func (s *DocumentService) Upload(ctx context.Context, actor *models.User, req UploadDocumentRequest, file io.Reader) (*models.Document, error) {
	if err := s.validateUpload(req); err != nil {
		return nil, err
	}

	relPath := filepath.Join(
		storage.DocumentDir(req.AcademicYear, req.Criteria, req.SubCriteria),
		storage.UniqueFileName(req.FileName),
	)
	if _, err := s.storage.SaveStream(relPath, file); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store uploaded file")
	}

	doc := &models.Document{
		Date:         s.clock(),
		Criteria:     req.Criteria,
		SubCriteria:  req.SubCriteria,
		FacultyID:    actor.ID,
		FacultyName:  actor.Name,
		AcademicYear: req.AcademicYear,
		DocumentURL:  "/uploads/" + filepath.ToSlash(relPath),
		FilePath:     relPath,
		FileName:     req.FileName,
		FileSize:     req.FileSize,
		MimeType:     req.MimeType,
		UploadStatus: models.UploadStatusUploaded,
		ReviewStatus: models.ReviewPending,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		if delErr := s.storage.Delete(relPath); delErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.String("path", relPath), zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create document")
	}

	s.invalidateStats(ctx)
	if s.metrics != nil {
		s.metrics.RecordUpload()
	}
	s.logger.Info("document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("faculty_id", actor.ID),
		zap.String("sub_criteria", doc.SubCriteria))

	return doc, nil
}

// Reupload replaces the stored file of an existing document and resets
// the review back to Pending, clearing any previous decision.
func (s *DocumentService) Reupload(ctx context.Context, actor *models.User, id string, req UploadDocumentRequest, file io.Reader) (*models.Document, error) {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Criteria == "" {
		req.Criteria = doc.Criteria
	}
	if req.SubCriteria == "" {
		req.SubCriteria = doc.SubCriteria
	}
	if req.AcademicYear == "" {
		req.AcademicYear = doc.AcademicYear
	}
	if err := s.validateUpload(req); err != nil {
		return nil, err
	}

	relPath := filepath.Join(
		storage.DocumentDir(req.AcademicYear, req.Criteria, req.SubCriteria),
		storage.UniqueFileName(req.FileName),
	)
	if _, err := s.storage.SaveStream(relPath, file); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store uploaded file")
	}

	oldPath := doc.FilePath

	doc.Date = s.clock()
	doc.DocumentURL = "/uploads/" + filepath.ToSlash(relPath)
	doc.FilePath = relPath
	doc.FileName = req.FileName
	doc.FileSize = req.FileSize
	doc.MimeType = req.MimeType
	doc.ReviewStatus = models.ReviewPending
	doc.Remarks = ""
	doc.ApprovedBy = nil
	doc.ApprovedDate = nil

	if err := s.repo.ReplaceFile(ctx, doc); err != nil {
		if delErr := s.storage.Delete(relPath); delErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.String("path", relPath), zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace document file")
	}

	if err := s.storage.Delete(oldPath); err != nil {
		s.logger.Warn("failed to remove replaced file", zap.String("path", oldPath), zap.Error(err))
	}

	s.invalidateStats(ctx)
	return doc, nil
}

// Review records an approve/reject decision by a reviewer. Rejections
// must carry remarks; the reviewed-at timestamp is set for any decision.
func (s *DocumentService) Review(ctx context.Context, actor *models.User, id string, req ReviewDocumentRequest) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	if req.Status == models.ReviewRejected && strings.TrimSpace(req.Remarks) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "remarks are required when rejecting a document")
	}

	affected, err := s.repo.UpdateStatus(ctx, id, req.Status, req.Remarks, actor.Name, s.clock())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update document status")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload document")
	}

	s.invalidateStats(ctx)
	if s.metrics != nil {
		s.metrics.RecordReview(string(req.Status))
	}
	s.logger.Info("document reviewed",
		zap.String("document_id", id),
		zap.String("status", string(req.Status)),
		zap.String("reviewed_by", actor.ID))

	return doc, nil
}

// Delete removes a document record and its stored file. Only the owner
// or an admin may delete; the file removal is best effort.
func (s *DocumentService) Delete(ctx context.Context, actor *models.User, id string) error {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && doc.FacultyID != actor.ID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the owner or an admin may delete a document")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete document")
	}

	if err := s.storage.Delete(doc.FilePath); err != nil {
		s.logger.Warn("failed to remove document file", zap.String("path", doc.FilePath), zap.Error(err))
	}

	s.invalidateStats(ctx)
	return nil
}

// ExportRegister renders the document register visible to the actor as
// CSV or PDF bytes.
func (s *DocumentService) ExportRegister(ctx context.Context, actor *models.User, filter models.DocumentFilter, format string) ([]byte, string, error) {
	docs, err := s.List(ctx, actor, filter)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Date", "Criteria", "Sub Criteria", "Faculty", "Academic Year", "File", "Status", "Remarks"},
	}
	for _, doc := range docs {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":          doc.Date.Format("2006-01-02"),
			"Criteria":      doc.Criteria,
			"Sub Criteria":  doc.SubCriteria,
			"Faculty":       doc.FacultyName,
			"Academic Year": doc.AcademicYear,
			"File":          doc.FileName,
			"Status":        string(doc.ReviewStatus),
			"Remarks":       doc.Remarks,
		})
	}

	switch strings.ToLower(format) {
	case "", "csv":
		payload, err := export.NewCSVExporter().Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := export.NewPDFExporter().Render(dataset, "Document Register")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *DocumentService) validateUpload(req UploadDocumentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid upload payload")
	}
	if s.config.MaxFileSizeBytes > 0 && req.FileSize > s.config.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.config.MaxFileSizeBytes))
	}
	if len(s.config.AllowedExtensions) > 0 {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(req.FileName)), ".")
		allowed := false
		for _, candidate := range s.config.AllowedExtensions {
			if ext == strings.ToLower(candidate) {
				allowed = true
				break
			}
		}
		if !allowed {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file extension %q is not allowed", ext))
		}
	}
	return nil
}

func (s *DocumentService) invalidateStats(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}
