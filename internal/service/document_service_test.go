package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	appErrors "github.com/aqarhub/aqar-hub-api/pkg/errors"
)

type mockDocumentRepo struct {
	docs         map[string]*models.Document
	listResult   []models.Document
	listFilter   models.DocumentFilter
	createErr    error
	statusStatus models.ReviewStatus
	statusBy     string
	statusRows   int64
}

func (m *mockDocumentRepo) FindByID(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *doc
	return &copied, nil
}

func (m *mockDocumentRepo) List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	m.listFilter = filter
	return m.listResult, nil
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	if m.createErr != nil {
		return m.createErr
	}
	if doc.ID == "" {
		doc.ID = "d-new"
	}
	if m.docs == nil {
		m.docs = make(map[string]*models.Document)
	}
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockDocumentRepo) ReplaceFile(ctx context.Context, doc *models.Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockDocumentRepo) UpdateStatus(ctx context.Context, id string, status models.ReviewStatus, remarks, reviewedBy string, reviewedAt time.Time) (int64, error) {
	m.statusStatus = status
	m.statusBy = reviewedBy
	if doc, ok := m.docs[id]; ok {
		doc.ReviewStatus = status
		doc.Remarks = remarks
		doc.ApprovedBy = &reviewedBy
		doc.ApprovedDate = &reviewedAt
		return 1, nil
	}
	return m.statusRows, nil
}

func (m *mockDocumentRepo) Delete(ctx context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

type mockStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (m *mockStorage) SaveStream(name string, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.saved = append(m.saved, name)
	return name, nil
}

func (m *mockStorage) Delete(name string) error {
	m.deleted = append(m.deleted, name)
	return nil
}

type mockInvalidator struct {
	calls int
}

func (m *mockInvalidator) Invalidate(ctx context.Context) { m.calls++ }

func newTestDocumentService(repo *mockDocumentRepo, store *mockStorage, stats *mockInvalidator) *DocumentService {
	return NewDocumentService(repo, store, stats, nil, validator.New(), zap.NewNop(), DocumentConfig{
		MaxFileSizeBytes:  1024 * 1024,
		AllowedExtensions: []string{"pdf", "docx"},
	})
}

func faculty() *models.User {
	return &models.User{ID: "u1", Name: "Asha", Role: models.RoleFaculty, Status: models.StatusActive}
}

func reviewer() *models.User {
	return &models.User{ID: "r1", Name: "Dr. Rao", Role: models.RoleIQAC, Status: models.StatusActive}
}

func admin() *models.User {
	return &models.User{ID: "a1", Name: "Admin User", Role: models.RoleAdmin, Status: models.StatusActive}
}

func uploadReq() UploadDocumentRequest {
	return UploadDocumentRequest{
		Criteria:     "1",
		SubCriteria:  "1.1.1",
		AcademicYear: "2024-25",
		FileName:     "evidence.pdf",
		FileSize:     2048,
		MimeType:     "application/pdf",
	}
}

func TestUploadStoresFileAndStartsPending(t *testing.T) {
	repo := &mockDocumentRepo{}
	store := &mockStorage{}
	stats := &mockInvalidator{}
	svc := newTestDocumentService(repo, store, stats)

	doc, err := svc.Upload(context.Background(), faculty(), uploadReq(), bytes.NewBufferString("content"))
	require.NoError(t, err)
	assert.Equal(t, models.ReviewPending, doc.ReviewStatus)
	assert.Equal(t, "u1", doc.FacultyID)
	assert.Equal(t, "Asha", doc.FacultyName)
	assert.Nil(t, doc.ApprovedBy)
	require.Len(t, store.saved, 1)
	assert.Contains(t, store.saved[0], "2024-25/Criteria_1/Sub_Criteria_1.1.1/")
	assert.Equal(t, 1, stats.calls)
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	svc := newTestDocumentService(&mockDocumentRepo{}, &mockStorage{}, &mockInvalidator{})

	req := uploadReq()
	req.FileName = "malware.exe"
	_, err := svc.Upload(context.Background(), faculty(), req, bytes.NewBufferString("x"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := newTestDocumentService(&mockDocumentRepo{}, &mockStorage{}, &mockInvalidator{})

	req := uploadReq()
	req.FileSize = 10 * 1024 * 1024
	_, err := svc.Upload(context.Background(), faculty(), req, bytes.NewBufferString("x"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUploadCleansUpFileWhenInsertFails(t *testing.T) {
	repo := &mockDocumentRepo{createErr: sql.ErrConnDone}
	store := &mockStorage{}
	svc := newTestDocumentService(repo, store, &mockInvalidator{})

	_, err := svc.Upload(context.Background(), faculty(), uploadReq(), bytes.NewBufferString("x"))
	require.Error(t, err)
	require.Len(t, store.deleted, 1)
	assert.Equal(t, store.saved[0], store.deleted[0])
}

func TestListScopesFacultyToOwnDocuments(t *testing.T) {
	repo := &mockDocumentRepo{listResult: []models.Document{}}
	svc := newTestDocumentService(repo, &mockStorage{}, &mockInvalidator{})

	_, err := svc.List(context.Background(), faculty(), models.DocumentFilter{FacultyID: "someone-else"})
	require.NoError(t, err)
	assert.Equal(t, "u1", repo.listFilter.FacultyID, "faculty filter must be forced to the actor")

	_, err = svc.List(context.Background(), reviewer(), models.DocumentFilter{FacultyID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", repo.listFilter.FacultyID)
}

func TestGetForbiddenForOtherFaculty(t *testing.T) {
	repo := &mockDocumentRepo{docs: map[string]*models.Document{
		"d1": {ID: "d1", FacultyID: "owner", FilePath: "p"},
	}}
	svc := newTestDocumentService(repo, &mockStorage{}, &mockInvalidator{})

	_, err := svc.Get(context.Background(), faculty(), "d1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	// Reviewers can read any document.
	_, err = svc.Get(context.Background(), reviewer(), "d1")
	require.NoError(t, err)
}

func TestReuploadResetsReviewState(t *testing.T) {
	approvedBy := "Dr. Rao"
	approvedAt := time.Now()
	repo := &mockDocumentRepo{docs: map[string]*models.Document{
		"d1": {
			ID: "d1", FacultyID: "u1", Criteria: "1", SubCriteria: "1.1.1", AcademicYear: "2024-25",
			FilePath: "old/path.pdf", ReviewStatus: models.ReviewRejected,
			Remarks: "blurry scan", ApprovedBy: &approvedBy, ApprovedDate: &approvedAt,
		},
	}}
	store := &mockStorage{}
	svc := newTestDocumentService(repo, store, &mockInvalidator{})

	req := uploadReq()
	doc, err := svc.Reupload(context.Background(), faculty(), "d1", req, bytes.NewBufferString("new"))
	require.NoError(t, err)
	assert.Equal(t, models.ReviewPending, doc.ReviewStatus)
	assert.Empty(t, doc.Remarks)
	assert.Nil(t, doc.ApprovedBy)
	assert.Nil(t, doc.ApprovedDate)
	assert.Contains(t, store.deleted, "old/path.pdf")
}

func TestReviewRejectedRequiresRemarks(t *testing.T) {
	repo := &mockDocumentRepo{docs: map[string]*models.Document{
		"d1": {ID: "d1", FacultyID: "u1", ReviewStatus: models.ReviewPending},
	}}
	svc := newTestDocumentService(repo, &mockStorage{}, &mockInvalidator{})

	_, err := svc.Review(context.Background(), reviewer(), "d1", ReviewDocumentRequest{Status: models.ReviewRejected, Remarks: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	doc, err := svc.Review(context.Background(), reviewer(), "d1", ReviewDocumentRequest{Status: models.ReviewRejected, Remarks: "missing pages"})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewRejected, doc.ReviewStatus)
	assert.Equal(t, "missing pages", doc.Remarks)
}

func TestReviewAllowsApprovedToRejected(t *testing.T) {
	repo := &mockDocumentRepo{docs: map[string]*models.Document{
		"d1": {ID: "d1", FacultyID: "u1", ReviewStatus: models.ReviewApproved},
	}}
	svc := newTestDocumentService(repo, &mockStorage{}, &mockInvalidator{})

	doc, err := svc.Review(context.Background(), reviewer(), "d1", ReviewDocumentRequest{Status: models.ReviewRejected, Remarks: "revoked after audit"})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewRejected, doc.ReviewStatus)
	assert.Equal(t, "Dr. Rao", *doc.ApprovedBy)
}

func TestReviewDecisionMustBeApprovedOrRejected(t *testing.T) {
	repo := &mockDocumentRepo{docs: map[string]*models.Document{
		"d1": {ID: "d1", FacultyID: "u1", ReviewStatus: models.ReviewApproved},
	}}
	svc := newTestDocumentService(repo, &mockStorage{}, &mockInvalidator{})

	// Pending is the initial workflow state, not a decision a reviewer can
	// hand back; only reupload resets a document to Pending.
	_, err := svc.Review(context.Background(), reviewer(), "d1", ReviewDocumentRequest{Status: models.ReviewPending})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.ReviewApproved, repo.docs["d1"].ReviewStatus)
	assert.Nil(t, repo.docs["d1"].ApprovedBy)
}

func TestReviewUnknownDocument(t *testing.T) {
	svc := newTestDocumentService(&mockDocumentRepo{}, &mockStorage{}, &mockInvalidator{})

	_, err := svc.Review(context.Background(), reviewer(), "missing", ReviewDocumentRequest{Status: models.ReviewApproved})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeleteOwnerOrAdminOnly(t *testing.T) {
	repo := &mockDocumentRepo{docs: map[string]*models.Document{
		"d1": {ID: "d1", FacultyID: "u1", FilePath: "a/b.pdf"},
	}}
	store := &mockStorage{}
	svc := newTestDocumentService(repo, store, &mockInvalidator{})

	// A reviewer who is not the owner may not delete.
	err := svc.Delete(context.Background(), reviewer(), "d1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	// An admin may.
	require.NoError(t, svc.Delete(context.Background(), admin(), "d1"))
	assert.Contains(t, store.deleted, "a/b.pdf")
}

func TestExportRegisterCSV(t *testing.T) {
	repo := &mockDocumentRepo{listResult: []models.Document{
		{Date: time.Now(), Criteria: "1", SubCriteria: "1.1.1", FacultyName: "Asha", AcademicYear: "2024-25", FileName: "f.pdf", ReviewStatus: models.ReviewApproved},
	}}
	svc := newTestDocumentService(repo, &mockStorage{}, &mockInvalidator{})

	payload, contentType, err := svc.ExportRegister(context.Background(), reviewer(), models.DocumentFilter{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	body := string(payload)
	assert.True(t, strings.HasPrefix(body, "Date,Criteria,Sub Criteria"))
	assert.Contains(t, body, "Asha")
}

func TestExportRegisterUnknownFormat(t *testing.T) {
	svc := newTestDocumentService(&mockDocumentRepo{}, &mockStorage{}, &mockInvalidator{})

	_, _, err := svc.ExportRegister(context.Background(), reviewer(), models.DocumentFilter{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
