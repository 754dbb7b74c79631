package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aqarhub/aqar-hub-api/internal/models"
)

const documentColumns = `id, date, criteria, sub_criteria, faculty_id, faculty_name, academic_year, document_url, file_path, file_name, file_size, mime_type, upload_status, iqac_status, remarks, approved_by, approved_date`

// DocumentRepository provides database access for compliance documents.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository creates a new instance of DocumentRepository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// FindByID returns a document by identifier.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf("SELECT %s FROM documents WHERE id = ? LIMIT 1", documentColumns)
	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find document by id: %w", err)
	}
	return &doc, nil
}

// List returns documents matching the filter, newest first.
func (r *DocumentRepository) List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	query := fmt.Sprintf("SELECT %s FROM documents WHERE 1=1", documentColumns)
	var conditions []string
	var args []interface{}

	if filter.FacultyID != "" {
		conditions = append(conditions, "faculty_id = ?")
		args = append(args, filter.FacultyID)
	}
	if filter.Criteria != "" {
		conditions = append(conditions, "criteria = ?")
		args = append(args, filter.Criteria)
	}
	if filter.Year != "" {
		conditions = append(conditions, "academic_year = ?")
		args = append(args, filter.Year)
	}
	if filter.Status != "" {
		conditions = append(conditions, "iqac_status = ?")
		args = append(args, filter.Status)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC"

	var docs []models.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Create inserts a new document row.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now().UTC()
	}
	const query = `INSERT INTO documents (id, date, criteria, sub_criteria, faculty_id, faculty_name, academic_year, document_url, file_path, file_name, file_size, mime_type, upload_status, iqac_status, remarks, approved_by, approved_date)
		VALUES (:id, :date, :criteria, :sub_criteria, :faculty_id, :faculty_name, :academic_year, :document_url, :file_path, :file_name, :file_size, :mime_type, :upload_status, :iqac_status, :remarks, :approved_by, :approved_date)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// ReplaceFile rewrites the stored file reference for a re-upload, resetting
// the review state back to Pending and clearing the reviewer fields.
func (r *DocumentRepository) ReplaceFile(ctx context.Context, doc *models.Document) error {
	const query = `UPDATE documents SET date = :date, document_url = :document_url, file_path = :file_path, file_name = :file_name, file_size = :file_size, mime_type = :mime_type, iqac_status = :iqac_status, remarks = :remarks, approved_by = NULL, approved_date = NULL WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("replace document file: %w", err)
	}
	return nil
}

// UpdateStatus records a review decision.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status models.ReviewStatus, remarks, reviewedBy string, reviewedAt time.Time) (int64, error) {
	const query = `UPDATE documents SET iqac_status = ?, remarks = ?, approved_by = ?, approved_date = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, status, remarks, reviewedBy, reviewedAt, id)
	if err != nil {
		return 0, fmt.Errorf("update document status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update document status rows: %w", err)
	}
	return affected, nil
}

// Delete removes the document row.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Stats aggregates the dashboard snapshot in three grouped queries.
func (r *DocumentRepository) Stats(ctx context.Context) (*models.Stats, error) {
	const totalsQuery = `SELECT
		COUNT(*) AS total_documents,
		COALESCE(SUM(CASE WHEN iqac_status = 'Approved' THEN 1 ELSE 0 END), 0) AS approved,
		COALESCE(SUM(CASE WHEN iqac_status = 'Pending' THEN 1 ELSE 0 END), 0) AS pending,
		COALESCE(SUM(CASE WHEN iqac_status = 'Rejected' THEN 1 ELSE 0 END), 0) AS rejected
		FROM documents`

	var totals struct {
		Total    int `db:"total_documents"`
		Approved int `db:"approved"`
		Pending  int `db:"pending"`
		Rejected int `db:"rejected"`
	}
	if err := r.db.GetContext(ctx, &totals, totalsQuery); err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}

	const byYearQuery = `SELECT academic_year, COUNT(*) AS count FROM documents GROUP BY academic_year ORDER BY academic_year DESC`
	var yearRows []struct {
		Year  string `db:"academic_year"`
		Count int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &yearRows, byYearQuery); err != nil {
		return nil, fmt.Errorf("stats by year: %w", err)
	}

	const byCriteriaQuery = `SELECT criteria,
		COALESCE(SUM(CASE WHEN iqac_status = 'Approved' THEN 1 ELSE 0 END), 0) AS completed,
		COALESCE(SUM(CASE WHEN iqac_status != 'Approved' THEN 1 ELSE 0 END), 0) AS pending
		FROM documents GROUP BY criteria ORDER BY criteria`
	var criteriaRows []struct {
		Criteria  string `db:"criteria"`
		Completed int    `db:"completed"`
		Pending   int    `db:"pending"`
	}
	if err := r.db.SelectContext(ctx, &criteriaRows, byCriteriaQuery); err != nil {
		return nil, fmt.Errorf("stats by criteria: %w", err)
	}

	stats := &models.Stats{
		TotalDocuments: totals.Total,
		Approved:       totals.Approved,
		Pending:        totals.Pending,
		Rejected:       totals.Rejected,
		ByYear:         make(map[string]int, len(yearRows)),
		ByCriteria:     make(map[string]models.CriteriaProgress, len(criteriaRows)),
	}
	for _, row := range yearRows {
		stats.ByYear[row.Year] = row.Count
	}
	for _, row := range criteriaRows {
		stats.ByCriteria[row.Criteria] = models.CriteriaProgress{Completed: row.Completed, Pending: row.Pending}
	}
	return stats, nil
}
