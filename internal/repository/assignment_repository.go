package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aqarhub/aqar-hub-api/internal/models"
)

// AssignmentRepository provides database access for criteria assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new instance of AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns assignments, optionally scoped to a single faculty member.
func (r *AssignmentRepository) List(ctx context.Context, facultyID string) ([]models.Assignment, error) {
	query := `SELECT id, faculty_id, faculty_name, criteria_id, sub_criteria_id, assigned_by, assigned_date FROM assignments`
	var args []interface{}
	if facultyID != "" {
		query += " WHERE faculty_id = ?"
		args = append(args, facultyID)
	}
	query += " ORDER BY assigned_date DESC"

	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// FindByID returns an assignment by identifier.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	const query = `SELECT id, faculty_id, faculty_name, criteria_id, sub_criteria_id, assigned_by, assigned_date FROM assignments WHERE id = ? LIMIT 1`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find assignment by id: %w", err)
	}
	return &assignment, nil
}

// Create inserts a new assignment. The unique index on
// (faculty_id, sub_criteria_id) rejects duplicate assignments at the
// storage level; callers translate the driver error.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.AssignedDate.IsZero() {
		assignment.AssignedDate = time.Now().UTC()
	}
	const query = `INSERT INTO assignments (id, faculty_id, faculty_name, criteria_id, sub_criteria_id, assigned_by, assigned_date)
		VALUES (:id, :faculty_id, :faculty_name, :criteria_id, :sub_criteria_id, :assigned_by, :assigned_date)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Delete removes the assignment row.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM assignments WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete assignment rows: %w", err)
	}
	return affected, nil
}
