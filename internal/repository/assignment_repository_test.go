package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqarhub/aqar-hub-api/internal/models"
)

func assignmentRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "faculty_id", "faculty_name", "criteria_id", "sub_criteria_id", "assigned_by", "assigned_date"}).
		AddRow("a1", "u1", "Asha", "c1", "c1.1.1", "Admin User", now)
}

func TestListAssignmentsAll(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery("SELECT .* FROM assignments ORDER BY assigned_date DESC").
		WillReturnRows(assignmentRows(time.Now()))

	assignments, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAssignmentsScopedToFaculty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery("SELECT .* FROM assignments WHERE faculty_id = \\?").
		WithArgs("u1").
		WillReturnRows(assignmentRows(time.Now()))

	assignments, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
	assert.Equal(t, "u1", assignments[0].FacultyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignment(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO assignments").WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.Assignment{FacultyID: "u1", FacultyName: "Asha", CriteriaID: "c1", SubCriteriaID: "c1.1.1", AssignedBy: "Admin User"}
	err := repo.Create(context.Background(), assignment)
	require.NoError(t, err)
	assert.NotEmpty(t, assignment.ID)
	assert.False(t, assignment.AssignedDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAssignmentReportsAffected(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("DELETE FROM assignments").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
