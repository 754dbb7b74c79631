package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	appErrors "github.com/aqarhub/aqar-hub-api/pkg/errors"
)

type mockAssignmentRepo struct {
	assignments []models.Assignment
	listFaculty string
	createErr   error
	deleteRows  int64
}

func (m *mockAssignmentRepo) List(ctx context.Context, facultyID string) ([]models.Assignment, error) {
	m.listFaculty = facultyID
	return m.assignments, nil
}

func (m *mockAssignmentRepo) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	for _, a := range m.assignments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	if m.createErr != nil {
		return m.createErr
	}
	assignment.ID = "a-new"
	m.assignments = append(m.assignments, *assignment)
	return nil
}

func (m *mockAssignmentRepo) Delete(ctx context.Context, id string) (int64, error) {
	return m.deleteRows, nil
}

type mockAssignmentUsers struct {
	users map[string]*models.User
}

func (m *mockAssignmentUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func newTestAssignmentService(repo *mockAssignmentRepo, users *mockAssignmentUsers) *AssignmentService {
	return NewAssignmentService(repo, users, validator.New(), zap.NewNop())
}

func TestAssignmentListScoping(t *testing.T) {
	repo := &mockAssignmentRepo{}
	svc := newTestAssignmentService(repo, &mockAssignmentUsers{})

	_, err := svc.List(context.Background(), faculty())
	require.NoError(t, err)
	assert.Equal(t, "u1", repo.listFaculty)

	_, err = svc.List(context.Background(), admin())
	require.NoError(t, err)
	assert.Empty(t, repo.listFaculty)
}

func TestAssignmentCreate(t *testing.T) {
	repo := &mockAssignmentRepo{}
	users := &mockAssignmentUsers{users: map[string]*models.User{
		"u1": {ID: "u1", Name: "Asha", Role: models.RoleFaculty},
	}}
	svc := newTestAssignmentService(repo, users)

	assignment, err := svc.Create(context.Background(), admin(), CreateAssignmentRequest{
		FacultyID:     "u1",
		CriteriaID:    "c1",
		SubCriteriaID: "c1.1.1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", assignment.FacultyName)
	assert.Equal(t, "Admin User", assignment.AssignedBy)
}

func TestAssignmentCreateDuplicateConflict(t *testing.T) {
	repo := &mockAssignmentRepo{createErr: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}}
	users := &mockAssignmentUsers{users: map[string]*models.User{
		"u1": {ID: "u1", Name: "Asha", Role: models.RoleFaculty},
	}}
	svc := newTestAssignmentService(repo, users)

	_, err := svc.Create(context.Background(), admin(), CreateAssignmentRequest{
		FacultyID:     "u1",
		CriteriaID:    "c1",
		SubCriteriaID: "c1.1.1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAssignmentCreateRejectsNonFacultyTarget(t *testing.T) {
	users := &mockAssignmentUsers{users: map[string]*models.User{
		"r1": {ID: "r1", Name: "Dr. Rao", Role: models.RoleIQAC},
	}}
	svc := newTestAssignmentService(&mockAssignmentRepo{}, users)

	_, err := svc.Create(context.Background(), admin(), CreateAssignmentRequest{
		FacultyID:     "r1",
		CriteriaID:    "c1",
		SubCriteriaID: "c1.1.1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssignmentCreateUnknownFaculty(t *testing.T) {
	svc := newTestAssignmentService(&mockAssignmentRepo{}, &mockAssignmentUsers{})

	_, err := svc.Create(context.Background(), admin(), CreateAssignmentRequest{
		FacultyID:     "ghost",
		CriteriaID:    "c1",
		SubCriteriaID: "c1.1.1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssignmentDeleteNotFound(t *testing.T) {
	svc := newTestAssignmentService(&mockAssignmentRepo{deleteRows: 0}, &mockAssignmentUsers{})

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
