package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	appErrors "github.com/aqarhub/aqar-hub-api/pkg/errors"
)

type assignmentRepository interface {
	List(ctx context.Context, facultyID string) ([]models.Assignment, error)
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) (int64, error)
}

type assignmentUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CreateAssignmentRequest assigns a sub-criteria to a faculty member.
type CreateAssignmentRequest struct {
	FacultyID     string `json:"facultyId" validate:"required"`
	CriteriaID    string `json:"criteriaId" validate:"required"`
	SubCriteriaID string `json:"subCriteriaId" validate:"required"`
}

// AssignmentService manages which faculty member is responsible for
// which sub-criteria.
type AssignmentService struct {
	repo      assignmentRepository
	users     assignmentUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(repo assignmentRepository, users assignmentUserRepository, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AssignmentService{repo: repo, users: users, validator: validate, logger: logger}
}

// List returns assignments visible to the actor. Faculty only see their
// own; reviewers and admins see everything.
func (s *AssignmentService) List(ctx context.Context, actor *models.User) ([]models.Assignment, error) {
	facultyID := ""
	if actor.Role == models.RoleFaculty {
		facultyID = actor.ID
	}
	assignments, err := s.repo.List(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return assignments, nil
}

// Create assigns a sub-criteria to a faculty member. The unique index on
// (faculty_id, sub_criteria_id) makes double-assignment a conflict.
func (s *AssignmentService) Create(ctx context.Context, actor *models.User, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	faculty, err := s.users.FindByID(ctx, req.FacultyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty member")
	}
	if faculty.Role != models.RoleFaculty {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignments can only target faculty accounts")
	}

	assignment := &models.Assignment{
		FacultyID:     faculty.ID,
		FacultyName:   faculty.Name,
		CriteriaID:    req.CriteriaID,
		SubCriteriaID: req.SubCriteriaID,
		AssignedBy:    actor.Name,
	}

	if err := s.repo.Create(ctx, assignment); err != nil {
		if isDuplicateEntry(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "sub-criteria is already assigned to this faculty member")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	s.logger.Info("assignment created",
		zap.String("assignment_id", assignment.ID),
		zap.String("faculty_id", assignment.FacultyID),
		zap.String("sub_criteria_id", assignment.SubCriteriaID))

	return assignment, nil
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	return nil
}
