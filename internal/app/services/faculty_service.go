package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/medprep/campus/internal/app/auth"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/pkg/apperrors"
	pkgauth "github.com/medprep/campus/internal/pkg/auth"
	"github.com/medprep/campus/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// SubjectCatalog resolves subjects for assignment validation
type SubjectCatalog interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Subject, error)
}

// FacultyService handles the faculty registry
type FacultyService struct {
	facultyRepo *repositories.FacultyRepository
	userRepo    *repositories.UserRepository
	subjectRepo SubjectCatalog
	collegeRepo *repositories.CollegeRepository
	logger      zerolog.Logger
}

// NewFacultyService creates a new faculty service
func NewFacultyService(
	facultyRepo *repositories.FacultyRepository,
	userRepo *repositories.UserRepository,
	subjectRepo SubjectCatalog,
	collegeRepo *repositories.CollegeRepository,
	logger zerolog.Logger,
) *FacultyService {
	return &FacultyService{
		facultyRepo: facultyRepo,
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		collegeRepo: collegeRepo,
		logger:      logger,
	}
}

// validateSubjectsInCollege rejects subject assignments that cross college
// boundaries.
func (s *FacultyService) validateSubjectsInCollege(ctx context.Context, subjectIDs []int64, collegeID int64) error {
	if len(subjectIDs) == 0 {
		return nil
	}
	subjects, err := s.subjectRepo.GetByIDs(ctx, subjectIDs)
	if err != nil {
		return err
	}
	if len(subjects) != len(subjectIDs) {
		return apperrors.ErrSubjectNotFound
	}
	for _, subject := range subjects {
		if subject.CollegeID != collegeID {
			return apperrors.ErrCrossCollegeReference
		}
	}
	return nil
}

// Register onboards a faculty member: user account, profile and subject
// assignments in one transaction.
func (s *FacultyService) Register(ctx context.Context, scope auth.TenantScope, req *dto.RegisterFacultyRequest) (*dto.FacultyResponse, error) {
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(req.CollegeID); err != nil {
		return nil, err
	}
	if err := s.validateSubjectsInCollege(ctx, req.SubjectIDs, req.CollegeID); err != nil {
		return nil, err
	}

	passwordHash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:    req.Username,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    passwordHash,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		RoleType:    models.RoleFaculty,
		IsActive:    true,
	}

	faculty := &models.Faculty{
		CollegeID:        req.CollegeID,
		Designation:      req.Designation,
		Status:           models.FacultyStatusActive,
		EducationDetails: req.EducationDetails,
		ExperienceYears:  req.ExperienceYears,
		Specialization:   req.Specialization,
	}

	if err := s.facultyRepo.CreateWithUser(ctx, s.userRepo, user, faculty, req.SubjectIDs); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("facultyID", faculty.ID).
		Int64("collegeID", faculty.CollegeID).
		Str("designation", string(faculty.Designation)).
		Msg("Faculty registered")

	return s.GetByID(ctx, scope, faculty.ID)
}

// GetByID returns one faculty member, scope permitting
func (s *FacultyService) GetByID(ctx context.Context, scope auth.TenantScope, id int64) (*dto.FacultyResponse, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRead(faculty.CollegeID); err != nil {
		return nil, err
	}
	resp := dto.FromFaculty(faculty)
	return &resp, nil
}

// List returns faculty visible to the caller with optional filters
func (s *FacultyService) List(ctx context.Context, scope auth.TenantScope, collegeID, subjectID int64, status, designation string, page, size int) (*dto.FacultyListResponse, error) {
	scopeFilter, ok := scope.ListFilter()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}
	if scopeFilter > 0 {
		if collegeID > 0 && collegeID != scopeFilter {
			return nil, apperrors.ErrPermissionDenied
		}
		collegeID = scopeFilter
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	members, total, err := s.facultyRepo.GetAll(ctx, repositories.FacultyFilter{
		CollegeID:   collegeID,
		SubjectID:   subjectID,
		Status:      status,
		Designation: designation,
	}, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FacultyResponse, 0, len(members))
	for _, faculty := range members {
		items = append(items, dto.FromFaculty(faculty))
	}
	return &dto.FacultyListResponse{
		Faculty:    items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update applies a sparse update to a faculty member. Subject assignments
// replace the existing set when provided and must stay inside the college.
func (s *FacultyService) Update(ctx context.Context, scope auth.TenantScope, id int64, req *dto.UpdateFacultyRequest) (*dto.FacultyResponse, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(faculty.CollegeID); err != nil {
		return nil, err
	}

	replaceSubjects := req.SubjectIDs != nil
	if replaceSubjects {
		if err := s.validateSubjectsInCollege(ctx, req.SubjectIDs, faculty.CollegeID); err != nil {
			return nil, err
		}
	}

	facultyFields := map[string]interface{}{}
	userFields := map[string]interface{}{}

	if req.Email != nil {
		userFields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FirstName != nil {
		userFields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		userFields["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		userFields["phone_number"] = *req.PhoneNumber
	}
	if req.Designation != nil {
		facultyFields["designation"] = *req.Designation
	}
	if req.Status != nil {
		facultyFields["status"] = *req.Status
	}
	if req.EducationDetails != nil {
		facultyFields["education_details"] = *req.EducationDetails
	}
	if req.ExperienceYears != nil {
		facultyFields["experience_years"] = *req.ExperienceYears
	}
	if req.Specialization != nil {
		facultyFields["specialization"] = *req.Specialization
	}

	if err := s.facultyRepo.UpdateWithUser(ctx, s.userRepo, faculty.ID, faculty.UserID, facultyFields, userFields, req.SubjectIDs, replaceSubjects); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, scope, id)
}

// Delete removes a faculty member together with its user account
func (s *FacultyService) Delete(ctx context.Context, scope auth.TenantScope, id int64) error {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := scope.RequireWrite(faculty.CollegeID); err != nil {
		return err
	}

	if err := s.facultyRepo.DeleteWithUser(ctx, faculty.ID, faculty.UserID); err != nil {
		return err
	}
	s.logger.Info().Int64("facultyID", id).Msg("Faculty deleted")
	return nil
}
