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

// StudentStore is the slice of student persistence the registry needs
type StudentStore interface {
	CreateWithUser(ctx context.Context, users repositories.UserWriter, user *models.User, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context, filter repositories.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error)
	RollNoExists(ctx context.Context, rollNo string, excludeID int64) (bool, error)
	UpdateWithUser(ctx context.Context, users repositories.UserWriter, studentID, userID int64, studentFields, userFields map[string]interface{}) error
	DeleteWithUser(ctx context.Context, studentID, userID int64) error
}

// StudentAccountStore combines the user writes student persistence composes
// with the uniqueness probe used on email changes.
type StudentAccountStore interface {
	repositories.UserWriter
	EmailExists(ctx context.Context, email string) (bool, error)
}

// StudentService handles the student registry
type StudentService struct {
	studentRepo StudentStore
	userRepo    StudentAccountStore
	batchRepo   BatchReader
	collegeRepo CollegeReader
	logger      zerolog.Logger
}

// NewStudentService creates a new student service
func NewStudentService(
	studentRepo StudentStore,
	userRepo StudentAccountStore,
	batchRepo BatchReader,
	collegeRepo CollegeReader,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		batchRepo:   batchRepo,
		collegeRepo: collegeRepo,
		logger:      logger,
	}
}

// Register enrolls a single student: user account plus profile in one
// transaction. The batch, when given, must belong to the same college.
func (s *StudentService) Register(ctx context.Context, scope auth.TenantScope, req *dto.RegisterStudentRequest) (*dto.StudentResponse, error) {
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(req.CollegeID); err != nil {
		return nil, err
	}

	if req.BatchID != nil {
		batch, err := s.batchRepo.GetByID(ctx, *req.BatchID)
		if err != nil {
			return nil, err
		}
		if batch.CollegeID != req.CollegeID {
			return nil, apperrors.ErrCrossCollegeReference
		}
	}

	passwordHash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  passwordHash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}

	student := &models.Student{
		CollegeID:            req.CollegeID,
		BatchID:              req.BatchID,
		RollNo:               strings.TrimSpace(req.RollNo),
		PhoneNumber:          req.PhoneNumber,
		Address:              req.Address,
		EmergencyContact:     req.EmergencyContact,
		EmergencyContactName: req.EmergencyContactName,
		IsActive:             true,
	}

	if req.DateOfBirth != nil {
		parsed, err := helpers.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date of birth: " + *req.DateOfBirth)
		}
		student.DateOfBirth = parsed
	}
	if req.AdmissionDate != nil {
		parsed, err := helpers.ParseDate(*req.AdmissionDate)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid admission date: " + *req.AdmissionDate)
		}
		student.AdmissionDate = parsed
	}

	if err := s.studentRepo.CreateWithUser(ctx, s.userRepo, user, student); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", student.ID).
		Int64("collegeID", student.CollegeID).
		Str("rollNo", student.RollNo).
		Msg("Student registered")

	resp := dto.FromStudent(student)
	return &resp, nil
}

// GetByID returns one student, scope permitting
func (s *StudentService) GetByID(ctx context.Context, scope auth.TenantScope, id int64) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRead(student.CollegeID); err != nil {
		return nil, err
	}
	resp := dto.FromStudent(student)
	return &resp, nil
}

// List returns students visible to the caller, narrowed by the optional
// batch and search filters. The caller's scope caps the college filter.
func (s *StudentService) List(ctx context.Context, scope auth.TenantScope, collegeID, batchID int64, search string, page, size int) (*dto.StudentListResponse, error) {
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
	students, total, err := s.studentRepo.GetAll(ctx, repositories.StudentFilter{
		CollegeID: collegeID,
		BatchID:   batchID,
		Search:    search,
	}, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.FromStudent(student))
	}
	return &dto.StudentListResponse{
		Students:   items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update applies a sparse update to a student and its user account in one
// transaction. Roll number changes are checked against the global registry
// only when the value actually differs.
func (s *StudentService) Update(ctx context.Context, scope auth.TenantScope, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(student.CollegeID); err != nil {
		return nil, err
	}

	studentFields := map[string]interface{}{}
	userFields := map[string]interface{}{}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if student.User == nil || student.User.Email != email {
			taken, err := s.userRepo.EmailExists(ctx, email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.ErrEmailAlreadyExists
			}
			userFields["email"] = email
		}
	}
	if req.FirstName != nil {
		userFields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		userFields["last_name"] = *req.LastName
	}
	if req.IsActive != nil {
		userFields["is_active"] = *req.IsActive
		studentFields["is_active"] = *req.IsActive
	}

	if req.BatchID != nil {
		batch, err := s.batchRepo.GetByID(ctx, *req.BatchID)
		if err != nil {
			return nil, err
		}
		if batch.CollegeID != student.CollegeID {
			return nil, apperrors.ErrCrossCollegeReference
		}
		studentFields["batch_id"] = *req.BatchID
	}
	if req.RollNo != nil {
		rollNo := strings.TrimSpace(*req.RollNo)
		if rollNo != student.RollNo {
			taken, err := s.studentRepo.RollNoExists(ctx, rollNo, student.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.ErrRollNoAlreadyExists
			}
			studentFields["roll_no"] = rollNo
		}
	}
	if req.PhoneNumber != nil {
		studentFields["phone_number"] = *req.PhoneNumber
	}
	if req.Address != nil {
		studentFields["address"] = *req.Address
	}
	if req.EmergencyContact != nil {
		studentFields["emergency_contact"] = *req.EmergencyContact
	}
	if req.EmergencyContactName != nil {
		studentFields["emergency_contact_name"] = *req.EmergencyContactName
	}
	if req.DateOfBirth != nil {
		parsed, err := helpers.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date of birth: " + *req.DateOfBirth)
		}
		studentFields["date_of_birth"] = parsed
	}
	if req.AdmissionDate != nil {
		parsed, err := helpers.ParseDate(*req.AdmissionDate)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid admission date: " + *req.AdmissionDate)
		}
		studentFields["admission_date"] = parsed
	}

	if err := s.studentRepo.UpdateWithUser(ctx, s.userRepo, student.ID, student.UserID, studentFields, userFields); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, scope, id)
}

// Delete removes a student profile together with its user account
func (s *StudentService) Delete(ctx context.Context, scope auth.TenantScope, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := scope.RequireWrite(student.CollegeID); err != nil {
		return err
	}

	if err := s.studentRepo.DeleteWithUser(ctx, student.ID, student.UserID); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}
