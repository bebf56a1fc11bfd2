package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/medprep/campus/internal/app/auth"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/pkg/apperrors"
	pkgauth "github.com/medprep/campus/internal/pkg/auth"
	"github.com/medprep/campus/internal/pkg/helpers"
	"github.com/medprep/campus/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// csvHeader is the expected column order of a student import file
var csvHeader = []string{
	"username", "email", "first_name", "last_name", "password", "roll_no",
	"phone_number", "date_of_birth", "address", "emergency_contact",
	"emergency_contact_name", "admission_date", "batch_id",
}

// StudentWriter persists one student together with their user account
// atomically.
type StudentWriter interface {
	CreateStudent(ctx context.Context, user *models.User, student *models.Student) error
}

// BatchReader resolves batches for import validation
type BatchReader interface {
	GetByID(ctx context.Context, id int64) (*models.Batch, error)
}

// CollegeReader resolves colleges for import validation
type CollegeReader interface {
	GetByID(ctx context.Context, id int64) (*models.College, error)
}

// RepoStudentWriter adapts the student and user repositories to StudentWriter
type RepoStudentWriter struct {
	Students *repositories.StudentRepository
	Users    *repositories.UserRepository
}

// CreateStudent persists the account and profile in one transaction
func (w *RepoStudentWriter) CreateStudent(ctx context.Context, user *models.User, student *models.Student) error {
	return w.Students.CreateWithUser(ctx, w.Users, user, student)
}

// BulkUploadService imports students from CSV files. Each data row is
// processed in its own transaction: a bad row is reported and skipped, the
// rest of the file still goes through.
type BulkUploadService struct {
	writer   StudentWriter
	batches  BatchReader
	colleges CollegeReader
	logger   zerolog.Logger
}

// NewBulkUploadService creates a new bulk upload service
func NewBulkUploadService(writer StudentWriter, batches BatchReader, colleges CollegeReader, logger zerolog.Logger) *BulkUploadService {
	return &BulkUploadService{
		writer:   writer,
		batches:  batches,
		colleges: colleges,
		logger:   logger,
	}
}

// CSVTemplate returns the import template: the header row plus one example
// row.
func CSVTemplate() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(csvHeader)
	_ = w.Write([]string{
		"jdoe", "jdoe@example.com", "Jane", "Doe", "Secret123!", "NEET/2026/001",
		"9876543210", "2001-04-15", "12 College Road", "9876500000", "John Doe",
		"2026-08-01", "",
	})
	w.Flush()
	return sb.String()
}

// Upload imports students from r into the given college. Row numbers in the
// returned errors count the header as row 1, so the first data row is row 2.
func (s *BulkUploadService) Upload(ctx context.Context, scope auth.TenantScope, collegeID int64, r io.Reader) (*dto.BulkUploadResult, error) {
	if _, err := s.colleges.GetByID(ctx, collegeID); err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(collegeID); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewValidationError("file is empty or not valid CSV")
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	result := &dto.BulkUploadResult{
		Created: make([]dto.StudentResponse, 0),
		Errors:  make([]string, 0),
	}

	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.TotalRows++
			result.FailureCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: malformed CSV row", rowNum))
			continue
		}

		result.TotalRows++
		student, err := s.importRow(ctx, collegeID, record)
		if err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
			continue
		}

		result.SuccessCount++
		result.Created = append(result.Created, dto.FromStudent(student))
	}

	s.logger.Info().
		Int64("collegeID", collegeID).
		Int("total", result.TotalRows).
		Int("created", result.SuccessCount).
		Int("failed", result.FailureCount).
		Msg("Bulk student upload finished")

	return result, nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return apperrors.NewValidationError(fmt.Sprintf("expected %d columns, got %d", len(csvHeader), len(header)))
	}
	for i, name := range csvHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != name {
			return apperrors.NewValidationError(fmt.Sprintf("column %d must be %q", i+1, name))
		}
	}
	return nil
}

func (s *BulkUploadService) importRow(ctx context.Context, collegeID int64, record []string) (*models.Student, error) {
	get := func(i int) string { return strings.TrimSpace(record[i]) }
	optional := func(i int) *string {
		v := get(i)
		if v == "" {
			return nil
		}
		return &v
	}

	username := get(0)
	email := strings.ToLower(get(1))
	firstName := get(2)
	lastName := get(3)
	password := get(4)
	rollNo := get(5)

	switch {
	case username == "":
		return nil, apperrors.NewValidationError("username is required")
	case email == "":
		return nil, apperrors.NewValidationError("email is required")
	case !validation.CompiledPatterns.Email.MatchString(email):
		return nil, apperrors.NewValidationError("invalid email: " + email)
	case !validation.NewStringValidation(firstName).WithMaxLength(validation.NameMaxLength).Validate():
		return nil, apperrors.NewValidationError("first_name must be 1-100 characters")
	case !validation.NewStringValidation(lastName).WithMaxLength(validation.NameMaxLength).Validate():
		return nil, apperrors.NewValidationError("last_name must be 1-100 characters")
	case len(password) < validation.PasswordMinLength:
		return nil, apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters", validation.PasswordMinLength))
	case rollNo == "":
		return nil, apperrors.NewValidationError("roll_no is required")
	case !validation.CompiledPatterns.RollNo.MatchString(rollNo):
		return nil, apperrors.NewValidationError("invalid roll_no: " + rollNo)
	}

	for _, phone := range []struct {
		column string
		value  string
	}{
		{"phone_number", get(6)},
		{"emergency_contact", get(9)},
	} {
		if phone.value != "" && !validation.CompiledPatterns.Phone.MatchString(phone.value) {
			return nil, apperrors.NewValidationError("invalid " + phone.column + ": " + phone.value)
		}
	}

	student := &models.Student{
		CollegeID:            collegeID,
		RollNo:               rollNo,
		PhoneNumber:          optional(6),
		Address:              optional(8),
		EmergencyContact:     optional(9),
		EmergencyContactName: optional(10),
		IsActive:             true,
	}

	if dob := get(7); dob != "" {
		parsed, err := helpers.ParseDate(dob)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date_of_birth: " + dob)
		}
		student.DateOfBirth = parsed
	}
	if admission := get(11); admission != "" {
		parsed, err := helpers.ParseDate(admission)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid admission_date: " + admission)
		}
		student.AdmissionDate = parsed
	}

	if batchField := get(12); batchField != "" {
		batchID, err := strconv.ParseInt(batchField, 10, 64)
		if err != nil || batchID <= 0 {
			return nil, apperrors.NewValidationError("invalid batch_id: " + batchField)
		}
		batch, err := s.batches.GetByID(ctx, batchID)
		if err != nil {
			return nil, err
		}
		if batch.CollegeID != collegeID {
			return nil, apperrors.ErrCrossCollegeReference
		}
		student.BatchID = &batchID
	}

	passwordHash, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		FirstName: firstName,
		LastName:  lastName,
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}

	if err := s.writer.CreateStudent(ctx, user, student); err != nil {
		return nil, err
	}
	student.User = user
	return student, nil
}
