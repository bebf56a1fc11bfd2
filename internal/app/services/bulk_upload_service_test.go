package services

import (
	"context"
	"strings"
	"testing"

	"github.com/medprep/campus/internal/app/auth"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

type fakeStudentWriter struct {
	usernames map[string]bool
	rollNos   map[string]bool
	created   []*models.Student
}

func newFakeStudentWriter() *fakeStudentWriter {
	return &fakeStudentWriter{
		usernames: make(map[string]bool),
		rollNos:   make(map[string]bool),
	}
}

func (f *fakeStudentWriter) CreateStudent(_ context.Context, user *models.User, student *models.Student) error {
	if f.usernames[user.Username] {
		return apperrors.ErrUsernameAlreadyExists
	}
	if f.rollNos[student.RollNo] {
		return apperrors.ErrRollNoAlreadyExists
	}
	f.usernames[user.Username] = true
	f.rollNos[student.RollNo] = true
	student.ID = int64(len(f.created) + 1)
	student.UserID = student.ID
	student.User = user
	f.created = append(f.created, student)
	return nil
}

type fakeBatchReader struct {
	batches map[int64]*models.Batch
}

func (f *fakeBatchReader) GetByID(_ context.Context, id int64) (*models.Batch, error) {
	batch, ok := f.batches[id]
	if !ok {
		return nil, apperrors.ErrBatchNotFound
	}
	return batch, nil
}

type fakeCollegeReader struct {
	colleges map[int64]*models.College
}

func (f *fakeCollegeReader) GetByID(_ context.Context, id int64) (*models.College, error) {
	college, ok := f.colleges[id]
	if !ok {
		return nil, apperrors.ErrCollegeNotFound
	}
	return college, nil
}

func newTestBulkService(writer *fakeStudentWriter) *BulkUploadService {
	return NewBulkUploadService(
		writer,
		&fakeBatchReader{batches: map[int64]*models.Batch{
			5: {ID: 5, CollegeID: 1, Name: "2026 Batch"},
			9: {ID: 9, CollegeID: 2, Name: "Other College Batch"},
		}},
		&fakeCollegeReader{colleges: map[int64]*models.College{
			1: {ID: 1, Name: "Test Medical College", Code: "TMC"},
		}},
		zerolog.Nop(),
	)
}

func adminScope(collegeID int64) auth.TenantScope {
	return auth.TenantScope{Role: models.RoleCollegeAdmin, CollegeID: collegeID}
}

const headerRow = "username,email,first_name,last_name,password,roll_no,phone_number,date_of_birth,address,emergency_contact,emergency_contact_name,admission_date,batch_id\n"

func TestUploadCreatesStudents(t *testing.T) {
	writer := newFakeStudentWriter()
	svc := newTestBulkService(writer)

	file := headerRow +
		"alice,alice@example.com,Alice,Kumar,Password1,RN001,9876543210,2001-04-15,,,,2026-08-01,5\n" +
		"bob,bob@example.com,Bob,Singh,Password1,RN002,,,,,,,\n"

	result, err := svc.Upload(context.Background(), adminScope(1), 1, strings.NewReader(file))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if result.TotalRows != 2 || result.SuccessCount != 2 || result.FailureCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(writer.created) != 2 {
		t.Fatalf("expected 2 students created, got %d", len(writer.created))
	}

	first := writer.created[0]
	if first.RollNo != "RN001" {
		t.Errorf("expected roll RN001, got %s", first.RollNo)
	}
	if first.BatchID == nil || *first.BatchID != 5 {
		t.Error("first student should be enrolled in batch 5")
	}
	if first.DateOfBirth == nil || first.DateOfBirth.Format("2006-01-02") != "2001-04-15" {
		t.Error("date of birth not parsed")
	}
	if first.User.RoleType != models.RoleStudent {
		t.Errorf("expected student role, got %s", first.User.RoleType)
	}
	if first.User.Password == "Password1" {
		t.Error("password must be stored hashed")
	}

	second := writer.created[1]
	if second.BatchID != nil {
		t.Error("second student should have no batch")
	}
}

func TestUploadIsolatesRowFailures(t *testing.T) {
	writer := newFakeStudentWriter()
	svc := newTestBulkService(writer)

	// Row 3 reuses the username from row 2; rows 4 and 5 are fine.
	file := headerRow +
		"alice,alice@example.com,Alice,Kumar,Password1,RN001,,,,,,,\n" +
		"alice,alice2@example.com,Alicia,Kumar,Password1,RN002,,,,,,,\n" +
		"carol,carol@example.com,Carol,Rao,Password1,RN003,,,,,,,\n" +
		",dan@example.com,Dan,Iyer,Password1,RN004,,,,,,,\n"

	result, err := svc.Upload(context.Background(), adminScope(1), 1, strings.NewReader(file))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if result.TotalRows != 4 {
		t.Errorf("expected 4 rows, got %d", result.TotalRows)
	}
	if result.SuccessCount != 2 || result.FailureCount != 2 {
		t.Fatalf("unexpected counts: success=%d failure=%d", result.SuccessCount, result.FailureCount)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Row 3:") {
		t.Errorf("first error should point at row 3, got %q", result.Errors[0])
	}
	if !strings.HasPrefix(result.Errors[1], "Row 5:") {
		t.Errorf("second error should point at row 5, got %q", result.Errors[1])
	}
	if !strings.Contains(result.Errors[1], "username is required") {
		t.Errorf("row 5 error should name the missing field, got %q", result.Errors[1])
	}
}

func TestUploadRejectsCrossCollegeBatch(t *testing.T) {
	writer := newFakeStudentWriter()
	svc := newTestBulkService(writer)

	file := headerRow +
		"alice,alice@example.com,Alice,Kumar,Password1,RN001,,,,,,,9\n"

	result, err := svc.Upload(context.Background(), adminScope(1), 1, strings.NewReader(file))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if result.SuccessCount != 0 || result.FailureCount != 1 {
		t.Fatalf("cross-college batch row must fail: %+v", result)
	}
	if len(writer.created) != 0 {
		t.Error("no student should be persisted")
	}
}

func TestUploadRejectsMalformedFields(t *testing.T) {
	writer := newFakeStudentWriter()
	svc := newTestBulkService(writer)

	// Row 2 has a non-numeric phone, row 3 a roll number with illegal
	// characters, row 4 a malformed email; row 5 is fine.
	file := headerRow +
		"alice,alice@example.com,Alice,Kumar,Password1,RN001,not-a-phone,,,,,,\n" +
		"bob,bob@example.com,Bob,Singh,Password1,!!bad!!,,,,,,,\n" +
		"carol,not-an-email,Carol,Rao,Password1,RN003,,,,,,,\n" +
		"dan,dan@example.com,Dan,Iyer,Password1,RN004,+919876543210,,,,,,\n"

	result, err := svc.Upload(context.Background(), adminScope(1), 1, strings.NewReader(file))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if result.SuccessCount != 1 || result.FailureCount != 3 {
		t.Fatalf("unexpected counts: success=%d failure=%d errors=%v", result.SuccessCount, result.FailureCount, result.Errors)
	}
	if !strings.Contains(result.Errors[0], "invalid phone_number") {
		t.Errorf("row 2 error should flag the phone number, got %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "invalid roll_no") {
		t.Errorf("row 3 error should flag the roll number, got %q", result.Errors[1])
	}
	if !strings.Contains(result.Errors[2], "invalid email") {
		t.Errorf("row 4 error should flag the email, got %q", result.Errors[2])
	}
	if len(writer.created) != 1 || writer.created[0].RollNo != "RN004" {
		t.Fatal("only the well-formed row should be persisted")
	}
}

func TestUploadRejectsBadHeader(t *testing.T) {
	svc := newTestBulkService(newFakeStudentWriter())

	file := "name,email\nalice,alice@example.com\n"
	if _, err := svc.Upload(context.Background(), adminScope(1), 1, strings.NewReader(file)); err == nil {
		t.Fatal("upload with a wrong header must fail outright")
	}
}

func TestUploadDeniedOutsideScope(t *testing.T) {
	svc := newTestBulkService(newFakeStudentWriter())

	// Admin of college 2 cannot import into college 1.
	_, err := svc.Upload(context.Background(), adminScope(2), 1, strings.NewReader(headerRow))
	if err == nil {
		t.Fatal("cross-tenant upload must be denied")
	}
}

func TestCSVTemplate(t *testing.T) {
	template := CSVTemplate()
	lines := strings.Split(strings.TrimSpace(template), "\n")
	if len(lines) != 2 {
		t.Fatalf("template should be header plus one example row, got %d lines", len(lines))
	}
	if lines[0] != strings.TrimSuffix(headerRow, "\n") {
		t.Errorf("unexpected template header: %q", lines[0])
	}
}
