package services

import (
	"context"
	"errors"
	"testing"

	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

type fakeStudentStore struct {
	students map[int64]*models.Student
	rollNos  map[string]int64

	lastStudentFields map[string]interface{}
	lastUserFields    map[string]interface{}
	updates           int
}

func (f *fakeStudentStore) CreateWithUser(_ context.Context, _ repositories.UserWriter, user *models.User, student *models.Student) error {
	student.ID = int64(len(f.students) + 1)
	student.UserID = student.ID + 100
	student.User = user
	f.students[student.ID] = student
	f.rollNos[student.RollNo] = student.ID
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (f *fakeStudentStore) GetAll(_ context.Context, filter repositories.StudentFilter, _ uint64, _ int) ([]*models.Student, int64, error) {
	matched := make([]*models.Student, 0)
	for _, student := range f.students {
		if filter.CollegeID > 0 && student.CollegeID != filter.CollegeID {
			continue
		}
		matched = append(matched, student)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeStudentStore) RollNoExists(_ context.Context, rollNo string, excludeID int64) (bool, error) {
	owner, ok := f.rollNos[rollNo]
	return ok && owner != excludeID, nil
}

func (f *fakeStudentStore) UpdateWithUser(_ context.Context, _ repositories.UserWriter, studentID, _ int64, studentFields, userFields map[string]interface{}) error {
	if _, ok := f.students[studentID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.updates++
	f.lastStudentFields = studentFields
	f.lastUserFields = userFields
	return nil
}

func (f *fakeStudentStore) DeleteWithUser(_ context.Context, studentID, _ int64) error {
	if _, ok := f.students[studentID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, studentID)
	return nil
}

type fakeAccountStore struct {
	emails map[string]bool
}

func (f *fakeAccountStore) CreateUser(_ context.Context, _ repositories.Querier, user *models.User) (int64, error) {
	f.emails[user.Email] = true
	return 1, nil
}

func (f *fakeAccountStore) UpdateUserFields(_ context.Context, _ repositories.Querier, _ int64, _ map[string]interface{}) error {
	return nil
}

func (f *fakeAccountStore) EmailExists(_ context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

func newTestStudentService() (*StudentService, *fakeStudentStore, *fakeAccountStore) {
	store := &fakeStudentStore{
		students: map[int64]*models.Student{
			1: {
				ID:        1,
				UserID:    101,
				CollegeID: 1,
				RollNo:    "RN001",
				User:      &models.User{ID: 101, Email: "alice@example.com"},
			},
			2: {
				ID:        2,
				UserID:    102,
				CollegeID: 1,
				RollNo:    "RN002",
				User:      &models.User{ID: 102, Email: "bob@example.com"},
			},
		},
		rollNos: map[string]int64{"RN001": 1, "RN002": 2},
	}
	accounts := &fakeAccountStore{emails: map[string]bool{
		"alice@example.com": true,
		"bob@example.com":   true,
	}}
	svc := NewStudentService(
		store,
		accounts,
		&fakeBatchReader{batches: map[int64]*models.Batch{}},
		&fakeCollegeReader{colleges: map[int64]*models.College{
			1: {ID: 1, Name: "Test Medical College", Code: "TMC"},
		}},
		zerolog.Nop(),
	)
	return svc, store, accounts
}

func TestUpdateStudentRejectsTakenEmail(t *testing.T) {
	svc, store, _ := newTestStudentService()

	_, err := svc.Update(context.Background(), adminScope(1), 1, &dto.UpdateStudentRequest{
		Email: strPtr("bob@example.com"),
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
	if store.updates != 0 {
		t.Error("a rejected email change must not reach the store")
	}
}

func TestUpdateStudentKeepsOwnEmail(t *testing.T) {
	svc, store, _ := newTestStudentService()

	// Re-submitting the current email is not a change and must not trip
	// the uniqueness check.
	_, err := svc.Update(context.Background(), adminScope(1), 1, &dto.UpdateStudentRequest{
		Email:     strPtr("Alice@Example.com"),
		FirstName: strPtr("Alice"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, ok := store.lastUserFields["email"]; ok {
		t.Error("an unchanged email must not be written")
	}
	if store.lastUserFields["first_name"] != "Alice" {
		t.Error("the name change should still go through")
	}
}

func TestUpdateStudentChangesFreeEmail(t *testing.T) {
	svc, store, _ := newTestStudentService()

	_, err := svc.Update(context.Background(), adminScope(1), 1, &dto.UpdateStudentRequest{
		Email: strPtr("alice.new@example.com"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if store.lastUserFields["email"] != "alice.new@example.com" {
		t.Errorf("free email should be queued for update, got %v", store.lastUserFields)
	}
}

func TestUpdateStudentRejectsTakenRollNo(t *testing.T) {
	svc, store, _ := newTestStudentService()

	_, err := svc.Update(context.Background(), adminScope(1), 1, &dto.UpdateStudentRequest{
		RollNo: strPtr("RN002"),
	})
	if !errors.Is(err, apperrors.ErrRollNoAlreadyExists) {
		t.Fatalf("expected ErrRollNoAlreadyExists, got %v", err)
	}
	if store.updates != 0 {
		t.Error("a rejected roll number change must not reach the store")
	}
}
