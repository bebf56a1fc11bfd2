package services

import (
	"context"
	"errors"
	"testing"

	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/pkg/apperrors"
)

type fakeSubjectCatalog struct {
	subjects map[int64]*models.Subject
}

func (f *fakeSubjectCatalog) GetByIDs(_ context.Context, ids []int64) ([]*models.Subject, error) {
	found := make([]*models.Subject, 0, len(ids))
	for _, id := range ids {
		if subject, ok := f.subjects[id]; ok {
			found = append(found, subject)
		}
	}
	return found, nil
}

func TestValidateSubjectsInCollege(t *testing.T) {
	service := &FacultyService{subjectRepo: &fakeSubjectCatalog{
		subjects: map[int64]*models.Subject{
			1: {ID: 1, CollegeID: 1, Name: "Anatomy"},
			2: {ID: 2, CollegeID: 1, Name: "Physiology"},
			7: {ID: 7, CollegeID: 2, Name: "Anatomy"},
		},
	}}

	tests := []struct {
		name       string
		subjectIDs []int64
		collegeID  int64
		wantErr    error
	}{
		{"no subjects", nil, 1, nil},
		{"subjects in college", []int64{1, 2}, 1, nil},
		{"unknown subject", []int64{1, 99}, 1, apperrors.ErrSubjectNotFound},
		{"subject of another college", []int64{1, 7}, 1, apperrors.ErrCrossCollegeReference},
		{"all subjects foreign", []int64{7}, 1, apperrors.ErrCrossCollegeReference},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := service.validateSubjectsInCollege(context.Background(), tc.subjectIDs, tc.collegeID)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
