package services

import (
	"errors"
	"testing"

	"github.com/medprep/campus/internal/app/auth"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestValidateMCQ(t *testing.T) {
	a, b, c, d := strPtr("opt a"), strPtr("opt b"), strPtr("opt c"), strPtr("opt d")

	tests := []struct {
		name          string
		questionType  models.QuestionType
		optionD       *string
		correctAnswer *string
		wantErr       bool
	}{
		{"valid mcq", models.QuestionTypeMCQ, d, strPtr("B"), false},
		{"missing option", models.QuestionTypeMCQ, nil, strPtr("A"), true},
		{"missing answer", models.QuestionTypeMCQ, d, nil, true},
		{"answer out of range", models.QuestionTypeMCQ, d, strPtr("E"), true},
		{"lowercase answer rejected", models.QuestionTypeMCQ, d, strPtr("a"), true},
		{"essay skips option checks", models.QuestionTypeEssay, nil, nil, false},
		{"short note skips option checks", models.QuestionTypeShortNote, nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMCQ(tt.questionType, a, b, c, tt.optionD, tt.correctAnswer)
			if tt.wantErr && err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr {
				var customErr *apperrors.CustomError
				if !errors.As(err, &customErr) || !errors.Is(customErr.Err, apperrors.ErrValidationFailed) {
					t.Fatalf("expected a validation error, got %v", err)
				}
			}
		})
	}
}

func TestCanWriteQuestions(t *testing.T) {
	ownerScope := auth.TenantScope{Role: models.RoleProductOwner, All: true}
	adminScope := auth.TenantScope{Role: models.RoleCollegeAdmin, CollegeID: 1}
	facultyScope := auth.TenantScope{Role: models.RoleFaculty, CollegeID: 1}
	studentScope := auth.TenantScope{Role: models.RoleStudent, CollegeID: 1}

	tests := []struct {
		name      string
		scope     auth.TenantScope
		collegeID int64
		want      bool
	}{
		{"owner writes anywhere", ownerScope, 7, true},
		{"admin writes own college", adminScope, 1, true},
		{"admin denied elsewhere", adminScope, 2, false},
		{"faculty writes own college", facultyScope, 1, true},
		{"faculty denied elsewhere", facultyScope, 2, false},
		{"student never writes", studentScope, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canWriteQuestions(tt.scope, tt.collegeID); got != tt.want {
				t.Fatalf("canWriteQuestions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequireQuestionWrite(t *testing.T) {
	service := &QuestionService{}
	creatorID := int64(10)
	question := &models.Question{ID: 1, CollegeID: 1, CreatedBy: &creatorID}

	adminScope := auth.TenantScope{Role: models.RoleCollegeAdmin, CollegeID: 1}
	if err := service.requireQuestionWrite(adminScope, 99, question); err != nil {
		t.Fatalf("admin should edit any question in their college: %v", err)
	}

	facultyScope := auth.TenantScope{Role: models.RoleFaculty, CollegeID: 1}
	if err := service.requireQuestionWrite(facultyScope, creatorID, question); err != nil {
		t.Fatalf("faculty should edit their own question: %v", err)
	}
	if err := service.requireQuestionWrite(facultyScope, 99, question); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("faculty must not edit someone else's question, got %v", err)
	}

	otherCollegeFaculty := auth.TenantScope{Role: models.RoleFaculty, CollegeID: 2}
	if err := service.requireQuestionWrite(otherCollegeFaculty, creatorID, question); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("faculty from another college must be denied, got %v", err)
	}
}
