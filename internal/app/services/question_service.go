package services

import (
	"context"

	"github.com/medprep/campus/internal/app/auth"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/pkg/apperrors"
	"github.com/medprep/campus/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// QuestionService handles the question bank
type QuestionService struct {
	questionRepo *repositories.QuestionRepository
	subjectRepo  *repositories.SubjectRepository
	collegeRepo  *repositories.CollegeRepository
	logger       zerolog.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(
	questionRepo *repositories.QuestionRepository,
	subjectRepo *repositories.SubjectRepository,
	collegeRepo *repositories.CollegeRepository,
	logger zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		subjectRepo:  subjectRepo,
		collegeRepo:  collegeRepo,
		logger:       logger,
	}
}

// canWriteQuestions is the one faculty write carve-out: faculty may add
// questions to their own college's bank.
func canWriteQuestions(scope auth.TenantScope, collegeID int64) bool {
	if scope.CanWrite(collegeID) {
		return true
	}
	return scope.Role == models.RoleFaculty && scope.CanRead(collegeID)
}

func validateMCQ(questionType models.QuestionType, optionA, optionB, optionC, optionD, correctAnswer *string) error {
	if questionType != models.QuestionTypeMCQ {
		return nil
	}
	if optionA == nil || optionB == nil || optionC == nil || optionD == nil {
		return apperrors.NewValidationError("multiple choice questions need all four options")
	}
	if correctAnswer == nil {
		return apperrors.NewValidationError("multiple choice questions need a correct answer")
	}
	switch *correctAnswer {
	case "A", "B", "C", "D":
		return nil
	default:
		return apperrors.NewValidationError("correct answer must be A, B, C or D")
	}
}

// validateQuestionRefs checks that the subject belongs to the target college
// and the module, when given, belongs to the subject.
func (s *QuestionService) validateQuestionRefs(ctx context.Context, collegeID, subjectID int64, moduleID *int64) error {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if subject.CollegeID != collegeID {
		return apperrors.ErrCrossCollegeReference
	}
	if moduleID != nil {
		module, err := s.subjectRepo.GetModuleByID(ctx, *moduleID)
		if err != nil {
			return err
		}
		if module.SubjectID != subjectID {
			return apperrors.ErrCrossCollegeReference
		}
	}
	return nil
}

// Create adds a question to a college's bank. Admins write into their own
// college; faculty into their own college as well, stamped as the creator.
func (s *QuestionService) Create(ctx context.Context, scope auth.TenantScope, userID int64, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return nil, err
	}
	if !canWriteQuestions(scope, req.CollegeID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := s.validateQuestionRefs(ctx, req.CollegeID, req.SubjectID, req.ModuleID); err != nil {
		return nil, err
	}
	if err := validateMCQ(req.QuestionType, req.OptionA, req.OptionB, req.OptionC, req.OptionD, req.CorrectAnswer); err != nil {
		return nil, err
	}

	question := &models.Question{
		CollegeID:     req.CollegeID,
		SubjectID:     req.SubjectID,
		ModuleID:      req.ModuleID,
		QuestionText:  req.QuestionText,
		QuestionType:  req.QuestionType,
		Difficulty:    req.Difficulty,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		VideoURL:      req.VideoURL,
		ImageURL:      req.ImageURL,
		CreatedBy:     &userID,
		IsActive:      true,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("questionID", question.ID).
		Int64("subjectID", question.SubjectID).
		Msg("Question created")

	resp := dto.FromQuestion(question)
	return &resp, nil
}

// GetByID returns one question, scope permitting
func (s *QuestionService) GetByID(ctx context.Context, scope auth.TenantScope, id int64) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRead(question.CollegeID); err != nil {
		return nil, err
	}
	resp := dto.FromQuestion(question)
	return &resp, nil
}

// List returns questions visible to the caller with optional filters
func (s *QuestionService) List(ctx context.Context, scope auth.TenantScope, collegeID int64, filter *dto.QuestionFilterRequest, page, size int) (*dto.QuestionListResponse, error) {
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

	repoFilter := repositories.QuestionFilter{CollegeID: collegeID}
	if filter != nil {
		if filter.SubjectID != nil {
			repoFilter.SubjectID = *filter.SubjectID
		}
		if filter.ModuleID != nil {
			repoFilter.ModuleID = *filter.ModuleID
		}
		if filter.Difficulty != nil {
			repoFilter.Difficulty = *filter.Difficulty
		}
		if filter.Type != nil {
			repoFilter.Type = *filter.Type
		}
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	questions, total, err := s.questionRepo.GetAll(ctx, repoFilter, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.QuestionResponse, 0, len(questions))
	for _, question := range questions {
		items = append(items, dto.FromQuestion(question))
	}
	return &dto.QuestionListResponse{
		Questions:  items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update modifies a question. Faculty may only touch questions they created.
func (s *QuestionService) Update(ctx context.Context, scope auth.TenantScope, userID, id int64, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireQuestionWrite(scope, userID, question); err != nil {
		return nil, err
	}
	if err := s.validateQuestionRefs(ctx, question.CollegeID, question.SubjectID, req.ModuleID); err != nil {
		return nil, err
	}
	if err := validateMCQ(req.QuestionType, req.OptionA, req.OptionB, req.OptionC, req.OptionD, req.CorrectAnswer); err != nil {
		return nil, err
	}

	question.ModuleID = req.ModuleID
	question.QuestionText = req.QuestionText
	question.QuestionType = req.QuestionType
	question.Difficulty = req.Difficulty
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectAnswer = req.CorrectAnswer
	question.Explanation = req.Explanation
	question.VideoURL = req.VideoURL
	question.ImageURL = req.ImageURL
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	resp := dto.FromQuestion(question)
	return &resp, nil
}

// Delete removes a question. Faculty may only delete questions they created.
func (s *QuestionService) Delete(ctx context.Context, scope auth.TenantScope, userID, id int64) error {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireQuestionWrite(scope, userID, question); err != nil {
		return err
	}
	return s.questionRepo.Delete(ctx, id)
}

func (s *QuestionService) requireQuestionWrite(scope auth.TenantScope, userID int64, question *models.Question) error {
	if scope.CanWrite(question.CollegeID) {
		return nil
	}
	if scope.Role == models.RoleFaculty && scope.CanRead(question.CollegeID) &&
		question.CreatedBy != nil && *question.CreatedBy == userID {
		return nil
	}
	return apperrors.ErrPermissionDenied
}
