package dto

import "github.com/medprep/campus/internal/app/models"

// CreateQuestionRequest represents a request to add a question bank item.
// MCQ items must carry all four options and a correct answer.
type CreateQuestionRequest struct {
	CollegeID     int64               `json:"collegeId" binding:"required,min=1"`
	SubjectID     int64               `json:"subjectId" binding:"required,min=1"`
	ModuleID      *int64              `json:"moduleId,omitempty" binding:"omitempty,min=1"`
	QuestionText  string              `json:"questionText" binding:"required"`
	QuestionType  models.QuestionType `json:"questionType" binding:"required,oneof=mcq short_note essay"`
	Difficulty    models.Difficulty   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	OptionA       *string             `json:"optionA,omitempty"`
	OptionB       *string             `json:"optionB,omitempty"`
	OptionC       *string             `json:"optionC,omitempty"`
	OptionD       *string             `json:"optionD,omitempty"`
	CorrectAnswer *string             `json:"correctAnswer,omitempty" binding:"omitempty,oneof=A B C D"`
	Explanation   *string             `json:"explanation,omitempty"`
	VideoURL      *string             `json:"videoUrl,omitempty" binding:"omitempty,url"`
	ImageURL      *string             `json:"imageUrl,omitempty" binding:"omitempty,url"`
}

// UpdateQuestionRequest represents a question update
type UpdateQuestionRequest struct {
	ModuleID      *int64              `json:"moduleId,omitempty" binding:"omitempty,min=1"`
	QuestionText  string              `json:"questionText" binding:"required"`
	QuestionType  models.QuestionType `json:"questionType" binding:"required,oneof=mcq short_note essay"`
	Difficulty    models.Difficulty   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	OptionA       *string             `json:"optionA,omitempty"`
	OptionB       *string             `json:"optionB,omitempty"`
	OptionC       *string             `json:"optionC,omitempty"`
	OptionD       *string             `json:"optionD,omitempty"`
	CorrectAnswer *string             `json:"correctAnswer,omitempty" binding:"omitempty,oneof=A B C D"`
	Explanation   *string             `json:"explanation,omitempty"`
	VideoURL      *string             `json:"videoUrl,omitempty" binding:"omitempty,url"`
	ImageURL      *string             `json:"imageUrl,omitempty" binding:"omitempty,url"`
	IsActive      *bool               `json:"isActive,omitempty"`
}

// QuestionResponse represents a question bank item
type QuestionResponse struct {
	ID            int64   `json:"id"`
	CollegeID     int64   `json:"collegeId"`
	SubjectID     int64   `json:"subjectId"`
	ModuleID      *int64  `json:"moduleId,omitempty"`
	QuestionText  string  `json:"questionText"`
	QuestionType  string  `json:"questionType"`
	Difficulty    string  `json:"difficulty"`
	OptionA       *string `json:"optionA,omitempty"`
	OptionB       *string `json:"optionB,omitempty"`
	OptionC       *string `json:"optionC,omitempty"`
	OptionD       *string `json:"optionD,omitempty"`
	CorrectAnswer *string `json:"correctAnswer,omitempty"`
	Explanation   *string `json:"explanation,omitempty"`
	VideoURL      *string `json:"videoUrl,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	CreatedBy     *int64  `json:"createdBy,omitempty"`
	IsActive      bool    `json:"isActive"`
}

// QuestionListResponse represents a paginated, filtered list of questions
type QuestionListResponse struct {
	Questions  []QuestionResponse `json:"questions"`
	Pagination PaginationInfo     `json:"pagination"`
}

// QuestionFilterRequest represents question list filters bound from query
// parameters
type QuestionFilterRequest struct {
	SubjectID  *int64  `form:"subjectId" binding:"omitempty,min=1"`
	ModuleID   *int64  `form:"moduleId" binding:"omitempty,min=1"`
	Difficulty *string `form:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Type       *string `form:"type" binding:"omitempty,oneof=mcq short_note essay"`
}

// FromQuestion converts a models.Question to a QuestionResponse
func FromQuestion(q *models.Question) QuestionResponse {
	if q == nil {
		return QuestionResponse{}
	}
	return QuestionResponse{
		ID:            q.ID,
		CollegeID:     q.CollegeID,
		SubjectID:     q.SubjectID,
		ModuleID:      q.ModuleID,
		QuestionText:  q.QuestionText,
		QuestionType:  string(q.QuestionType),
		Difficulty:    string(q.Difficulty),
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		VideoURL:      q.VideoURL,
		ImageURL:      q.ImageURL,
		CreatedBy:     q.CreatedBy,
		IsActive:      q.IsActive,
	}
}
