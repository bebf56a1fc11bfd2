package models

import "time"

// Question is one question bank item scoped to college/subject and optionally
// a module. Multiple-choice items carry four options plus a correct-answer
// marker in {A,B,C,D}.
type Question struct {
	ID            int64        `json:"id" db:"id"`
	CollegeID     int64        `json:"collegeId" db:"college_id"`
	SubjectID     int64        `json:"subjectId" db:"subject_id"`
	ModuleID      *int64       `json:"moduleId,omitempty" db:"module_id"`
	QuestionText  string       `json:"questionText" db:"question_text"`
	QuestionType  QuestionType `json:"questionType" db:"question_type"`
	Difficulty    Difficulty   `json:"difficulty" db:"difficulty"`
	OptionA       *string      `json:"optionA,omitempty" db:"option_a"`
	OptionB       *string      `json:"optionB,omitempty" db:"option_b"`
	OptionC       *string      `json:"optionC,omitempty" db:"option_c"`
	OptionD       *string      `json:"optionD,omitempty" db:"option_d"`
	CorrectAnswer *string      `json:"correctAnswer,omitempty" db:"correct_answer"`
	Explanation   *string      `json:"explanation,omitempty" db:"explanation"`
	VideoURL      *string      `json:"videoUrl,omitempty" db:"video_url"`
	ImageURL      *string      `json:"imageUrl,omitempty" db:"image_url"`
	CreatedBy     *int64       `json:"createdBy,omitempty" db:"created_by"`
	IsActive      bool         `json:"isActive" db:"is_active"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`

	Subject *Subject `json:"subject,omitempty"`
	Module  *Module  `json:"module,omitempty"`
}
