package models

// RoleType defines the user role type
type RoleType string

const (
	RoleProductOwner RoleType = "product_owner"
	RoleCollegeAdmin RoleType = "college_admin"
	RoleFaculty      RoleType = "faculty"
	RoleStudent      RoleType = "student"
)

// IsValid reports whether the role is one of the four known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleProductOwner, RoleCollegeAdmin, RoleFaculty, RoleStudent:
		return true
	}
	return false
}

// Designation defines the faculty designation
type Designation string

const (
	DesignationAssistantProfessor Designation = "assistant_professor"
	DesignationProfessor          Designation = "professor"
	DesignationHOD                Designation = "hod"
	DesignationDean               Designation = "dean"
)

// FacultyStatus defines the faculty employment status
type FacultyStatus string

const (
	FacultyStatusActive   FacultyStatus = "active"
	FacultyStatusInactive FacultyStatus = "inactive"
)

// QuestionType defines the question bank item type
type QuestionType string

const (
	QuestionTypeMCQ       QuestionType = "mcq"
	QuestionTypeShortNote QuestionType = "short_note"
	QuestionTypeEssay     QuestionType = "essay"
)

// Difficulty defines the question difficulty level
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)
