package dto

import "github.com/medprep/campus/internal/app/models"

// RegisterFacultyRequest represents a request to onboard a faculty member.
// The user account and the faculty profile are created together. Subject
// assignments must belong to the same college.
type RegisterFacultyRequest struct {
	Username         string             `json:"username" binding:"required,min=3,max=150"`
	Email            string             `json:"email" binding:"required,email"`
	Password         string             `json:"password" binding:"required,min=8"`
	FirstName        string             `json:"firstName" binding:"required"`
	LastName         string             `json:"lastName" binding:"required"`
	PhoneNumber      *string            `json:"phoneNumber,omitempty"`
	CollegeID        int64              `json:"collegeId" binding:"required,min=1"`
	Designation      models.Designation `json:"designation" binding:"required,oneof=assistant_professor professor hod dean"`
	EducationDetails *string            `json:"educationDetails,omitempty"`
	ExperienceYears  *int               `json:"experienceYears,omitempty" binding:"omitempty,min=0"`
	Specialization   *string            `json:"specialization,omitempty"`
	SubjectIDs       []int64            `json:"subjectIds,omitempty" binding:"omitempty,dive,min=1"`
}

// UpdateFacultyRequest represents a sparse faculty update. Nil fields are
// left unchanged; SubjectIDs replaces the assignment set when provided.
type UpdateFacultyRequest struct {
	Email            *string               `json:"email,omitempty" binding:"omitempty,email"`
	FirstName        *string               `json:"firstName,omitempty"`
	LastName         *string               `json:"lastName,omitempty"`
	PhoneNumber      *string               `json:"phoneNumber,omitempty"`
	Designation      *models.Designation   `json:"designation,omitempty" binding:"omitempty,oneof=assistant_professor professor hod dean"`
	Status           *models.FacultyStatus `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
	EducationDetails *string               `json:"educationDetails,omitempty"`
	ExperienceYears  *int                  `json:"experienceYears,omitempty" binding:"omitempty,min=0"`
	Specialization   *string               `json:"specialization,omitempty"`
	SubjectIDs       []int64               `json:"subjectIds,omitempty" binding:"omitempty,dive,min=1"`
}

// FacultyResponse represents faculty profile information
type FacultyResponse struct {
	ID               int64             `json:"id"`
	UserID           int64             `json:"userId"`
	Username         string            `json:"username"`
	Email            string            `json:"email"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	PhoneNumber      *string           `json:"phoneNumber,omitempty"`
	CollegeID        int64             `json:"collegeId"`
	Designation      string            `json:"designation"`
	Status           string            `json:"status"`
	EducationDetails *string           `json:"educationDetails,omitempty"`
	ExperienceYears  *int              `json:"experienceYears,omitempty"`
	Specialization   *string           `json:"specialization,omitempty"`
	Subjects         []SubjectResponse `json:"subjects"`
}

// FacultyListResponse represents a paginated list of faculty
type FacultyListResponse struct {
	Faculty    []FacultyResponse `json:"faculty"`
	Pagination PaginationInfo    `json:"pagination"`
}

// FromFaculty converts a models.Faculty (with its User loaded) to a
// FacultyResponse
func FromFaculty(faculty *models.Faculty) FacultyResponse {
	if faculty == nil {
		return FacultyResponse{}
	}
	subjects := make([]SubjectResponse, 0, len(faculty.Subjects))
	for i := range faculty.Subjects {
		subjects = append(subjects, FromSubject(&faculty.Subjects[i]))
	}
	resp := FacultyResponse{
		ID:               faculty.ID,
		UserID:           faculty.UserID,
		CollegeID:        faculty.CollegeID,
		Designation:      string(faculty.Designation),
		Status:           string(faculty.Status),
		EducationDetails: faculty.EducationDetails,
		ExperienceYears:  faculty.ExperienceYears,
		Specialization:   faculty.Specialization,
		Subjects:         subjects,
	}
	if faculty.User != nil {
		resp.Username = faculty.User.Username
		resp.Email = faculty.User.Email
		resp.FirstName = faculty.User.FirstName
		resp.LastName = faculty.User.LastName
		resp.PhoneNumber = faculty.User.PhoneNumber
	}
	return resp
}
