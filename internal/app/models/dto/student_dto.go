package dto

import "github.com/medprep/campus/internal/app/models"

// RegisterStudentRequest represents a request to enroll a student. The user
// account and the student profile are created together.
type RegisterStudentRequest struct {
	Username             string  `json:"username" binding:"required,min=3,max=150"`
	Email                string  `json:"email" binding:"required,email"`
	Password             string  `json:"password" binding:"required,min=8"`
	FirstName            string  `json:"firstName" binding:"required"`
	LastName             string  `json:"lastName" binding:"required"`
	CollegeID            int64   `json:"collegeId" binding:"required,min=1"`
	BatchID              *int64  `json:"batchId,omitempty" binding:"omitempty,min=1"`
	RollNo               string  `json:"rollNo" binding:"required,max=50"`
	PhoneNumber          *string `json:"phoneNumber,omitempty"`
	DateOfBirth          *string `json:"dateOfBirth,omitempty"`
	Address              *string `json:"address,omitempty"`
	EmergencyContact     *string `json:"emergencyContact,omitempty"`
	EmergencyContactName *string `json:"emergencyContactName,omitempty"`
	AdmissionDate        *string `json:"admissionDate,omitempty"`
}

// UpdateStudentRequest represents a sparse student update. Nil fields are
// left unchanged.
type UpdateStudentRequest struct {
	Email                *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName            *string `json:"firstName,omitempty"`
	LastName             *string `json:"lastName,omitempty"`
	BatchID              *int64  `json:"batchId,omitempty" binding:"omitempty,min=1"`
	RollNo               *string `json:"rollNo,omitempty" binding:"omitempty,max=50"`
	PhoneNumber          *string `json:"phoneNumber,omitempty"`
	DateOfBirth          *string `json:"dateOfBirth,omitempty"`
	Address              *string `json:"address,omitempty"`
	EmergencyContact     *string `json:"emergencyContact,omitempty"`
	EmergencyContactName *string `json:"emergencyContactName,omitempty"`
	AdmissionDate        *string `json:"admissionDate,omitempty"`
	IsActive             *bool   `json:"isActive,omitempty"`
}

// StudentResponse represents student profile information
type StudentResponse struct {
	ID                   int64   `json:"id"`
	UserID               int64   `json:"userId"`
	Username             string  `json:"username"`
	Email                string  `json:"email"`
	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	CollegeID            int64   `json:"collegeId"`
	BatchID              *int64  `json:"batchId,omitempty"`
	RollNo               string  `json:"rollNo"`
	PhoneNumber          *string `json:"phoneNumber,omitempty"`
	DateOfBirth          *string `json:"dateOfBirth,omitempty"`
	Address              *string `json:"address,omitempty"`
	EmergencyContact     *string `json:"emergencyContact,omitempty"`
	EmergencyContactName *string `json:"emergencyContactName,omitempty"`
	AdmissionDate        *string `json:"admissionDate,omitempty"`
	IsActive             bool    `json:"isActive"`
}

// StudentListResponse represents a paginated list of students
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// BulkUploadResult summarizes a CSV student import: which rows were created
// and which failed, keyed by their row number in the uploaded file.
type BulkUploadResult struct {
	TotalRows    int               `json:"totalRows"`
	SuccessCount int               `json:"successCount"`
	FailureCount int               `json:"failureCount"`
	Created      []StudentResponse `json:"created"`
	Errors       []string          `json:"errors"`
}

// FromStudent converts a models.Student (with its User loaded) to a
// StudentResponse
func FromStudent(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}
	resp := StudentResponse{
		ID:                   student.ID,
		UserID:               student.UserID,
		CollegeID:            student.CollegeID,
		BatchID:              student.BatchID,
		RollNo:               student.RollNo,
		PhoneNumber:          student.PhoneNumber,
		Address:              student.Address,
		EmergencyContact:     student.EmergencyContact,
		EmergencyContactName: student.EmergencyContactName,
		IsActive:             student.IsActive,
	}
	if student.User != nil {
		resp.Username = student.User.Username
		resp.Email = student.User.Email
		resp.FirstName = student.User.FirstName
		resp.LastName = student.User.LastName
	}
	if student.DateOfBirth != nil {
		s := student.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &s
	}
	if student.AdmissionDate != nil {
		s := student.AdmissionDate.Format("2006-01-02")
		resp.AdmissionDate = &s
	}
	return resp
}
