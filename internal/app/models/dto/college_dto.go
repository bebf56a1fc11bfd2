package dto

import "github.com/medprep/campus/internal/app/models"

// CreateCollegeRequest represents a request to create a college
type CreateCollegeRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Code         string  `json:"code" binding:"required,max=50"`
	Course       string  `json:"course" binding:"required"`
	Address      *string `json:"address,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty" binding:"omitempty,email"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

// UpdateCollegeRequest represents a request to update a college
type UpdateCollegeRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Code         string  `json:"code" binding:"required,max=50"`
	Course       string  `json:"course" binding:"required"`
	Address      *string `json:"address,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty" binding:"omitempty,email"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

// CollegeResponse represents college information
type CollegeResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Course       string  `json:"course"`
	Address      *string `json:"address,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

// CollegeListResponse represents a paginated list of colleges
type CollegeListResponse struct {
	Colleges   []CollegeResponse `json:"colleges"`
	Pagination PaginationInfo    `json:"pagination"`
}

// FromCollege converts a models.College to a CollegeResponse
func FromCollege(college *models.College) CollegeResponse {
	if college == nil {
		return CollegeResponse{}
	}
	return CollegeResponse{
		ID:           college.ID,
		Name:         college.Name,
		Code:         college.Code,
		Course:       college.Course,
		Address:      college.Address,
		ContactEmail: college.ContactEmail,
		ContactPhone: college.ContactPhone,
	}
}
