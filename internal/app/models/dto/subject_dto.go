package dto

import "github.com/medprep/campus/internal/app/models"

// CreateSubjectRequest represents a request to create a subject
type CreateSubjectRequest struct {
	CollegeID   int64   `json:"collegeId" binding:"required,min=1"`
	Name        string  `json:"name" binding:"required,max=255"`
	Code        string  `json:"code" binding:"omitempty,max=50"`
	Description *string `json:"description,omitempty"`
}

// UpdateSubjectRequest represents a request to update a subject
type UpdateSubjectRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Code        string  `json:"code" binding:"omitempty,max=50"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// SubjectResponse represents subject information
type SubjectResponse struct {
	ID          int64   `json:"id"`
	CollegeID   int64   `json:"collegeId"`
	Name        string  `json:"name"`
	Code        string  `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// SubjectListResponse represents a paginated list of subjects
type SubjectListResponse struct {
	Subjects   []SubjectResponse `json:"subjects"`
	Pagination PaginationInfo    `json:"pagination"`
}

// CreateModuleRequest represents a request to create a module under a subject
type CreateModuleRequest struct {
	SubjectID   int64   `json:"subjectId" binding:"required,min=1"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Order       int     `json:"order" binding:"omitempty,min=0"`
}

// UpdateModuleRequest represents a request to update a module
type UpdateModuleRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Order       int     `json:"order" binding:"omitempty,min=0"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ModuleResponse represents module information
type ModuleResponse struct {
	ID          int64   `json:"id"`
	SubjectID   int64   `json:"subjectId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Order       int     `json:"order"`
	IsActive    bool    `json:"isActive"`
}

// ModuleListResponse represents the ordered modules of a subject
type ModuleListResponse struct {
	Modules []ModuleResponse `json:"modules"`
}

// FromSubject converts a models.Subject to a SubjectResponse
func FromSubject(subject *models.Subject) SubjectResponse {
	if subject == nil {
		return SubjectResponse{}
	}
	return SubjectResponse{
		ID:          subject.ID,
		CollegeID:   subject.CollegeID,
		Name:        subject.Name,
		Code:        subject.Code,
		Description: subject.Description,
		IsActive:    subject.IsActive,
	}
}

// FromModule converts a models.Module to a ModuleResponse
func FromModule(module *models.Module) ModuleResponse {
	if module == nil {
		return ModuleResponse{}
	}
	return ModuleResponse{
		ID:          module.ID,
		SubjectID:   module.SubjectID,
		Name:        module.Name,
		Description: module.Description,
		Order:       module.OrderIndex,
		IsActive:    module.IsActive,
	}
}
