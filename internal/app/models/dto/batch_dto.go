package dto

import "github.com/medprep/campus/internal/app/models"

// AcademicYearRequest represents one academic year inside a batch payload
type AcademicYearRequest struct {
	Year        int     `json:"year" binding:"required,min=1,max=10"`
	Label       string  `json:"label" binding:"required"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	AutoPromote bool    `json:"autoPromote"`
}

// CreateBatchRequest represents a request to create a batch with its
// academic years
type CreateBatchRequest struct {
	CollegeID            int64                 `json:"collegeId" binding:"required,min=1"`
	Course               string                `json:"course" binding:"required"`
	YearOfJoining        int                   `json:"yearOfJoining" binding:"required,min=1990,max=2100"`
	Name                 string                `json:"name" binding:"required,max=255"`
	AutoPromoteAfterDays int                   `json:"autoPromoteAfterDays" binding:"omitempty,min=1"`
	AcademicYears        []AcademicYearRequest `json:"academicYears" binding:"omitempty,dive"`
}

// UpdateBatchRequest represents a request to update a batch. Academic years
// replace the existing set when provided.
type UpdateBatchRequest struct {
	Course               string                `json:"course" binding:"required"`
	YearOfJoining        int                   `json:"yearOfJoining" binding:"required,min=1990,max=2100"`
	Name                 string                `json:"name" binding:"required,max=255"`
	AutoPromoteAfterDays int                   `json:"autoPromoteAfterDays" binding:"omitempty,min=1"`
	AcademicYears        []AcademicYearRequest `json:"academicYears" binding:"omitempty,dive"`
}

// AcademicYearResponse represents academic year information
type AcademicYearResponse struct {
	ID          int64   `json:"id"`
	Year        int     `json:"year"`
	Label       string  `json:"label"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	AutoPromote bool    `json:"autoPromote"`
	Editable    bool    `json:"editable"`
}

// BatchResponse represents batch information with its academic years
type BatchResponse struct {
	ID                   int64                  `json:"id"`
	CollegeID            int64                  `json:"collegeId"`
	Course               string                 `json:"course"`
	YearOfJoining        int                    `json:"yearOfJoining"`
	Name                 string                 `json:"name"`
	AutoPromoteAfterDays int                    `json:"autoPromoteAfterDays"`
	AcademicYears        []AcademicYearResponse `json:"academicYears"`
}

// BatchListResponse represents a paginated list of batches
type BatchListResponse struct {
	Batches    []BatchResponse `json:"batches"`
	Pagination PaginationInfo  `json:"pagination"`
}

// FromBatch converts a models.Batch to a BatchResponse
func FromBatch(batch *models.Batch) BatchResponse {
	if batch == nil {
		return BatchResponse{}
	}
	years := make([]AcademicYearResponse, 0, len(batch.AcademicYears))
	for i := range batch.AcademicYears {
		years = append(years, FromAcademicYear(&batch.AcademicYears[i]))
	}
	return BatchResponse{
		ID:                   batch.ID,
		CollegeID:            batch.CollegeID,
		Course:               batch.Course,
		YearOfJoining:        batch.YearOfJoining,
		Name:                 batch.Name,
		AutoPromoteAfterDays: batch.AutoPromoteAfterDays,
		AcademicYears:        years,
	}
}

// FromAcademicYear converts a models.AcademicYear to an AcademicYearResponse
func FromAcademicYear(year *models.AcademicYear) AcademicYearResponse {
	if year == nil {
		return AcademicYearResponse{}
	}
	resp := AcademicYearResponse{
		ID:          year.ID,
		Year:        year.Year,
		Label:       year.Label,
		AutoPromote: year.AutoPromote,
		Editable:    year.Editable,
	}
	if year.StartDate != nil {
		s := year.StartDate.Format("2006-01-02")
		resp.StartDate = &s
	}
	if year.EndDate != nil {
		s := year.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}
