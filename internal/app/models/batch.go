package models

import "time"

// Batch represents a joining-year cohort inside a college; unique on
// (college, year_of_joining, name).
type Batch struct {
	ID                   int64     `json:"id" db:"id"`
	CollegeID            int64     `json:"collegeId" db:"college_id"`
	Course               string    `json:"course" db:"course"`
	YearOfJoining        int       `json:"yearOfJoining" db:"year_of_joining"`
	Name                 string    `json:"name" db:"name"`
	AutoPromoteAfterDays int       `json:"autoPromoteAfterDays" db:"auto_promote_after_days"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`

	College       *College       `json:"college,omitempty"`
	AcademicYears []AcademicYear `json:"academicYears,omitempty"`
}

// AcademicYear is one academic phase of a batch; unique on (batch, year),
// listed ordered by year ascending.
type AcademicYear struct {
	ID          int64      `json:"id" db:"id"`
	BatchID     int64      `json:"batchId" db:"batch_id"`
	Year        int        `json:"year" db:"year"`
	Label       string     `json:"label" db:"label"`
	StartDate   *time.Time `json:"startDate,omitempty" db:"start_date"`
	EndDate     *time.Time `json:"endDate,omitempty" db:"end_date"`
	AutoPromote bool       `json:"autoPromote" db:"auto_promote"`
	Editable    bool       `json:"editable" db:"editable"`
}
