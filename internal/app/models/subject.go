package models

import "time"

// Subject belongs to one college; unique on (college, name).
type Subject struct {
	ID          int64     `json:"id" db:"id"`
	CollegeID   int64     `json:"collegeId" db:"college_id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Description *string   `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	College *College `json:"college,omitempty"`
}

// Module belongs to one subject; unique on (subject, name), listed ordered
// by the explicit order field.
type Module struct {
	ID          int64     `json:"id" db:"id"`
	SubjectID   int64     `json:"subjectId" db:"subject_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	OrderIndex  int       `json:"order" db:"order_index"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Subject *Subject `json:"subject,omitempty"`
}
