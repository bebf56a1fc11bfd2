package models

import "time"

// Faculty defines the faculty profile based on the 'faculty' table.
// Assigned subjects must belong to the same college as the faculty member.
type Faculty struct {
	ID               int64         `json:"id" db:"id"`
	UserID           int64         `json:"userId" db:"user_id"`
	CollegeID        int64         `json:"collegeId" db:"college_id"`
	Designation      Designation   `json:"designation" db:"designation"`
	Status           FacultyStatus `json:"status" db:"status"`
	EducationDetails *string       `json:"educationDetails,omitempty" db:"education_details"`
	ExperienceYears  *int          `json:"experienceYears,omitempty" db:"experience_years"`
	Specialization   *string       `json:"specialization,omitempty" db:"specialization"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`

	User     *User     `json:"user,omitempty"`
	College  *College  `json:"college,omitempty"`
	Subjects []Subject `json:"subjects,omitempty"`
}
