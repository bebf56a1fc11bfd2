package models

import "time"

// Student defines the student profile based on the 'students' table.
// RollNo is unique across the whole system, not per college.
type Student struct {
	ID                   int64      `json:"id" db:"id"`
	UserID               int64      `json:"userId" db:"user_id"`
	CollegeID            int64      `json:"collegeId" db:"college_id"`
	BatchID              *int64     `json:"batchId,omitempty" db:"batch_id"` // nulled, not cascaded, when batch deleted
	RollNo               string     `json:"rollNo" db:"roll_no"`
	PhoneNumber          *string    `json:"phoneNumber,omitempty" db:"phone_number"`
	DateOfBirth          *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Address              *string    `json:"address,omitempty" db:"address"`
	EmergencyContact     *string    `json:"emergencyContact,omitempty" db:"emergency_contact"`
	EmergencyContactName *string    `json:"emergencyContactName,omitempty" db:"emergency_contact_name"`
	AdmissionDate        *time.Time `json:"admissionDate,omitempty" db:"admission_date"`
	IsActive             bool       `json:"isActive" db:"is_active"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`

	User    *User    `json:"user,omitempty"`
	College *College `json:"college,omitempty"`
	Batch   *Batch   `json:"batch,omitempty"`
}
