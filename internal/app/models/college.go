package models

import "time"

// College is the tenant root. Every academic-structure and person entity
// transitively belongs to exactly one college.
type College struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Code         string    `json:"code" db:"code"`
	Course       string    `json:"course" db:"course"`
	Address      *string   `json:"address,omitempty" db:"address"`
	ContactEmail *string   `json:"contactEmail,omitempty" db:"contact_email"`
	ContactPhone *string   `json:"contactPhone,omitempty" db:"contact_phone"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
