package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName   string     `json:"firstName" db:"first_name"`
	LastName    string     `json:"lastName" db:"last_name"`
	PhoneNumber *string    `json:"phoneNumber,omitempty" db:"phone_number"`
	RoleType    RoleType   `json:"roleType" db:"role"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CollegeAdmin binds one user (role=college_admin) to exactly one college.
// This binding is the sole source of a request's tenant scope.
type CollegeAdmin struct {
	ID        int64    `json:"id" db:"id"`
	UserID    int64    `json:"userId" db:"user_id"`
	CollegeID int64    `json:"collegeId" db:"college_id"`
	User      *User    `json:"user,omitempty"`
	College   *College `json:"college,omitempty"`
}
