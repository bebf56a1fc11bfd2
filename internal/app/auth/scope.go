package auth

import (
	"context"
	"errors"

	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/pkg/apperrors"
	"github.com/medprep/campus/internal/pkg/logger"
)

// AdminBindingReader resolves the college a college_admin user is bound to.
type AdminBindingReader interface {
	GetAdminCollegeID(ctx context.Context, userID int64) (int64, error)
}

// FacultyProfileReader resolves the college a faculty user belongs to.
type FacultyProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Faculty, error)
}

// TenantScope is the per-request authorization decision: which colleges the
// caller may touch and how. It is resolved fresh on every request so revoked
// or re-pointed bindings take effect immediately.
type TenantScope struct {
	Role      models.RoleType
	All       bool  // product_owner: every college
	CollegeID int64 // the caller's own college when All is false
	Denied    bool  // no usable binding; every access check fails
}

// ScopeResolver builds TenantScope values from the caller's identity
type ScopeResolver struct {
	admins  AdminBindingReader
	faculty FacultyProfileReader
}

// NewScopeResolver creates a new ScopeResolver
func NewScopeResolver(admins AdminBindingReader, faculty FacultyProfileReader) *ScopeResolver {
	return &ScopeResolver{
		admins:  admins,
		faculty: faculty,
	}
}

// Resolve determines the caller's tenant scope. Unknown roles and missing
// bindings resolve to a denied scope, never to a broadened one.
func (r *ScopeResolver) Resolve(ctx context.Context, userID int64, role models.RoleType) (TenantScope, error) {
	switch role {
	case models.RoleProductOwner:
		return TenantScope{Role: role, All: true}, nil

	case models.RoleCollegeAdmin:
		collegeID, err := r.admins.GetAdminCollegeID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				logger.Warn().Int64("userID", userID).Msg("College admin without college binding")
				return TenantScope{Role: role, Denied: true}, nil
			}
			return TenantScope{}, err
		}
		return TenantScope{Role: role, CollegeID: collegeID}, nil

	case models.RoleFaculty:
		profile, err := r.faculty.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrFacultyNotFound) {
				return TenantScope{Role: role, Denied: true}, nil
			}
			return TenantScope{}, err
		}
		return TenantScope{Role: role, CollegeID: profile.CollegeID}, nil

	case models.RoleStudent:
		// Students hold no scope over the administrative registries; their
		// access is limited to their own account endpoints.
		return TenantScope{Role: role, Denied: true}, nil

	default:
		return TenantScope{Role: role, Denied: true}, nil
	}
}

// CanRead reports whether the caller may read resources of the given college
func (s TenantScope) CanRead(collegeID int64) bool {
	if s.Denied {
		return false
	}
	if s.All {
		return true
	}
	return s.CollegeID == collegeID
}

// CanWrite reports whether the caller may create, update or delete resources
// of the given college. Faculty never hold general write access; their narrow
// carve-out (own question bank entries) is checked by the owning service.
func (s TenantScope) CanWrite(collegeID int64) bool {
	if s.Denied {
		return false
	}
	switch s.Role {
	case models.RoleProductOwner:
		return true
	case models.RoleCollegeAdmin:
		return s.CollegeID == collegeID
	default:
		return false
	}
}

// CanManageColleges reports whether the caller may create or delete colleges
// themselves.
func (s TenantScope) CanManageColleges() bool {
	return !s.Denied && s.Role == models.RoleProductOwner
}

// ListFilter returns the college filter a listing must apply: 0 means
// unrestricted, a positive value restricts the listing to that college.
// The boolean is false when the caller may list nothing at all.
func (s TenantScope) ListFilter() (int64, bool) {
	if s.Denied {
		return 0, false
	}
	if s.All {
		return 0, true
	}
	return s.CollegeID, true
}

// RequireRead returns ErrPermissionDenied unless the caller may read the
// college. A cross-tenant read is reported as permission denied, not as a
// missing resource, after the resource is known to exist.
func (s TenantScope) RequireRead(collegeID int64) error {
	if !s.CanRead(collegeID) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// RequireWrite returns ErrPermissionDenied unless the caller may write to
// the college.
func (s TenantScope) RequireWrite(collegeID int64) error {
	if !s.CanWrite(collegeID) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
