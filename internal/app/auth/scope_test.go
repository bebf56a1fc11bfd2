package auth

import (
	"context"
	"testing"

	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/pkg/apperrors"
)

type fakeAdminBindings struct {
	bindings map[int64]int64
}

func (f *fakeAdminBindings) GetAdminCollegeID(_ context.Context, userID int64) (int64, error) {
	collegeID, ok := f.bindings[userID]
	if !ok {
		return 0, apperrors.ErrResourceNotFound
	}
	return collegeID, nil
}

type fakeFacultyProfiles struct {
	profiles map[int64]*models.Faculty
}

func (f *fakeFacultyProfiles) GetByUserID(_ context.Context, userID int64) (*models.Faculty, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrFacultyNotFound
	}
	return profile, nil
}

func newTestResolver() *ScopeResolver {
	return NewScopeResolver(
		&fakeAdminBindings{bindings: map[int64]int64{10: 1}},
		&fakeFacultyProfiles{profiles: map[int64]*models.Faculty{20: {ID: 5, UserID: 20, CollegeID: 1}}},
	)
}

func TestResolveProductOwner(t *testing.T) {
	scope, err := newTestResolver().Resolve(context.Background(), 1, models.RoleProductOwner)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !scope.All {
		t.Error("product owner scope should cover all colleges")
	}
	if !scope.CanRead(99) || !scope.CanWrite(99) {
		t.Error("product owner should read and write any college")
	}
	if !scope.CanManageColleges() {
		t.Error("product owner should manage colleges")
	}
}

func TestResolveCollegeAdmin(t *testing.T) {
	scope, err := newTestResolver().Resolve(context.Background(), 10, models.RoleCollegeAdmin)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if scope.Denied {
		t.Fatal("bound admin should not be denied")
	}
	if scope.CollegeID != 1 {
		t.Errorf("expected college 1, got %d", scope.CollegeID)
	}
	if !scope.CanRead(1) || !scope.CanWrite(1) {
		t.Error("admin should read and write own college")
	}
	if scope.CanRead(2) || scope.CanWrite(2) {
		t.Error("admin must not touch another college")
	}
	if scope.CanManageColleges() {
		t.Error("admin must not manage colleges")
	}
}

func TestResolveAdminWithoutBinding(t *testing.T) {
	scope, err := newTestResolver().Resolve(context.Background(), 11, models.RoleCollegeAdmin)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !scope.Denied {
		t.Fatal("admin without binding must resolve to a denied scope")
	}
	if scope.CanRead(1) || scope.CanWrite(1) {
		t.Error("denied scope must fail every access check")
	}
	if _, ok := scope.ListFilter(); ok {
		t.Error("denied scope must not permit listing")
	}
}

func TestResolveFaculty(t *testing.T) {
	scope, err := newTestResolver().Resolve(context.Background(), 20, models.RoleFaculty)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !scope.CanRead(1) {
		t.Error("faculty should read own college")
	}
	if scope.CanRead(2) {
		t.Error("faculty must not read another college")
	}
	if scope.CanWrite(1) {
		t.Error("faculty must not hold general write access, even in own college")
	}
}

func TestResolveStudent(t *testing.T) {
	scope, err := newTestResolver().Resolve(context.Background(), 30, models.RoleStudent)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !scope.Denied {
		t.Fatal("student scope over the registries must be denied")
	}
	if scope.CanRead(1) || scope.CanRead(2) || scope.CanWrite(2) {
		t.Error("student must not read or write any college's registry data")
	}
	if _, ok := scope.ListFilter(); ok {
		t.Error("student scope must not permit listing")
	}
}

func TestResolveUnknownRole(t *testing.T) {
	scope, err := newTestResolver().Resolve(context.Background(), 40, models.RoleType("superuser"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !scope.Denied {
		t.Error("unknown roles must resolve to a denied scope")
	}
}

func TestListFilter(t *testing.T) {
	tests := []struct {
		name       string
		scope      TenantScope
		wantFilter int64
		wantOK     bool
	}{
		{"owner unrestricted", TenantScope{Role: models.RoleProductOwner, All: true}, 0, true},
		{"admin own college", TenantScope{Role: models.RoleCollegeAdmin, CollegeID: 3}, 3, true},
		{"denied", TenantScope{Role: models.RoleCollegeAdmin, Denied: true}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, ok := tt.scope.ListFilter()
			if ok != tt.wantOK || filter != tt.wantFilter {
				t.Errorf("ListFilter() = (%d, %v), want (%d, %v)", filter, ok, tt.wantFilter, tt.wantOK)
			}
		})
	}
}

func TestRequireHelpers(t *testing.T) {
	scope := TenantScope{Role: models.RoleCollegeAdmin, CollegeID: 1}
	if err := scope.RequireRead(1); err != nil {
		t.Errorf("RequireRead(own) failed: %v", err)
	}
	if err := scope.RequireWrite(2); err == nil {
		t.Error("RequireWrite(other) should fail")
	}
}
