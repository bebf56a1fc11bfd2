package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/db"
	"github.com/medprep/campus/internal/pkg/apperrors"
	pkgauth "github.com/medprep/campus/internal/pkg/auth"
	"github.com/rs/zerolog"
)

type fakeTxRunner struct {
	runs int
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.runs++
	return fn(ctx, nil)
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, _ repositories.Querier, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, _ int64) error { return nil }

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = passwordHash
	return nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, userID int64, firstName, lastName, email string, phoneNumber *string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	user.PhoneNumber = phoneNumber
	return nil
}

type fakeTokenStore struct {
	tokens  map[string]int64
	revoked map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]int64), revoked: make(map[string]bool)}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, _ time.Time) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if f.revoked[token] {
		return 0, apperrors.ErrTokenRevoked
	}
	return userID, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for token, owner := range f.tokens {
		if owner == userID {
			f.revoked[token] = true
		}
	}
	return nil
}

type fakeCollegeDirectory struct {
	colleges map[string]*models.College
	bindings map[int64]int64
	nextID   int64
}

func newFakeCollegeDirectory() *fakeCollegeDirectory {
	return &fakeCollegeDirectory{
		colleges: make(map[string]*models.College),
		bindings: make(map[int64]int64),
	}
}

func (f *fakeCollegeDirectory) GetOrCreateByCode(_ context.Context, _ repositories.Querier, name, code, course string) (*models.College, error) {
	if college, ok := f.colleges[code]; ok {
		return college, nil
	}
	f.nextID++
	college := &models.College{ID: f.nextID, Name: name, Code: code, Course: course}
	f.colleges[code] = college
	return college, nil
}

func (f *fakeCollegeDirectory) BindAdmin(_ context.Context, _ repositories.Querier, userID, collegeID int64) error {
	f.bindings[userID] = collegeID
	return nil
}

func (f *fakeCollegeDirectory) GetAdminCollegeID(_ context.Context, userID int64) (int64, error) {
	collegeID, ok := f.bindings[userID]
	if !ok {
		return 0, apperrors.ErrCollegeNotFound
	}
	return collegeID, nil
}

type authFixture struct {
	svc      *AuthService
	tx       *fakeTxRunner
	users    *fakeUserStore
	tokens   *fakeTokenStore
	colleges *fakeCollegeDirectory
}

func newAuthFixture() *authFixture {
	tx := &fakeTxRunner{}
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	colleges := newFakeCollegeDirectory()
	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:       "test-secret-key-test-secret-key",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campus-test",
	})
	return &authFixture{
		svc:      NewAuthService(tx, users, tokens, colleges, jwtService, zerolog.Nop()),
		tx:       tx,
		users:    users,
		tokens:   tokens,
		colleges: colleges,
	}
}

func adminRegisterRequest(username, collegeCode string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "Password1",
		PasswordConfirm: "Password1",
		FirstName:       "Test",
		LastName:        "Admin",
		RoleType:        models.RoleCollegeAdmin,
		CollegeName:     "Test Medical College",
		CollegeCode:     collegeCode,
		Course:          "NEET-PG",
	}
}

func TestRegisterPasswordMismatchPersistsNothing(t *testing.T) {
	f := newAuthFixture()

	req := adminRegisterRequest("alice", "TMC")
	req.PasswordConfirm = "Different1"

	_, err := f.svc.Register(context.Background(), req)
	if !errors.Is(err, apperrors.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if f.tx.runs != 0 {
		t.Errorf("no transaction should run, got %d", f.tx.runs)
	}
	if len(f.users.users) != 0 {
		t.Error("no user account should be persisted")
	}
	if len(f.colleges.colleges) != 0 || len(f.colleges.bindings) != 0 {
		t.Error("no college or admin binding should be persisted")
	}
	if len(f.tokens.tokens) != 0 {
		t.Error("no refresh token should be issued")
	}
}

func TestRegisterAdminRequiresCollege(t *testing.T) {
	f := newAuthFixture()

	req := adminRegisterRequest("alice", "")
	req.CollegeName = ""

	if _, err := f.svc.Register(context.Background(), req); err == nil {
		t.Fatal("admin registration without a college must fail")
	}
	if len(f.users.users) != 0 {
		t.Error("no user account should be persisted")
	}
}

func TestRegisterAdminReusesCollegeByCode(t *testing.T) {
	f := newAuthFixture()

	first, err := f.svc.Register(context.Background(), adminRegisterRequest("alice", "TMC"))
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	second, err := f.svc.Register(context.Background(), adminRegisterRequest("bob", "TMC"))
	if err != nil {
		t.Fatalf("second registration failed: %v", err)
	}

	if len(f.colleges.colleges) != 1 {
		t.Fatalf("the same code must resolve to one college, got %d", len(f.colleges.colleges))
	}
	if first.User.CollegeID == nil || second.User.CollegeID == nil {
		t.Fatal("admin registrations must report the bound college")
	}
	if *first.User.CollegeID != *second.User.CollegeID {
		t.Errorf("both admins must share the college: %d vs %d", *first.User.CollegeID, *second.User.CollegeID)
	}
	if len(f.colleges.bindings) != 2 {
		t.Errorf("expected 2 admin bindings, got %d", len(f.colleges.bindings))
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.svc.Register(context.Background(), adminRegisterRequest("alice", "TMC"))
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	rotated, err := f.svc.RefreshToken(context.Background(), resp.Token.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.RefreshToken == resp.Token.RefreshToken {
		t.Error("refresh must issue a new token")
	}

	// The presented token is single-use.
	if _, err := f.svc.RefreshToken(context.Background(), resp.Token.RefreshToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Fatalf("reusing a rotated token must fail with ErrTokenRevoked, got %v", err)
	}
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.svc.Register(context.Background(), adminRegisterRequest("alice", "TMC"))
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	err = f.svc.ChangePassword(context.Background(), resp.User.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "WrongPassword",
		NewPassword:     "NewPassword1",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("wrong current password must be rejected, got %v", err)
	}

	err = f.svc.ChangePassword(context.Background(), resp.User.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "Password1",
		NewPassword:     "NewPassword1",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := f.svc.RefreshToken(context.Background(), resp.Token.RefreshToken); err == nil {
		t.Fatal("existing refresh tokens must be revoked after a password change")
	}
	if _, err := f.svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "NewPassword1"}); err != nil {
		t.Fatalf("login with the new password failed: %v", err)
	}
}
