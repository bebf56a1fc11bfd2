package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/db"
	"github.com/medprep/campus/internal/pkg/apperrors"
	"github.com/medprep/campus/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// TxRunner runs a function inside a database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// UserStore is the slice of user persistence the auth service needs
type UserStore interface {
	CreateUser(ctx context.Context, q repositories.Querier, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email string, phoneNumber *string) error
}

// TokenStore persists and revokes refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// CollegeDirectory resolves and binds colleges for admin registration
type CollegeDirectory interface {
	GetOrCreateByCode(ctx context.Context, q repositories.Querier, name, code, course string) (*models.College, error)
	BindAdmin(ctx context.Context, q repositories.Querier, userID, collegeID int64) error
	GetAdminCollegeID(ctx context.Context, userID int64) (int64, error)
}

// AuthService handles authentication and account registration
type AuthService struct {
	database    TxRunner
	userRepo    UserStore
	tokenRepo   TokenStore
	collegeRepo CollegeDirectory
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	database TxRunner,
	userRepo UserStore,
	tokenRepo TokenStore,
	collegeRepo CollegeDirectory,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		database:    database,
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		collegeRepo: collegeRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register creates a product_owner or college_admin account. For a
// college_admin the college is resolved by code (created on first use) and
// the admin binding is written in the same transaction as the user row, so a
// failure at any step persists nothing.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}
	if !req.RoleType.IsValid() {
		return nil, apperrors.NewValidationError("invalid role type")
	}
	if req.RoleType == models.RoleCollegeAdmin {
		if strings.TrimSpace(req.CollegeName) == "" || strings.TrimSpace(req.CollegeCode) == "" {
			return nil, apperrors.NewValidationError("college name and code are required for college admins")
		}
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:    req.Username,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    passwordHash,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		RoleType:    req.RoleType,
		IsActive:    true,
	}

	var collegeID *int64
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.userRepo.CreateUser(ctx, tx, user); err != nil {
			return err
		}

		if req.RoleType == models.RoleCollegeAdmin {
			college, err := s.collegeRepo.GetOrCreateByCode(ctx, tx, req.CollegeName, req.CollegeCode, req.Course)
			if err != nil {
				return err
			}
			if err := s.collegeRepo.BindAdmin(ctx, tx, user.ID, college.ID); err != nil {
				return err
			}
			collegeID = &college.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", user.ID).
		Str("role", string(user.RoleType)).
		Msg("User registered")

	token, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	userResp := dto.FromUser(user)
	userResp.CollegeID = collegeID
	return &dto.RegisterResponse{User: userResp, Token: *token}, nil
}

// Login authenticates a user by username and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Do not reveal whether the username exists
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User logged in")
	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes every active refresh token of the user
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

// GetProfile returns the caller's own account
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)

	if user.RoleType == models.RoleCollegeAdmin {
		collegeID, err := s.collegeRepo.GetAdminCollegeID(ctx, userID)
		if err == nil {
			resp.CollegeID = &collegeID
		}
	}
	return &resp, nil
}

// UpdateProfile updates the caller's own identity fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, strings.ToLower(strings.TrimSpace(req.Email)), req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// ChangePassword verifies the current password, replaces it and revokes all
// refresh tokens.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}
