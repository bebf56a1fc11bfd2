package services

import (
	"context"

	"github.com/medprep/campus/internal/app/auth"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/pkg/apperrors"
	"github.com/medprep/campus/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// CollegeService handles college directory operations
type CollegeService struct {
	collegeRepo *repositories.CollegeRepository
	logger      zerolog.Logger
}

// NewCollegeService creates a new college service
func NewCollegeService(collegeRepo *repositories.CollegeRepository, logger zerolog.Logger) *CollegeService {
	return &CollegeService{
		collegeRepo: collegeRepo,
		logger:      logger,
	}
}

// Create registers a new college. Only the product owner may create colleges.
func (s *CollegeService) Create(ctx context.Context, scope auth.TenantScope, req *dto.CreateCollegeRequest) (*dto.CollegeResponse, error) {
	if !scope.CanManageColleges() {
		return nil, apperrors.ErrPermissionDenied
	}

	college := &models.College{
		Name:         req.Name,
		Code:         req.Code,
		Course:       req.Course,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if err := s.collegeRepo.Create(ctx, college); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("collegeID", college.ID).Str("code", college.Code).Msg("College created")
	resp := dto.FromCollege(college)
	return &resp, nil
}

// GetByID returns one college, scope permitting
func (s *CollegeService) GetByID(ctx context.Context, scope auth.TenantScope, id int64) (*dto.CollegeResponse, error) {
	college, err := s.collegeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRead(college.ID); err != nil {
		return nil, err
	}
	resp := dto.FromCollege(college)
	return &resp, nil
}

// List returns the colleges visible to the caller. The product owner sees
// all; everyone else sees only their own college.
func (s *CollegeService) List(ctx context.Context, scope auth.TenantScope, page, size int) (*dto.CollegeListResponse, error) {
	filter, ok := scope.ListFilter()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	if filter > 0 {
		college, err := s.collegeRepo.GetByID(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &dto.CollegeListResponse{
			Colleges:   []dto.CollegeResponse{dto.FromCollege(college)},
			Pagination: helpers.NewPaginationInfo(1, 1, size),
		}, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	colleges, total, err := s.collegeRepo.GetAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CollegeResponse, 0, len(colleges))
	for _, college := range colleges {
		items = append(items, dto.FromCollege(college))
	}
	return &dto.CollegeListResponse{
		Colleges:   items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update modifies a college. The product owner may update any college; a
// college admin only their own.
func (s *CollegeService) Update(ctx context.Context, scope auth.TenantScope, id int64, req *dto.UpdateCollegeRequest) (*dto.CollegeResponse, error) {
	college, err := s.collegeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(college.ID); err != nil {
		return nil, err
	}

	college.Name = req.Name
	college.Code = req.Code
	college.Course = req.Course
	college.Address = req.Address
	college.ContactEmail = req.ContactEmail
	college.ContactPhone = req.ContactPhone

	if err := s.collegeRepo.Update(ctx, college); err != nil {
		return nil, err
	}
	resp := dto.FromCollege(college)
	return &resp, nil
}

// Delete removes a college and everything under it. Product owner only.
func (s *CollegeService) Delete(ctx context.Context, scope auth.TenantScope, id int64) error {
	if !scope.CanManageColleges() {
		return apperrors.ErrPermissionDenied
	}
	if err := s.collegeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("collegeID", id).Msg("College deleted")
	return nil
}
