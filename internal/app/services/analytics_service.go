package services

import (
	"context"

	"github.com/medprep/campus/internal/app/auth"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// AnalyticsService computes dashboard rollups
type AnalyticsService struct {
	analyticsRepo *repositories.AnalyticsRepository
	collegeRepo   *repositories.CollegeRepository
	logger        zerolog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo *repositories.AnalyticsRepository, collegeRepo *repositories.CollegeRepository, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		collegeRepo:   collegeRepo,
		logger:        logger,
	}
}

// CollegeAnalytics returns headcounts and content inventory for one college,
// scope permitting.
func (s *AnalyticsService) CollegeAnalytics(ctx context.Context, scope auth.TenantScope, collegeID int64) (*dto.CollegeAnalyticsResponse, error) {
	if _, err := s.collegeRepo.GetByID(ctx, collegeID); err != nil {
		return nil, err
	}
	if err := scope.RequireRead(collegeID); err != nil {
		return nil, err
	}
	return s.analyticsRepo.CollegeCounts(ctx, collegeID)
}

// PlatformAnalytics returns the platform-wide rollup. Product owner only.
func (s *AnalyticsService) PlatformAnalytics(ctx context.Context, scope auth.TenantScope) (*dto.PlatformAnalyticsResponse, error) {
	if !scope.CanManageColleges() {
		return nil, apperrors.ErrPermissionDenied
	}

	result, err := s.analyticsRepo.PlatformCounts(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.analyticsRepo.CollegeIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		counts, err := s.analyticsRepo.CollegeCounts(ctx, id)
		if err != nil {
			return nil, err
		}
		result.Colleges = append(result.Colleges, *counts)
	}

	return result, nil
}
