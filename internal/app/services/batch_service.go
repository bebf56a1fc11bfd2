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

const defaultAutoPromoteAfterDays = 365

// BatchService handles batch and academic year operations
type BatchService struct {
	batchRepo   *repositories.BatchRepository
	collegeRepo *repositories.CollegeRepository
	logger      zerolog.Logger
}

// NewBatchService creates a new batch service
func NewBatchService(batchRepo *repositories.BatchRepository, collegeRepo *repositories.CollegeRepository, logger zerolog.Logger) *BatchService {
	return &BatchService{
		batchRepo:   batchRepo,
		collegeRepo: collegeRepo,
		logger:      logger,
	}
}

func buildAcademicYears(reqs []dto.AcademicYearRequest) ([]models.AcademicYear, error) {
	years := make([]models.AcademicYear, 0, len(reqs))
	for _, req := range reqs {
		year := models.AcademicYear{
			Year:        req.Year,
			Label:       req.Label,
			AutoPromote: req.AutoPromote,
			Editable:    true,
		}
		if req.StartDate != nil {
			parsed, err := helpers.ParseDate(*req.StartDate)
			if err != nil {
				return nil, apperrors.NewValidationError("invalid start date: " + *req.StartDate)
			}
			year.StartDate = parsed
		}
		if req.EndDate != nil {
			parsed, err := helpers.ParseDate(*req.EndDate)
			if err != nil {
				return nil, apperrors.NewValidationError("invalid end date: " + *req.EndDate)
			}
			year.EndDate = parsed
		}
		years = append(years, year)
	}
	return years, nil
}

// Create adds a batch with its academic years to a college
func (s *BatchService) Create(ctx context.Context, scope auth.TenantScope, req *dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(req.CollegeID); err != nil {
		return nil, err
	}

	years, err := buildAcademicYears(req.AcademicYears)
	if err != nil {
		return nil, err
	}

	batch := &models.Batch{
		CollegeID:            req.CollegeID,
		Course:               req.Course,
		YearOfJoining:        req.YearOfJoining,
		Name:                 req.Name,
		AutoPromoteAfterDays: req.AutoPromoteAfterDays,
		AcademicYears:        years,
	}
	if batch.AutoPromoteAfterDays <= 0 {
		batch.AutoPromoteAfterDays = defaultAutoPromoteAfterDays
	}

	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("batchID", batch.ID).Int64("collegeID", batch.CollegeID).Msg("Batch created")
	resp := dto.FromBatch(batch)
	return &resp, nil
}

// GetByID returns one batch, scope permitting
func (s *BatchService) GetByID(ctx context.Context, scope auth.TenantScope, id int64) (*dto.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRead(batch.CollegeID); err != nil {
		return nil, err
	}
	resp := dto.FromBatch(batch)
	return &resp, nil
}

// ListByCollege returns a college's batches, scope permitting
func (s *BatchService) ListByCollege(ctx context.Context, scope auth.TenantScope, collegeID int64, page, size int) (*dto.BatchListResponse, error) {
	if _, err := s.collegeRepo.GetByID(ctx, collegeID); err != nil {
		return nil, err
	}
	if err := scope.RequireRead(collegeID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	batches, total, err := s.batchRepo.GetByCollege(ctx, collegeID, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BatchResponse, 0, len(batches))
	for _, batch := range batches {
		items = append(items, dto.FromBatch(batch))
	}
	return &dto.BatchListResponse{
		Batches:    items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update modifies a batch. When the request carries academic years they
// replace the existing set.
func (s *BatchService) Update(ctx context.Context, scope auth.TenantScope, id int64, req *dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(batch.CollegeID); err != nil {
		return nil, err
	}

	batch.Course = req.Course
	batch.YearOfJoining = req.YearOfJoining
	batch.Name = req.Name
	if req.AutoPromoteAfterDays > 0 {
		batch.AutoPromoteAfterDays = req.AutoPromoteAfterDays
	}

	replaceYears := req.AcademicYears != nil
	if replaceYears {
		years, err := buildAcademicYears(req.AcademicYears)
		if err != nil {
			return nil, err
		}
		batch.AcademicYears = years
	}

	if err := s.batchRepo.Update(ctx, batch, replaceYears); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, scope, id)
}

// Delete removes a batch. Students enrolled in it stay, unassigned.
func (s *BatchService) Delete(ctx context.Context, scope auth.TenantScope, id int64) error {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := scope.RequireWrite(batch.CollegeID); err != nil {
		return err
	}

	if err := s.batchRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("batchID", id).Msg("Batch deleted")
	return nil
}
