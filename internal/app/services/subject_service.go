package services

import (
	"context"

	"github.com/medprep/campus/internal/app/auth"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// SubjectService handles subject and module operations
type SubjectService struct {
	subjectRepo *repositories.SubjectRepository
	collegeRepo *repositories.CollegeRepository
	logger      zerolog.Logger
}

// NewSubjectService creates a new subject service
func NewSubjectService(subjectRepo *repositories.SubjectRepository, collegeRepo *repositories.CollegeRepository, logger zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		collegeRepo: collegeRepo,
		logger:      logger,
	}
}

// Create adds a subject to a college
func (s *SubjectService) Create(ctx context.Context, scope auth.TenantScope, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(req.CollegeID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		CollegeID:   req.CollegeID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectID", subject.ID).Int64("collegeID", subject.CollegeID).Msg("Subject created")
	resp := dto.FromSubject(subject)
	return &resp, nil
}

// GetByID returns one subject, scope permitting
func (s *SubjectService) GetByID(ctx context.Context, scope auth.TenantScope, id int64) (*dto.SubjectResponse, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRead(subject.CollegeID); err != nil {
		return nil, err
	}
	resp := dto.FromSubject(subject)
	return &resp, nil
}

// ListByCollege returns a college's subjects, scope permitting
func (s *SubjectService) ListByCollege(ctx context.Context, scope auth.TenantScope, collegeID int64, page, size int) (*dto.SubjectListResponse, error) {
	if _, err := s.collegeRepo.GetByID(ctx, collegeID); err != nil {
		return nil, err
	}
	if err := scope.RequireRead(collegeID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	subjects, total, err := s.subjectRepo.GetByCollege(ctx, collegeID, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		items = append(items, dto.FromSubject(subject))
	}
	return &dto.SubjectListResponse{
		Subjects:   items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update modifies a subject
func (s *SubjectService) Update(ctx context.Context, scope auth.TenantScope, id int64, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(subject.CollegeID); err != nil {
		return nil, err
	}

	subject.Name = req.Name
	subject.Code = req.Code
	subject.Description = req.Description
	if req.IsActive != nil {
		subject.IsActive = *req.IsActive
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	resp := dto.FromSubject(subject)
	return &resp, nil
}

// Delete removes a subject with its modules and questions
func (s *SubjectService) Delete(ctx context.Context, scope auth.TenantScope, id int64) error {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := scope.RequireWrite(subject.CollegeID); err != nil {
		return err
	}

	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("subjectID", id).Msg("Subject deleted")
	return nil
}

// CreateModule adds a module to a subject
func (s *SubjectService) CreateModule(ctx context.Context, scope auth.TenantScope, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	subject, err := s.subjectRepo.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(subject.CollegeID); err != nil {
		return nil, err
	}

	module := &models.Module{
		SubjectID:   req.SubjectID,
		Name:        req.Name,
		Description: req.Description,
		OrderIndex:  req.Order,
		IsActive:    true,
	}
	if err := s.subjectRepo.CreateModule(ctx, module); err != nil {
		return nil, err
	}

	resp := dto.FromModule(module)
	return &resp, nil
}

// ListModules returns a subject's modules in display order, scope permitting
func (s *SubjectService) ListModules(ctx context.Context, scope auth.TenantScope, subjectID int64) (*dto.ModuleListResponse, error) {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRead(subject.CollegeID); err != nil {
		return nil, err
	}

	modules, err := s.subjectRepo.GetModulesBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ModuleResponse, 0, len(modules))
	for _, module := range modules {
		items = append(items, dto.FromModule(module))
	}
	return &dto.ModuleListResponse{Modules: items}, nil
}

// UpdateModule modifies a module
func (s *SubjectService) UpdateModule(ctx context.Context, scope auth.TenantScope, id int64, req *dto.UpdateModuleRequest) (*dto.ModuleResponse, error) {
	module, err := s.subjectRepo.GetModuleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subject, err := s.subjectRepo.GetByID(ctx, module.SubjectID)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireWrite(subject.CollegeID); err != nil {
		return nil, err
	}

	module.Name = req.Name
	module.Description = req.Description
	module.OrderIndex = req.Order
	if req.IsActive != nil {
		module.IsActive = *req.IsActive
	}

	if err := s.subjectRepo.UpdateModule(ctx, module); err != nil {
		return nil, err
	}
	resp := dto.FromModule(module)
	return &resp, nil
}

// DeleteModule removes a module. Its questions stay, detached.
func (s *SubjectService) DeleteModule(ctx context.Context, scope auth.TenantScope, id int64) error {
	module, err := s.subjectRepo.GetModuleByID(ctx, id)
	if err != nil {
		return err
	}
	subject, err := s.subjectRepo.GetByID(ctx, module.SubjectID)
	if err != nil {
		return err
	}
	if err := scope.RequireWrite(subject.CollegeID); err != nil {
		return err
	}

	return s.subjectRepo.DeleteModule(ctx, id)
}
