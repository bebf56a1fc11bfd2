package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/pkg/apperrors"
	"github.com/medprep/campus/internal/pkg/dberrors"
)

const subjectColumns = `id, college_id, name, code, description, is_active, created_at, updated_at`
const moduleColumns = `id, subject_id, name, description, order_index, is_active, created_at, updated_at`

// SubjectRepository handles database operations for subjects and their
// modules.
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
	}
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	var subject models.Subject
	err := row.Scan(
		&subject.ID,
		&subject.CollegeID,
		&subject.Name,
		&subject.Code,
		&subject.Description,
		&subject.IsActive,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func scanModule(row pgx.Row) (*models.Module, error) {
	var module models.Module
	err := row.Scan(
		&module.ID,
		&module.SubjectID,
		&module.Name,
		&module.Description,
		&module.OrderIndex,
		&module.IsActive,
		&module.CreatedAt,
		&module.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// Create inserts a new subject
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (college_id, name, code, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		subject.CollegeID,
		subject.Name,
		subject.Code,
		subject.Description,
		subject.IsActive,
	).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_college_name_key") {
			return apperrors.ErrSubjectAlreadyExists
		}
		return fmt.Errorf("error creating subject: %w", err)
	}
	return nil
}

// GetOrCreate returns the subject with the given name in the college,
// creating it when missing. Used by seeding.
func (r *SubjectRepository) GetOrCreate(ctx context.Context, collegeID int64, name string) (*models.Subject, error) {
	subject, err := scanSubject(r.db.QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE college_id = $1 AND name = $2`,
		collegeID, name,
	))
	if err == nil {
		return subject, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error looking up subject: %w", err)
	}

	created := &models.Subject{CollegeID: collegeID, Name: name, IsActive: true}
	if err := r.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := scanSubject(r.db.QueryRow(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return subject, nil
}

// GetByCollege retrieves a page of subjects for one college
func (r *SubjectRepository) GetByCollege(ctx context.Context, collegeID int64, offset uint64, limit int) ([]*models.Subject, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subjects WHERE college_id = $1`, collegeID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting subjects: %w", err)
	}

	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE college_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, collegeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, 0, err
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return subjects, total, nil
}

// GetByIDs retrieves the subjects with the given IDs
func (r *SubjectRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// Update replaces the mutable fields of a subject
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, code = $2, description = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		subject.Name,
		subject.Code,
		subject.Description,
		subject.IsActive,
		subject.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_college_name_key") {
			return apperrors.ErrSubjectAlreadyExists
		}
		return fmt.Errorf("error updating subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// Delete removes a subject. Modules and question bank rows cascade.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// CreateModule inserts a new module under a subject
func (r *SubjectRepository) CreateModule(ctx context.Context, module *models.Module) error {
	query := `
		INSERT INTO modules (subject_id, name, description, order_index, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		module.SubjectID,
		module.Name,
		module.Description,
		module.OrderIndex,
		module.IsActive,
	).Scan(&module.ID, &module.CreatedAt, &module.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "modules_subject_name_key") {
			return apperrors.ErrModuleAlreadyExists
		}
		return fmt.Errorf("error creating module: %w", err)
	}
	return nil
}

// GetModuleByID retrieves a module by ID
func (r *SubjectRepository) GetModuleByID(ctx context.Context, id int64) (*models.Module, error) {
	module, err := scanModule(r.db.QueryRow(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error retrieving module: %w", err)
	}
	return module, nil
}

// GetModulesBySubject retrieves the modules of a subject in display order
func (r *SubjectRepository) GetModulesBySubject(ctx context.Context, subjectID int64) ([]*models.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM modules WHERE subject_id = $1 ORDER BY order_index, name`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error listing modules: %w", err)
	}
	defer rows.Close()

	var modules []*models.Module
	for rows.Next() {
		module, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return modules, nil
}

// UpdateModule replaces the mutable fields of a module
func (r *SubjectRepository) UpdateModule(ctx context.Context, module *models.Module) error {
	query := `
		UPDATE modules
		SET name = $1, description = $2, order_index = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		module.Name,
		module.Description,
		module.OrderIndex,
		module.IsActive,
		module.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "modules_subject_name_key") {
			return apperrors.ErrModuleAlreadyExists
		}
		return fmt.Errorf("error updating module: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}

// DeleteModule removes a module. Question bank rows keep their module
// reference cleared by the schema.
func (r *SubjectRepository) DeleteModule(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting module: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}
