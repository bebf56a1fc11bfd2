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

const collegeColumns = `id, name, code, course, address, contact_email, contact_phone, created_at, updated_at`

// CollegeRepository handles database operations for colleges
type CollegeRepository struct {
	db *pgxpool.Pool
}

// NewCollegeRepository creates a new college repository
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{
		db: db,
	}
}

func scanCollege(row pgx.Row) (*models.College, error) {
	var college models.College
	err := row.Scan(
		&college.ID,
		&college.Name,
		&college.Code,
		&college.Course,
		&college.Address,
		&college.ContactEmail,
		&college.ContactPhone,
		&college.CreatedAt,
		&college.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &college, nil
}

// Create inserts a new college
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	query := `
		INSERT INTO colleges (name, code, course, address, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		college.Name,
		college.Code,
		college.Course,
		college.Address,
		college.ContactEmail,
		college.ContactPhone,
	).Scan(&college.ID, &college.CreatedAt, &college.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "colleges_name_key") ||
			dberrors.IsDuplicateConstraintError(err, "colleges_code_key") {
			return apperrors.ErrCollegeAlreadyExists
		}
		return fmt.Errorf("error creating college: %w", err)
	}
	return nil
}

// GetOrCreateByCode returns the college with the given code, creating it
// inside the caller's transaction when it does not exist yet.
func (r *CollegeRepository) GetOrCreateByCode(ctx context.Context, q Querier, name, code, course string) (*models.College, error) {
	college, err := scanCollege(q.QueryRow(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE code = $1`, code))
	if err == nil {
		return college, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error looking up college: %w", err)
	}

	query := `
		INSERT INTO colleges (name, code, course)
		VALUES ($1, $2, $3)
		RETURNING ` + collegeColumns

	college, err = scanCollege(q.QueryRow(ctx, query, name, code, course))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "colleges_name_key") ||
			dberrors.IsDuplicateConstraintError(err, "colleges_code_key") {
			return nil, apperrors.ErrCollegeAlreadyExists
		}
		return nil, fmt.Errorf("error creating college: %w", err)
	}
	return college, nil
}

// GetByID retrieves a college by ID
func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*models.College, error) {
	college, err := scanCollege(r.db.QueryRow(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, fmt.Errorf("error retrieving college: %w", err)
	}
	return college, nil
}

// GetAll retrieves a page of colleges ordered by name
func (r *CollegeRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.College, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM colleges`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting colleges: %w", err)
	}

	query := `SELECT ` + collegeColumns + ` FROM colleges ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing colleges: %w", err)
	}
	defer rows.Close()

	var colleges []*models.College
	for rows.Next() {
		college, err := scanCollege(rows)
		if err != nil {
			return nil, 0, err
		}
		colleges = append(colleges, college)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return colleges, total, nil
}

// Update replaces the mutable fields of a college
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	query := `
		UPDATE colleges
		SET name = $1, code = $2, course = $3, address = $4, contact_email = $5, contact_phone = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		college.Name,
		college.Code,
		college.Course,
		college.Address,
		college.ContactEmail,
		college.ContactPhone,
		college.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "colleges_name_key") ||
			dberrors.IsDuplicateConstraintError(err, "colleges_code_key") {
			return apperrors.ErrCollegeAlreadyExists
		}
		return fmt.Errorf("error updating college: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}

// Delete removes a college. Batches, subjects, profiles and questions under
// it are removed by the schema's cascade rules.
func (r *CollegeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM colleges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting college: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}

// GetAdminCollegeID returns the college a college_admin user is bound to.
// Returns ErrResourceNotFound when the user has no binding.
func (r *CollegeRepository) GetAdminCollegeID(ctx context.Context, userID int64) (int64, error) {
	var collegeID int64
	err := r.db.QueryRow(ctx, `SELECT college_id FROM college_admins WHERE user_id = $1`, userID).Scan(&collegeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrResourceNotFound
		}
		return 0, fmt.Errorf("error retrieving admin binding: %w", err)
	}
	return collegeID, nil
}

// BindAdmin links a college_admin user to a college inside the caller's
// transaction.
func (r *CollegeRepository) BindAdmin(ctx context.Context, q Querier, userID, collegeID int64) error {
	_, err := q.Exec(ctx, `INSERT INTO college_admins (user_id, college_id) VALUES ($1, $2)`, userID, collegeID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "college_admins_user_id_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error binding college admin: %w", err)
	}
	return nil
}
