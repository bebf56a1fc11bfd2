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

// BatchRepository handles database operations for batches and their academic
// years.
type BatchRepository struct {
	db *pgxpool.Pool
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{
		db: db,
	}
}

// Create inserts a batch together with its academic years in one transaction
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO batches (college_id, course, year_of_joining, name, auto_promote_after_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		batch.CollegeID,
		batch.Course,
		batch.YearOfJoining,
		batch.Name,
		batch.AutoPromoteAfterDays,
	).Scan(&batch.ID, &batch.CreatedAt, &batch.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "batches_college_year_name_key") {
			return apperrors.ErrBatchAlreadyExists
		}
		return fmt.Errorf("error creating batch: %w", err)
	}

	if err := r.insertAcademicYears(ctx, tx, batch.ID, batch.AcademicYears); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *BatchRepository) insertAcademicYears(ctx context.Context, q Querier, batchID int64, years []models.AcademicYear) error {
	for i := range years {
		year := &years[i]
		query := `
			INSERT INTO academic_years (batch_id, year, label, start_date, end_date, auto_promote, editable)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		err := q.QueryRow(ctx, query,
			batchID,
			year.Year,
			year.Label,
			year.StartDate,
			year.EndDate,
			year.AutoPromote,
			year.Editable,
		).Scan(&year.ID)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "academic_years_batch_year_key") {
				return apperrors.NewConflictError(fmt.Sprintf("academic year %d already exists in this batch", year.Year))
			}
			return fmt.Errorf("error creating academic year: %w", err)
		}
		year.BatchID = batchID
	}
	return nil
}

// GetByID retrieves a batch with its academic years
func (r *BatchRepository) GetByID(ctx context.Context, id int64) (*models.Batch, error) {
	query := `
		SELECT id, college_id, course, year_of_joining, name, auto_promote_after_days, created_at, updated_at
		FROM batches
		WHERE id = $1
	`

	var batch models.Batch
	err := r.db.QueryRow(ctx, query, id).Scan(
		&batch.ID,
		&batch.CollegeID,
		&batch.Course,
		&batch.YearOfJoining,
		&batch.Name,
		&batch.AutoPromoteAfterDays,
		&batch.CreatedAt,
		&batch.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}

	years, err := r.getAcademicYears(ctx, batch.ID)
	if err != nil {
		return nil, err
	}
	batch.AcademicYears = years

	return &batch, nil
}

func (r *BatchRepository) getAcademicYears(ctx context.Context, batchID int64) ([]models.AcademicYear, error) {
	query := `
		SELECT id, batch_id, year, label, start_date, end_date, auto_promote, editable
		FROM academic_years
		WHERE batch_id = $1
		ORDER BY year
	`

	rows, err := r.db.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("error listing academic years: %w", err)
	}
	defer rows.Close()

	var years []models.AcademicYear
	for rows.Next() {
		var year models.AcademicYear
		if err := rows.Scan(
			&year.ID,
			&year.BatchID,
			&year.Year,
			&year.Label,
			&year.StartDate,
			&year.EndDate,
			&year.AutoPromote,
			&year.Editable,
		); err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return years, nil
}

// GetByCollege retrieves a page of batches for one college, academic years
// included.
func (r *BatchRepository) GetByCollege(ctx context.Context, collegeID int64, offset uint64, limit int) ([]*models.Batch, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM batches WHERE college_id = $1`, collegeID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting batches: %w", err)
	}

	query := `
		SELECT id, college_id, course, year_of_joining, name, auto_promote_after_days, created_at, updated_at
		FROM batches
		WHERE college_id = $1
		ORDER BY year_of_joining DESC, name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, collegeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing batches: %w", err)
	}
	defer rows.Close()

	var batches []*models.Batch
	for rows.Next() {
		var batch models.Batch
		if err := rows.Scan(
			&batch.ID,
			&batch.CollegeID,
			&batch.Course,
			&batch.YearOfJoining,
			&batch.Name,
			&batch.AutoPromoteAfterDays,
			&batch.CreatedAt,
			&batch.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		batches = append(batches, &batch)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, batch := range batches {
		years, err := r.getAcademicYears(ctx, batch.ID)
		if err != nil {
			return nil, 0, err
		}
		batch.AcademicYears = years
	}

	return batches, total, nil
}

// Update replaces a batch's fields and, when years is non-nil, its academic
// year set, in one transaction.
func (r *BatchRepository) Update(ctx context.Context, batch *models.Batch, replaceYears bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE batches
		SET course = $1, year_of_joining = $2, name = $3, auto_promote_after_days = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := tx.Exec(ctx, query,
		batch.Course,
		batch.YearOfJoining,
		batch.Name,
		batch.AutoPromoteAfterDays,
		batch.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "batches_college_year_name_key") {
			return apperrors.ErrBatchAlreadyExists
		}
		return fmt.Errorf("error updating batch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}

	if replaceYears {
		if _, err := tx.Exec(ctx, `DELETE FROM academic_years WHERE batch_id = $1`, batch.ID); err != nil {
			return fmt.Errorf("error clearing academic years: %w", err)
		}
		if err := r.insertAcademicYears(ctx, tx, batch.ID, batch.AcademicYears); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a batch. Enrolled students keep their profiles with the
// batch reference cleared by the schema.
func (r *BatchRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting batch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}
