package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medprep/campus/internal/app/models/dto"
)

// AnalyticsRepository computes aggregate counts for dashboards
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{
		db: db,
	}
}

// CollegeCounts summarizes one college
func (r *AnalyticsRepository) CollegeCounts(ctx context.Context, collegeID int64) (*dto.CollegeAnalyticsResponse, error) {
	query := `
		SELECT
			c.id,
			c.name,
			(SELECT COUNT(*) FROM students s WHERE s.college_id = c.id),
			(SELECT COUNT(*) FROM students s WHERE s.college_id = c.id AND s.is_active),
			(SELECT COUNT(*) FROM faculty f WHERE f.college_id = c.id),
			(SELECT COUNT(*) FROM faculty f WHERE f.college_id = c.id AND f.status = 'active'),
			(SELECT COUNT(*) FROM batches b WHERE b.college_id = c.id),
			(SELECT COUNT(*) FROM subjects sub WHERE sub.college_id = c.id),
			(SELECT COUNT(*) FROM question_bank q WHERE q.college_id = c.id)
		FROM colleges c
		WHERE c.id = $1
	`

	var result dto.CollegeAnalyticsResponse
	err := r.db.QueryRow(ctx, query, collegeID).Scan(
		&result.CollegeID,
		&result.CollegeName,
		&result.TotalStudents,
		&result.ActiveStudents,
		&result.TotalFaculty,
		&result.ActiveFaculty,
		&result.TotalBatches,
		&result.TotalSubjects,
		&result.TotalQuestions,
	)
	if err != nil {
		return nil, fmt.Errorf("error computing college analytics: %w", err)
	}

	headcounts, err := r.studentsByBatch(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	result.StudentsByBatch = headcounts

	return &result, nil
}

func (r *AnalyticsRepository) studentsByBatch(ctx context.Context, collegeID int64) ([]dto.BatchHeadcount, error) {
	query := `
		SELECT b.id, b.name, COUNT(s.id)
		FROM batches b
		LEFT JOIN students s ON s.batch_id = b.id
		WHERE b.college_id = $1
		GROUP BY b.id, b.name
		ORDER BY b.year_of_joining DESC, b.name
	`

	rows, err := r.db.Query(ctx, query, collegeID)
	if err != nil {
		return nil, fmt.Errorf("error computing batch headcounts: %w", err)
	}
	defer rows.Close()

	headcounts := make([]dto.BatchHeadcount, 0)
	for rows.Next() {
		var hc dto.BatchHeadcount
		if err := rows.Scan(&hc.BatchID, &hc.BatchName, &hc.Students); err != nil {
			return nil, err
		}
		headcounts = append(headcounts, hc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return headcounts, nil
}

// PlatformCounts summarizes the whole platform
func (r *AnalyticsRepository) PlatformCounts(ctx context.Context) (*dto.PlatformAnalyticsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM colleges),
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM faculty),
			(SELECT COUNT(*) FROM question_bank)
	`

	var result dto.PlatformAnalyticsResponse
	err := r.db.QueryRow(ctx, query).Scan(
		&result.TotalColleges,
		&result.TotalStudents,
		&result.TotalFaculty,
		&result.TotalQuestions,
	)
	if err != nil {
		return nil, fmt.Errorf("error computing platform analytics: %w", err)
	}
	return &result, nil
}

// CollegeIDs lists every college ID with its name, for platform rollups
func (r *AnalyticsRepository) CollegeIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM colleges ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing colleges: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
