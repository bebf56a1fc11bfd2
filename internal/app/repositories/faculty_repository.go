package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/pkg/apperrors"
)

// FacultyFilter narrows faculty listings. Zero values mean "no filter".
type FacultyFilter struct {
	CollegeID   int64
	SubjectID   int64
	Status      string
	Designation string
}

// FacultyRepository handles database operations for faculty profiles and
// their subject assignments.
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new faculty repository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *FacultyRepository) selectFacultyQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"f.id", "f.user_id", "f.college_id", "f.designation", "f.status",
		"f.education_details", "f.experience_years", "f.specialization",
		"f.created_at", "f.updated_at",
		"u.username", "u.email", "u.first_name", "u.last_name", "u.phone_number", "u.is_active",
	).
		From("faculty f").
		Join("users u ON u.id = f.user_id")
}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	var faculty models.Faculty
	var user models.User
	err := row.Scan(
		&faculty.ID,
		&faculty.UserID,
		&faculty.CollegeID,
		&faculty.Designation,
		&faculty.Status,
		&faculty.EducationDetails,
		&faculty.ExperienceYears,
		&faculty.Specialization,
		&faculty.CreatedAt,
		&faculty.UpdatedAt,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.IsActive,
	)
	if err != nil {
		return nil, err
	}
	user.ID = faculty.UserID
	user.RoleType = models.RoleFaculty
	faculty.User = &user
	return &faculty, nil
}

// CreateProfile inserts the faculty profile row using the given querier
func (r *FacultyRepository) CreateProfile(ctx context.Context, q Querier, faculty *models.Faculty) error {
	query := `
		INSERT INTO faculty (user_id, college_id, designation, status, education_details, experience_years, specialization)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		faculty.UserID,
		faculty.CollegeID,
		faculty.Designation,
		faculty.Status,
		faculty.EducationDetails,
		faculty.ExperienceYears,
		faculty.Specialization,
	).Scan(&faculty.ID, &faculty.CreatedAt, &faculty.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating faculty profile: %w", err)
	}
	return nil
}

// CreateWithUser creates the user account, the faculty profile and its
// subject assignments atomically.
func (r *FacultyRepository) CreateWithUser(ctx context.Context, userRepo *UserRepository, user *models.User, faculty *models.Faculty, subjectIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userID, err := userRepo.CreateUser(ctx, tx, user)
	if err != nil {
		return err
	}
	faculty.UserID = userID

	if err := r.CreateProfile(ctx, tx, faculty); err != nil {
		return err
	}
	if err := r.setSubjects(ctx, tx, faculty.ID, subjectIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing faculty creation: %w", err)
	}
	faculty.User = user
	return nil
}

func (r *FacultyRepository) setSubjects(ctx context.Context, q Querier, facultyID int64, subjectIDs []int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM faculty_subjects WHERE faculty_id = $1`, facultyID); err != nil {
		return fmt.Errorf("error clearing subject assignments: %w", err)
	}
	for _, subjectID := range subjectIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO faculty_subjects (faculty_id, subject_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			facultyID, subjectID,
		)
		if err != nil {
			return fmt.Errorf("error assigning subject %d: %w", subjectID, err)
		}
	}
	return nil
}

// GetByID retrieves a faculty member with user account and subjects
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.selectFacultyQuery().Where(squirrel.Eq{"f.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}

	subjects, err := r.getSubjects(ctx, faculty.ID)
	if err != nil {
		return nil, err
	}
	faculty.Subjects = subjects

	return faculty, nil
}

// GetByUserID retrieves a faculty profile by its user account ID
func (r *FacultyRepository) GetByUserID(ctx context.Context, userID int64) (*models.Faculty, error) {
	sql, args, err := r.selectFacultyQuery().Where(squirrel.Eq{"f.user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}

	subjects, err := r.getSubjects(ctx, faculty.ID)
	if err != nil {
		return nil, err
	}
	faculty.Subjects = subjects

	return faculty, nil
}

func (r *FacultyRepository) getSubjects(ctx context.Context, facultyID int64) ([]models.Subject, error) {
	query := `
		SELECT s.id, s.college_id, s.name, s.code, s.description, s.is_active, s.created_at, s.updated_at
		FROM subjects s
		JOIN faculty_subjects fs ON fs.subject_id = s.id
		WHERE fs.faculty_id = $1
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty subjects: %w", err)
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.CollegeID,
			&subject.Name,
			&subject.Code,
			&subject.Description,
			&subject.IsActive,
			&subject.CreatedAt,
			&subject.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// GetAll retrieves a filtered page of faculty, subjects included
func (r *FacultyRepository) GetAll(ctx context.Context, filter FacultyFilter, offset uint64, limit int) ([]*models.Faculty, int64, error) {
	conditions := squirrel.And{}
	if filter.CollegeID > 0 {
		conditions = append(conditions, squirrel.Eq{"f.college_id": filter.CollegeID})
	}
	if filter.Status != "" {
		conditions = append(conditions, squirrel.Eq{"f.status": filter.Status})
	}
	if filter.Designation != "" {
		conditions = append(conditions, squirrel.Eq{"f.designation": filter.Designation})
	}
	if filter.SubjectID > 0 {
		conditions = append(conditions, squirrel.Expr(
			"EXISTS(SELECT 1 FROM faculty_subjects fs WHERE fs.faculty_id = f.id AND fs.subject_id = ?)",
			filter.SubjectID,
		))
	}

	countBuilder := r.sb.Select("COUNT(*)").From("faculty f").Join("users u ON u.id = f.user_id")
	listBuilder := r.selectFacultyQuery()
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
		listBuilder = listBuilder.Where(conditions)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count faculty query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting faculty: %w", err)
	}

	listSQL, listArgs, err := listBuilder.
		OrderBy("u.last_name", "u.first_name").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list faculty query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing faculty: %w", err)
	}
	defer rows.Close()

	var members []*models.Faculty
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, faculty)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, faculty := range members {
		subjects, err := r.getSubjects(ctx, faculty.ID)
		if err != nil {
			return nil, 0, err
		}
		faculty.Subjects = subjects
	}

	return members, total, nil
}

// UpdateFields applies a sparse update to the faculty row
func (r *FacultyRepository) UpdateFields(ctx context.Context, q Querier, facultyID int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	setClause := ""
	args := make([]interface{}, 0, len(fields)+1)
	i := 1
	for column, value := range fields {
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("%s = $%d", column, i)
		args = append(args, value)
		i++
	}
	args = append(args, facultyID)

	query := fmt.Sprintf("UPDATE faculty SET %s, updated_at = NOW() WHERE id = $%d", setClause, i)

	cmdTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}

// UpdateWithUser applies sparse updates to the faculty row, its user row and
// optionally replaces the subject assignment set, in one transaction.
func (r *FacultyRepository) UpdateWithUser(ctx context.Context, userRepo *UserRepository, facultyID, userID int64, facultyFields, userFields map[string]interface{}, subjectIDs []int64, replaceSubjects bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.UpdateFields(ctx, tx, facultyID, facultyFields); err != nil {
		return err
	}
	if err := userRepo.UpdateUserFields(ctx, tx, userID, userFields); err != nil {
		return err
	}
	if replaceSubjects {
		if err := r.setSubjects(ctx, tx, facultyID, subjectIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// DeleteWithUser removes the faculty profile together with its user account,
// atomically. Subject assignments cascade.
func (r *FacultyRepository) DeleteWithUser(ctx context.Context, facultyID, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM faculty WHERE id = $1`, facultyID)
	if err != nil {
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting faculty account: %w", err)
	}

	return tx.Commit(ctx)
}
