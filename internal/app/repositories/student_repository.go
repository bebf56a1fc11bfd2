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
	"github.com/medprep/campus/internal/pkg/dberrors"
)

// StudentFilter narrows student listings. Zero values mean "no filter".
type StudentFilter struct {
	CollegeID int64
	BatchID   int64
	Search    string
	IsActive  *bool
}

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StudentRepository) selectStudentQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.user_id", "s.college_id", "s.batch_id", "s.roll_no",
		"s.phone_number", "s.date_of_birth", "s.address",
		"s.emergency_contact", "s.emergency_contact_name", "s.admission_date",
		"s.is_active", "s.created_at", "s.updated_at",
		"u.username", "u.email", "u.first_name", "u.last_name", "u.is_active",
	).
		From("students s").
		Join("users u ON u.id = s.user_id")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var user models.User
	err := row.Scan(
		&student.ID,
		&student.UserID,
		&student.CollegeID,
		&student.BatchID,
		&student.RollNo,
		&student.PhoneNumber,
		&student.DateOfBirth,
		&student.Address,
		&student.EmergencyContact,
		&student.EmergencyContactName,
		&student.AdmissionDate,
		&student.IsActive,
		&student.CreatedAt,
		&student.UpdatedAt,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
	)
	if err != nil {
		return nil, err
	}
	user.ID = student.UserID
	user.RoleType = models.RoleStudent
	student.User = &user
	return &student, nil
}

// CreateProfile inserts the student profile row using the given querier, so
// the caller can bundle it with the user insert in one transaction.
func (r *StudentRepository) CreateProfile(ctx context.Context, q Querier, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, college_id, batch_id, roll_no, phone_number, date_of_birth, address,
			emergency_contact, emergency_contact_name, admission_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		student.UserID,
		student.CollegeID,
		student.BatchID,
		student.RollNo,
		student.PhoneNumber,
		student.DateOfBirth,
		student.Address,
		student.EmergencyContact,
		student.EmergencyContactName,
		student.AdmissionDate,
		student.IsActive,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_roll_no_key") {
			return apperrors.ErrRollNoAlreadyExists
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}
	return nil
}

// CreateWithUser creates the user account and the student profile
// atomically. On any failure neither row is persisted.
func (r *StudentRepository) CreateWithUser(ctx context.Context, userRepo UserWriter, user *models.User, student *models.Student) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userID, err := userRepo.CreateUser(ctx, tx, user)
	if err != nil {
		return err
	}
	student.UserID = userID

	if err := r.CreateProfile(ctx, tx, student); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing student creation: %w", err)
	}
	student.User = user
	return nil
}

// GetByID retrieves a student with its user account
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudentQuery().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetAll retrieves a filtered page of students
func (r *StudentRepository) GetAll(ctx context.Context, filter StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	conditions := squirrel.And{}
	if filter.CollegeID > 0 {
		conditions = append(conditions, squirrel.Eq{"s.college_id": filter.CollegeID})
	}
	if filter.BatchID > 0 {
		conditions = append(conditions, squirrel.Eq{"s.batch_id": filter.BatchID})
	}
	if filter.IsActive != nil {
		conditions = append(conditions, squirrel.Eq{"s.is_active": *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, squirrel.Or{
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.last_name": pattern},
			squirrel.ILike{"s.roll_no": pattern},
		})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("students s").Join("users u ON u.id = s.user_id")
	listBuilder := r.selectStudentQuery()
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
		listBuilder = listBuilder.Where(conditions)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	listSQL, listArgs, err := listBuilder.
		OrderBy("s.roll_no").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// RollNoExists checks global roll number uniqueness, optionally excluding one
// student (for updates).
func (r *StudentRepository) RollNoExists(ctx context.Context, rollNo string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE roll_no = $1 AND id <> $2)`,
		rollNo, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking roll number: %w", err)
	}
	return exists, nil
}

// UpdateFields applies a sparse update to the student row; user-account
// fields travel separately through UserRepository. Both run inside one
// transaction when the caller passes updates for each.
func (r *StudentRepository) UpdateFields(ctx context.Context, q Querier, studentID int64, fields map[string]interface{}) error {
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
	args = append(args, studentID)

	query := fmt.Sprintf("UPDATE students SET %s, updated_at = NOW() WHERE id = $%d", setClause, i)

	cmdTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_roll_no_key") {
			return apperrors.ErrRollNoAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateWithUser applies sparse updates to the student row and its user row
// in one transaction.
func (r *StudentRepository) UpdateWithUser(ctx context.Context, userRepo UserWriter, studentID, userID int64, studentFields, userFields map[string]interface{}) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.UpdateFields(ctx, tx, studentID, studentFields); err != nil {
		return err
	}
	if err := userRepo.UpdateUserFields(ctx, tx, userID, userFields); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteWithUser removes the student profile together with its user account
// and refresh tokens, atomically.
func (r *StudentRepository) DeleteWithUser(ctx context.Context, studentID, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting student account: %w", err)
	}

	return tx.Commit(ctx)
}
