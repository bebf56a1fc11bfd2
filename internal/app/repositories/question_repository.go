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

// QuestionFilter narrows question listings. Zero values mean "no filter".
type QuestionFilter struct {
	CollegeID  int64
	SubjectID  int64
	ModuleID   int64
	Difficulty string
	Type       string
}

// QuestionRepository handles database operations for the question bank
type QuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *QuestionRepository) selectQuestionQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"id", "college_id", "subject_id", "module_id", "question_text",
		"question_type", "difficulty", "option_a", "option_b", "option_c",
		"option_d", "correct_answer", "explanation", "video_url", "image_url",
		"created_by", "is_active", "created_at", "updated_at",
	).From("question_bank")
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	err := row.Scan(
		&q.ID,
		&q.CollegeID,
		&q.SubjectID,
		&q.ModuleID,
		&q.QuestionText,
		&q.QuestionType,
		&q.Difficulty,
		&q.OptionA,
		&q.OptionB,
		&q.OptionC,
		&q.OptionD,
		&q.CorrectAnswer,
		&q.Explanation,
		&q.VideoURL,
		&q.ImageURL,
		&q.CreatedBy,
		&q.IsActive,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create inserts a new question
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	query := `
		INSERT INTO question_bank (college_id, subject_id, module_id, question_text, question_type, difficulty,
			option_a, option_b, option_c, option_d, correct_answer, explanation, video_url, image_url, created_by, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		question.CollegeID,
		question.SubjectID,
		question.ModuleID,
		question.QuestionText,
		question.QuestionType,
		question.Difficulty,
		question.OptionA,
		question.OptionB,
		question.OptionC,
		question.OptionD,
		question.CorrectAnswer,
		question.Explanation,
		question.VideoURL,
		question.ImageURL,
		question.CreatedBy,
		question.IsActive,
	).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}
	return nil
}

// GetByID retrieves a question by ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	sql, args, err := r.selectQuestionQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get question query: %w", err)
	}

	question, err := scanQuestion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}
	return question, nil
}

// GetAll retrieves a filtered page of questions
func (r *QuestionRepository) GetAll(ctx context.Context, filter QuestionFilter, offset uint64, limit int) ([]*models.Question, int64, error) {
	conditions := squirrel.And{}
	if filter.CollegeID > 0 {
		conditions = append(conditions, squirrel.Eq{"college_id": filter.CollegeID})
	}
	if filter.SubjectID > 0 {
		conditions = append(conditions, squirrel.Eq{"subject_id": filter.SubjectID})
	}
	if filter.ModuleID > 0 {
		conditions = append(conditions, squirrel.Eq{"module_id": filter.ModuleID})
	}
	if filter.Difficulty != "" {
		conditions = append(conditions, squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.Type != "" {
		conditions = append(conditions, squirrel.Eq{"question_type": filter.Type})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("question_bank")
	listBuilder := r.selectQuestionQuery()
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
		listBuilder = listBuilder.Where(conditions)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count questions query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting questions: %w", err)
	}

	listSQL, listArgs, err := listBuilder.
		OrderBy("id DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list questions query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// Update replaces the mutable fields of a question
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	query := `
		UPDATE question_bank
		SET module_id = $1, question_text = $2, question_type = $3, difficulty = $4,
			option_a = $5, option_b = $6, option_c = $7, option_d = $8, correct_answer = $9,
			explanation = $10, video_url = $11, image_url = $12, is_active = $13, updated_at = NOW()
		WHERE id = $14
	`

	cmdTag, err := r.db.Exec(ctx, query,
		question.ModuleID,
		question.QuestionText,
		question.QuestionType,
		question.Difficulty,
		question.OptionA,
		question.OptionB,
		question.OptionC,
		question.OptionD,
		question.CorrectAnswer,
		question.Explanation,
		question.VideoURL,
		question.ImageURL,
		question.IsActive,
		question.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating question: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// Delete removes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM question_bank WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}
