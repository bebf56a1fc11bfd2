package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	TokenRepository     *TokenRepository
	CollegeRepository   *CollegeRepository
	BatchRepository     *BatchRepository
	StudentRepository   *StudentRepository
	FacultyRepository   *FacultyRepository
	SubjectRepository   *SubjectRepository
	QuestionRepository  *QuestionRepository
	AnalyticsRepository *AnalyticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		TokenRepository:     NewTokenRepository(db),
		CollegeRepository:   NewCollegeRepository(db),
		BatchRepository:     NewBatchRepository(db),
		StudentRepository:   NewStudentRepository(db),
		FacultyRepository:   NewFacultyRepository(db),
		SubjectRepository:   NewSubjectRepository(db),
		QuestionRepository:  NewQuestionRepository(db),
		AnalyticsRepository: NewAnalyticsRepository(db),
	}
}
