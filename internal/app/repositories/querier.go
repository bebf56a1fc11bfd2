package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medprep/campus/internal/app/models"
)

// Querier is the subset of pgx operations implemented by both *pgxpool.Pool
// and pgx.Tx. Repository methods that must compose into a caller-owned
// transaction take a Querier instead of using the pool directly.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserWriter is the slice of user persistence that profile repositories
// compose into their transactions.
type UserWriter interface {
	CreateUser(ctx context.Context, q Querier, user *models.User) (int64, error)
	UpdateUserFields(ctx context.Context, q Querier, userID int64, fields map[string]interface{}) error
}
