package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, "email", email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, "id", id)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, name) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.Name).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", storeErr(err))
	}
	return nil
}

// getUser looks a user up by a single column. A missing or soft-deleted
// user comes back as nil, not an error.
func (r *UserRepository) getUser(ctx context.Context, column string, value string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT id, email, name, created_at FROM users WHERE %s = $1 AND deleted_at IS NULL`, column)

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, storeErr(err))
	}
	return user, nil
}
