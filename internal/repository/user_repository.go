package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// UserRepositoryInterface defines the interface for user reference data.
// The identity service owns user records; this API mirrors the identity
// fields it needs for reference expansion.
type UserRepositoryInterface interface {
	Ensure(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UserRepository handles user reference rows
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{pool: pool}
}

// Ensure upserts the mirrored identity fields for a user. Called with the
// authenticated principal before writes that reference the user row, so a
// token minted by the identity service is enough to act here.
func (r *UserRepository) Ensure(ctx context.Context, user *models.User) (err error) {
	done := timer("users.upsert")
	defer func() { done(err) }()

	query := `
		INSERT INTO users (id, name, email, avatar, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, role = EXCLUDED.role`

	_, err = r.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.Avatar, user.Role)
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}
	return nil
}

// GetByID fetches a single user row
func (r *UserRepository) GetByID(ctx context.Context, id string) (user *models.User, err error) {
	done := timer("users.get")
	defer func() { done(err) }()

	query := `
		SELECT id, name, email, avatar, role, created_at
		FROM users WHERE id = $1`

	user = &models.User{}
	err = r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Avatar, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		return nil, notFoundIfNoRows(err, "user")
	}
	return user, nil
}
