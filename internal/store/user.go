package store

import (
	"bloodlink/internal/utils"
	"bloodlink/pkg/types"
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userTableName = "bloodlink.users"

var userColumns = utils.StructTagValues(types.UserProfile{})

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) User(ctx context.Context, userID string) (*types.UserProfile, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var user types.UserProfile
	err = pgxscan.Get(ctx, r.pool, &user, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// UpsertUser records the identity profile observed at login. Role is left
// untouched for existing rows so admin grants survive sign-ins.
func (r *UserRepository) UpsertUser(ctx context.Context, user *types.UserProfile) error {

	now := time.Now()
	if user.Role == "" {
		user.Role = types.UserRoleUser
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO bloodlink.users (id, email, display_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET email = EXCLUDED.email, display_name = EXCLUDED.display_name, updated_at = now()`

	_, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.DisplayName, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}
