package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"multitrackscheduling/internal/domain"

	"github.com/lib/pq"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.salt, u.name, u.created_at, u.updated_at,
			COALESCE(ARRAY(SELECT ur.role FROM user_roles ur WHERE ur.user_id = u.id ORDER BY ur.role), '{}')
		FROM users u
		WHERE u.email = $1
	`
	return r.getOne(ctx, query, strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.salt, u.name, u.created_at, u.updated_at,
			COALESCE(ARRAY(SELECT ur.role FROM user_roles ur WHERE ur.user_id = u.id ORDER BY ur.role), '{}')
		FROM users u
		WHERE u.id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	var roles []string
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.Name,
		&u.CreatedAt, &u.UpdatedAt, pq.Array(&roles))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	for _, role := range roles {
		u.Roles = append(u.Roles, domain.Role(role))
	}
	return u, nil
}

func (r *userRepository) ListIDsByRole(ctx context.Context, role domain.Role) ([]string, error) {
	query := `
		SELECT user_id
		FROM user_roles
		WHERE role = $1
		ORDER BY user_id
	`
	rows, err := r.DB.QueryContext(ctx, query, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
