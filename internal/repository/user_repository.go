package repository

import (
	"context"
	"database/sql"
	"errors"

	"eqwip/internal/database"
	"eqwip/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts the user and the blank profile row for its role.
func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, name, role, password_hash) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Name, string(u.Role), u.PasswordHash,
	)
	if err != nil {
		return err
	}

	switch u.Role {
	case user.RoleCandidate:
		_, err = r.db.Exec(ctx,
			`INSERT INTO candidate_profiles (id, user_id, preferences) VALUES ($1, $2, '{}'::jsonb)`,
			uuid.New(), u.ID,
		)
	case user.RoleEmployer:
		_, err = r.db.Exec(ctx,
			`INSERT INTO employer_profiles (id, user_id, company_name) VALUES ($1, $2, $3)`,
			uuid.New(), u.ID, u.Name,
		)
	}
	return err
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, COALESCE(name, ''), role, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, COALESCE(name, ''), role, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
