package repository

import (
	"context"
	"database/sql"
	"errors"

	"taskmatch/internal/database"
	"taskmatch/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, username, full_name, password_hash, role, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, username, full_name, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.Username, u.FullName, u.PasswordHash, string(u.Role),
	)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmailOrUsername(ctx context.Context, identifier string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE LOWER(email) = LOWER($1) OR LOWER(username) = LOWER($1)
		 LIMIT 1`,
		identifier,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET email = $1, username = $2, full_name = $3, password_hash = $4, updated_at = NOW()
		 WHERE id = $5`,
		u.Email, u.Username, u.FullName, u.PasswordHash, u.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var taken bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND id <> $2)`,
		email, excludeID,
	)
	if err := row.Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
