package seeder

import (
	"context"
	"fmt"

	"taskmatch/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// DemoUsersSeeder creates a project manager and two employee accounts
// so a fresh install has something to log in with. Existing rows are
// left alone.
type DemoUsersSeeder struct{}

func (DemoUsersSeeder) Name() string { return "demo_users" }

func (DemoUsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "username", "full_name", "password_hash", "role"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "employees", "id", "user_id", "name", "email"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []struct {
		Email    string
		Username string
		FullName string
		Role     string
	}{
		{Email: "pm@taskmatch.local", Username: "pm", FullName: "Demo Manager", Role: "PM"},
		{Email: "alice@taskmatch.local", Username: "alice", FullName: "Alice Demo", Role: "EMPLOYEE"},
		{Email: "bob@taskmatch.local", Username: "bob", FullName: "Bob Demo", Role: "EMPLOYEE"},
	}

	err = database.WithinTx(ctx, db, func(tx database.Tx) error {
		for _, u := range users {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO users (id, email, username, full_name, password_hash, role)
				 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
				 ON CONFLICT (email) DO NOTHING`,
				u.Email, u.Username, u.FullName, string(hash), u.Role,
			)
			if err != nil {
				return err
			}

			if u.Role != "EMPLOYEE" {
				continue
			}
			_, err = tx.Exec(
				ctx,
				`INSERT INTO employees (id, user_id, name, email)
				 SELECT gen_random_uuid(), u.id, $2, $1 FROM users u
				 WHERE LOWER(u.email) = LOWER($1)
				 ON CONFLICT (email) DO NOTHING`,
				u.Email, u.FullName,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed demo users: %w", err)
	}
	return nil
}
