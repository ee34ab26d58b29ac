package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"taskmatch/internal/domain/user"

	"github.com/google/uuid"
)

type memUserRepo struct {
	users map[uuid.UUID]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]user.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUserRepo) GetByEmailOrUsername(_ context.Context, identifier string) (user.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, identifier) || strings.EqualFold(u.Username, identifier) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) EmailTaken(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	for _, u := range m.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func TestRegister_DefaultsToEmployeeRole(t *testing.T) {
	svc := NewService(newMemUserRepo())

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Alice@Example.com",
		Username: "alice",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Role != user.RoleEmployee {
		t.Errorf("role = %q, want EMPLOYEE", u.Role)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", u.Email)
	}
	if u.PasswordHash != "" {
		t.Errorf("password hash leaked in response")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewService(repo)

	in := RegisterInput{Email: "alice@example.com", Username: "alice", Password: "supersecret"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	in.Username = "alice2"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := NewService(newMemUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "short",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	svc := NewService(newMemUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "supersecret",
		Role:     "ADMIN",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogin_ByEmailAndUsername(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "supersecret",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	for _, identifier := range []string{"alice@example.com", "alice", "ALICE"} {
		u, err := svc.Login(context.Background(), LoginInput{Identifier: identifier, Password: "supersecret"})
		if err != nil {
			t.Fatalf("login with %q: %v", identifier, err)
		}
		if u.Username != "alice" {
			t.Errorf("login with %q returned %q", identifier, u.Username)
		}
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "supersecret",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{Identifier: "alice", Password: "wrongpass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, err = svc.Login(context.Background(), LoginInput{Identifier: "nobody", Password: "supersecret"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
