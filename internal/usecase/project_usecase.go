package usecase

import (
	"context"
	"errors"
	"strings"

	"taskmatch/internal/domain/task"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
)

type CreateProjectInput struct {
	Title       string
	Description string
}

type ProjectUsecase interface {
	CreateProject(ctx context.Context, managerID uuid.UUID, in CreateProjectInput) (task.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (task.Project, error)
	ListProjects(ctx context.Context) ([]task.Project, error)
}

type Projects struct {
	projects repository.ProjectRepository
}

func NewProjectUsecase(projects repository.ProjectRepository) *Projects {
	return &Projects{projects: projects}
}

func (u *Projects) CreateProject(ctx context.Context, managerID uuid.UUID, in CreateProjectInput) (task.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || managerID == uuid.Nil {
		return task.Project{}, ErrInvalidInput
	}

	created, err := u.projects.Create(ctx, task.Project{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		ManagerID:   managerID,
		Status:      "ACTIVE",
	})
	if err != nil {
		return task.Project{}, ErrInternal
	}
	return created, nil
}

func (u *Projects) GetProject(ctx context.Context, id uuid.UUID) (task.Project, error) {
	p, err := u.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return task.Project{}, ErrProjectNotFound
		}
		return task.Project{}, ErrInternal
	}
	return p, nil
}

func (u *Projects) ListProjects(ctx context.Context) ([]task.Project, error) {
	out, err := u.projects.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
