package handler

import (
	"errors"

	"taskmatch/internal/delivery/http/dto"
	"taskmatch/internal/delivery/http/middleware"
	"taskmatch/internal/pkg/response"
	"taskmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router, pmOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create, pmOnly)
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	project, err := h.uc.CreateProject(c.Context(), userID, usecase.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewProjectResponse(project))
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid project id", nil, err)
	}

	project, err := h.uc.GetProject(c.Context(), id)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectResponse(project))
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	list, err := h.uc.ListProjects(c.Context())
	if err != nil {
		return mapProjectUsecaseError(err)
	}

	res := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		res = append(res, dto.NewProjectResponse(p))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapProjectUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
