package handler

import (
	"errors"
	"strconv"
	"time"

	"taskmatch/internal/delivery/http/dto"
	"taskmatch/internal/delivery/http/middleware"
	"taskmatch/internal/domain/matching"
	"taskmatch/internal/domain/task"
	"taskmatch/internal/pkg/response"
	"taskmatch/internal/repository"
	"taskmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TaskHandler struct {
	uc      usecase.TaskUsecase
	matcher usecase.MatchingUsecase
	stats   usecase.DashboardUsecase
}

type createTaskRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	RequiredSkills []string   `json:"required_skills"`
	ProjectID      *uuid.UUID `json:"project_id"`
	StartDate      *time.Time `json:"start_date"`
	DueDate        *time.Time `json:"due_date"`
	Draft          bool       `json:"draft"`
}

type updateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Priority       *string    `json:"priority"`
	RequiredSkills []string   `json:"required_skills"`
	ProjectID      *uuid.UUID `json:"project_id"`
	StartDate      *time.Time `json:"start_date"`
	DueDate        *time.Time `json:"due_date"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status"`
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

type assignTaskRequest struct {
	EmployeeID uuid.UUID `json:"employee_id"`
}

type createTaskResponse struct {
	Task        dto.TaskResponse         `json:"task"`
	Suggestions []dto.SuggestionResponse `json:"suggestions"`
}

func NewTaskHandler(uc usecase.TaskUsecase, matcher usecase.MatchingUsecase, stats usecase.DashboardUsecase) *TaskHandler {
	return &TaskHandler{uc: uc, matcher: matcher, stats: stats}
}

// invalidateStats drops cached dashboard aggregates after a write.
func (h *TaskHandler) invalidateStats(c fiber.Ctx) {
	if h.stats != nil {
		h.stats.InvalidateStats(c.Context())
	}
}

func (h *TaskHandler) RegisterRoutes(r fiber.Router, pmOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)

	r.Post("/", h.Create, pmOnly)
	r.Post("/analyze", h.Analyze, pmOnly)
	r.Patch("/:id", h.Update, pmOnly)
	r.Put("/:id", h.Update, pmOnly)
	r.Patch("/:id/status", h.UpdateStatus)
	r.Delete("/:id", h.Delete, pmOnly)

	r.Get("/:id/matches", h.Matches, pmOnly)
	r.Post("/:id/assign", h.Assign, pmOnly)
}

func (h *TaskHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createTaskRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	detail, suggestions, err := h.uc.CreateTask(c.Context(), userID, usecase.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		RequiredSkills: req.RequiredSkills,
		ProjectID:      req.ProjectID,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		Draft:          req.Draft,
	})
	if err != nil {
		return mapTaskUsecaseError(err)
	}
	h.invalidateStats(c)

	res := createTaskResponse{
		Task:        dto.NewTaskResponse(detail),
		Suggestions: make([]dto.SuggestionResponse, 0, len(suggestions)),
	}
	for _, s := range suggestions {
		res.Suggestions = append(res.Suggestions, dto.NewSuggestionResponse(s))
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, res)
}

func (h *TaskHandler) Get(c fiber.Ctx) error {
	id, err := taskIDFromPath(c)
	if err != nil {
		return err
	}

	detail, err := h.uc.GetTask(c.Context(), id)
	if err != nil {
		return mapTaskUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTaskResponse(detail))
}

func (h *TaskHandler) List(c fiber.Ctx) error {
	filter, appErr := taskFilterFromQuery(c)
	if appErr != nil {
		return appErr
	}

	if raw := c.Query("assignee_id"); raw != "" {
		employeeID, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid assignee_id", nil, err)
		}
		list, err := h.uc.ListTasksByAssignee(c.Context(), employeeID)
		if err != nil {
			return mapTaskUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, taskListResponse(list))
	}

	list, err := h.uc.ListTasks(c.Context(), filter)
	if err != nil {
		return mapTaskUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, taskListResponse(list))
}

func (h *TaskHandler) Update(c fiber.Ctx) error {
	id, err := taskIDFromPath(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	detail, err := h.uc.UpdateTask(c.Context(), id, usecase.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		RequiredSkills: req.RequiredSkills,
		ProjectID:      req.ProjectID,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
	})
	if err != nil {
		return mapTaskUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTaskResponse(detail))
}

func (h *TaskHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := taskIDFromPath(c)
	if err != nil {
		return err
	}

	var req updateTaskStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	detail, err := h.uc.UpdateTaskStatus(c.Context(), id, task.Status(req.Status))
	if err != nil {
		return mapTaskUsecaseError(err)
	}
	h.invalidateStats(c)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTaskResponse(detail))
}

func (h *TaskHandler) Delete(c fiber.Ctx) error {
	id, err := taskIDFromPath(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteTask(c.Context(), id); err != nil {
		return mapTaskUsecaseError(err)
	}
	h.invalidateStats(c)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *TaskHandler) Analyze(c fiber.Ctx) error {
	var req analyzeTextRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	extracted := h.uc.AnalyzeText(c.Context(), req.Text)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewExtractedSkillResponses(extracted))
}

func (h *TaskHandler) Matches(c fiber.Ctx) error {
	id, err := taskIDFromPath(c)
	if err != nil {
		return err
	}

	limit := usecase.DefaultMatchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
		}
		limit = n
	}

	minScore := usecase.DefaultMatchMinScore
	if raw := c.Query("min_score"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 || f > 100 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid min_score", nil, err)
		}
		minScore = f
	}

	matches, err := h.matcher.MatchesForTask(c.Context(), id, limit, minScore)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	res := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		res = append(res, dto.NewMatchResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *TaskHandler) Assign(c fiber.Ctx) error {
	id, err := taskIDFromPath(c)
	if err != nil {
		return err
	}

	var req assignTaskRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.EmployeeID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "employee_id is required", nil, nil)
	}

	assignment, err := h.matcher.AssignTask(c.Context(), id, req.EmployeeID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	h.invalidateStats(c)
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewAssignmentResponse(assignment))
}

func taskIDFromPath(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid task id", nil, err)
	}
	return id, nil
}

func taskFilterFromQuery(c fiber.Ctx) (repository.TaskFilter, error) {
	var filter repository.TaskFilter

	if raw := c.Query("status"); raw != "" {
		status := task.Status(raw)
		if !status.Valid() {
			return filter, middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, nil)
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := matching.Priority(raw)
		switch priority {
		case matching.PriorityHigh, matching.PriorityMedium, matching.PriorityLow:
		default:
			return filter, middleware.NewAppError(fiber.StatusBadRequest, "Invalid priority", nil, nil)
		}
		filter.Priority = &priority
	}
	if raw := c.Query("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, middleware.NewAppError(fiber.StatusBadRequest, "Invalid project_id", nil, err)
		}
		filter.ProjectID = &id
	}
	if raw := c.Query("created_by"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, middleware.NewAppError(fiber.StatusBadRequest, "Invalid created_by", nil, err)
		}
		filter.CreatedBy = &id
	}
	return filter, nil
}

func taskListResponse(list []usecase.TaskDetail) []dto.TaskResponse {
	res := make([]dto.TaskResponse, 0, len(list))
	for _, d := range list {
		res = append(res, dto.NewTaskResponse(d))
	}
	return res
}

func mapTaskUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Task not found", nil, err)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidPriority),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status transition", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Task not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrTaskNotOpen):
		return middleware.NewAppError(fiber.StatusConflict, "Task is not open for assignment", nil, err)
	case errors.Is(err, usecase.ErrEmployeeOverloaded):
		return middleware.NewAppError(fiber.StatusConflict, "Employee is at full capacity", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
