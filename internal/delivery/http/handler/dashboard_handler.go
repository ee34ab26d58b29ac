package handler

import (
	"errors"

	"taskmatch/internal/delivery/http/middleware"
	"taskmatch/internal/domain/user"
	"taskmatch/internal/pkg/response"
	"taskmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// DashboardHandler serves role dependent stats: project managers get the
// team-wide view, employees get their personal one.
type DashboardHandler struct {
	uc        usecase.DashboardUsecase
	employees usecase.EmployeeUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase, employees usecase.EmployeeUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc, employees: employees}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Stats)
}

func (h *DashboardHandler) Stats(c fiber.Ctx) error {
	role, _ := c.Locals(middleware.CtxRoleKey).(string)
	if role == string(user.RolePM) {
		stats, err := h.uc.ManagerStats(c.Context())
		if err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
	}

	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	summary, err := h.employees.GetEmployeeByUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrEmployeeNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Employee profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	stats, err := h.uc.EmployeeStats(c.Context(), summary.Employee.ID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}
