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

type EmployeeHandler struct {
	uc     usecase.EmployeeUsecase
	skills usecase.SkillRecordUsecase
	cvs    usecase.CVUsecase
	stats  usecase.DashboardUsecase
}

type createEmployeeRequest struct {
	UserID    uuid.UUID  `json:"user_id"`
	ManagerID *uuid.UUID `json:"manager_id"`
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	Email     string     `json:"email"`
}

type updateEmployeeRequest struct {
	Name      *string    `json:"name"`
	Title     *string    `json:"title"`
	Email     *string    `json:"email"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

type addSkillRequest struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type uploadCVRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

type analyzeDocumentRequest struct {
	Text string `json:"text"`
}

func NewEmployeeHandler(uc usecase.EmployeeUsecase, skills usecase.SkillRecordUsecase, cvs usecase.CVUsecase, stats usecase.DashboardUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, skills: skills, cvs: cvs, stats: stats}
}

func (h *EmployeeHandler) invalidateStats(c fiber.Ctx) {
	if h.stats != nil {
		h.stats.InvalidateStats(c.Context())
	}
}

func (h *EmployeeHandler) RegisterRoutes(r fiber.Router, pmOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/me", h.Me)

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Get("/:id/skills", h.ListSkills)
	r.Get("/:id/cv", h.LatestCV)

	r.Post("/", h.Create, pmOnly)
	r.Post("/analyze", h.AnalyzeDocument, pmOnly)
	r.Patch("/:id", h.Update, pmOnly)
	r.Put("/:id", h.Update, pmOnly)
	r.Delete("/:id", h.Delete, pmOnly)
	r.Post("/:id/skills", h.AddSkill)
	r.Delete("/:id/skills/:recordId", h.DeleteSkill)
	r.Post("/:id/cv", h.UploadCV)
	r.Post("/:id/analyze", h.Analyze)
}

func (h *EmployeeHandler) List(c fiber.Ctx) error {
	var managerID *uuid.UUID
	if raw := c.Query("manager_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid manager_id", nil, err)
		}
		managerID = &id
	}

	list, err := h.uc.ListEmployees(c.Context(), managerID)
	if err != nil {
		return mapEmployeeUsecaseError(err)
	}

	res := make([]dto.EmployeeResponse, 0, len(list))
	for _, s := range list {
		res = append(res, dto.NewEmployeeResponse(s))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *EmployeeHandler) Get(c fiber.Ctx) error {
	id, err := employeeIDFromPath(c)
	if err != nil {
		return err
	}

	summary, err := h.uc.GetEmployee(c.Context(), id)
	if err != nil {
		return mapEmployeeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeResponse(summary))
}

func (h *EmployeeHandler) Me(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	summary, err := h.uc.GetEmployeeByUser(c.Context(), userID)
	if err != nil {
		return mapEmployeeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeResponse(summary))
}

func (h *EmployeeHandler) Create(c fiber.Ctx) error {
	var req createEmployeeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	summary, err := h.uc.CreateEmployee(c.Context(), usecase.CreateEmployeeInput{
		UserID:    req.UserID,
		ManagerID: req.ManagerID,
		Name:      req.Name,
		Title:     req.Title,
		Email:     req.Email,
	})
	if err != nil {
		return mapEmployeeUsecaseError(err)
	}
	h.invalidateStats(c)
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewEmployeeResponse(summary))
}

func (h *EmployeeHandler) Update(c fiber.Ctx) error {
	id, err := employeeIDFromPath(c)
	if err != nil {
		return err
	}

	var req updateEmployeeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	summary, err := h.uc.UpdateEmployee(c.Context(), id, usecase.UpdateEmployeeInput{
		Name:      req.Name,
		Title:     req.Title,
		Email:     req.Email,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return mapEmployeeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeResponse(summary))
}

func (h *EmployeeHandler) Delete(c fiber.Ctx) error {
	id, err := employeeIDFromPath(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteEmployee(c.Context(), id); err != nil {
		return mapEmployeeUsecaseError(err)
	}
	h.invalidateStats(c)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *EmployeeHandler) ListSkills(c fiber.Ctx) error {
	id, err := employeeIDFromPath(c)
	if err != nil {
		return err
	}

	recs, err := h.skills.ListSkills(c.Context(), id)
	if err != nil {
		return mapSkillRecordUsecaseError(err)
	}

	res := make([]dto.SkillRecordResponse, 0, len(recs))
	for _, rec := range recs {
		res = append(res, dto.NewSkillRecordResponse(rec))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *EmployeeHandler) AddSkill(c fiber.Ctx) error {
	id, err := employeeIDFromPath(c)
	if err != nil {
		return err
	}

	var req addSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, err := h.skills.AddManualSkill(c.Context(), id, usecase.AddSkillRecordInput{
		Name:       req.Name,
		Confidence: req.Confidence,
	})
	if err != nil {
		return mapSkillRecordUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewSkillRecordResponse(rec))
}

func (h *EmployeeHandler) DeleteSkill(c fiber.Ctx) error {
	id, err := employeeIDFromPath(c)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(c.Params("recordId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid record id", nil, err)
	}

	if err := h.skills.DeleteSkill(c.Context(), id, recordID); err != nil {
		return mapSkillRecordUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *EmployeeHandler) UploadCV(c fiber.Ctx) error {
	id, err := employeeIDFromPath(c)
	if err != nil {
		return err
	}

	var req uploadCVRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	doc, err := h.cvs.UploadCV(c.Context(), id, req.Filename, req.Text)
	if err != nil {
		return mapCVUsecaseError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageOK, dto.NewCVDocumentResponse(doc))
}

func (h *EmployeeHandler) LatestCV(c fiber.Ctx) error {
	id, err := employeeIDFromPath(c)
	if err != nil {
		return err
	}

	doc, err := h.cvs.LatestCV(c.Context(), id)
	if err != nil {
		return mapCVUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCVDocumentResponse(doc))
}

func (h *EmployeeHandler) Analyze(c fiber.Ctx) error {
	id, err := employeeIDFromPath(c)
	if err != nil {
		return err
	}

	doc, err := h.cvs.Reanalyze(c.Context(), id)
	if err != nil {
		return mapCVUsecaseError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageOK, dto.NewCVDocumentResponse(doc))
}

func (h *EmployeeHandler) AnalyzeDocument(c fiber.Ctx) error {
	var req analyzeDocumentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	profile, err := h.uc.AnalyzeDocument(c.Context(), req.Text)
	if err != nil {
		return mapEmployeeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDocumentProfileResponse(profile))
}

func employeeIDFromPath(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid employee id", nil, err)
	}
	return id, nil
}

func mapEmployeeUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already in use", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapSkillRecordUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already exists", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidConfidence):
		return middleware.NewAppError(fiber.StatusBadRequest, "Confidence must be between 0 and 1", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapCVUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCVNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "No CV uploaded", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrQueueFull):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Processing queue full", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
