package handler

import (
	"taskmatch/internal/delivery/http/dto"
	"taskmatch/internal/delivery/http/middleware"
	"taskmatch/internal/pkg/response"
	"taskmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillCatalogUsecase
}

func NewSkillHandler(uc usecase.SkillCatalogUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	entries, err := h.uc.ListCatalog(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	res := make([]dto.SkillCatalogResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, dto.NewSkillCatalogResponse(e))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
