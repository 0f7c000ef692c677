package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/pkg/errors"
	"github.com/tour-navigation/internal/pkg/utils"
	"github.com/tour-navigation/internal/usecase"
	"github.com/tour-navigation/internal/usecase/dto"
)

// TourHandler - обработчик прохождения туров
type TourHandler struct {
	tourUC *usecase.TourProgressionUseCase
	logger *zap.Logger
}

// NewTourHandler - создание нового TourHandler
func NewTourHandler(tourUC *usecase.TourProgressionUseCase, logger *zap.Logger) *TourHandler {
	return &TourHandler{
		tourUC: tourUC,
		logger: logger,
	}
}

// Activate - активация прохождения тура
func (h *TourHandler) Activate(c *fiber.Ctx) error {
	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	progress, err := h.tourUC.Activate(c.Context(), tourID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, progressResponse(tourID, progress), nil)
}

// GetProgress - текущее состояние прохождения
func (h *TourHandler) GetProgress(c *fiber.Ctx) error {
	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	progress, err := h.tourUC.Progress(tourID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, progressResponse(tourID, progress), nil)
}

// MarkVisited - отметка текущей остановки посещённой
func (h *TourHandler) MarkVisited(c *fiber.Ctx) error {
	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	progress, err := h.tourUC.MarkCurrentVisited(c.Context(), tourID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, progressResponse(tourID, progress), nil)
}

// Advance - переход к следующей остановке
func (h *TourHandler) Advance(c *fiber.Ctx) error {
	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	progress, err := h.tourUC.Advance(c.Context(), tourID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, progressResponse(tourID, progress), nil)
}

// Deactivate - завершение прохождения тура
func (h *TourHandler) Deactivate(c *fiber.Ctx) error {
	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	h.tourUC.Deactivate(tourID)

	return utils.SendSuccess(c, fiber.Map{"deactivated": true}, nil)
}

func progressResponse(tourID uuid.UUID, progress *usecase.TourProgress) *dto.TourProgressResponse {
	return &dto.TourProgressResponse{
		TourID:     tourID.String(),
		Phase:      progress.Phase,
		Current:    dto.NewWaypointResponse(progress.Current),
		Next:       dto.NewWaypointResponse(progress.Next),
		Completion: progress.Completion(),
	}
}
