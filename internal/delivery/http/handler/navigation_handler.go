package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/pkg/errors"
	"github.com/tour-navigation/internal/pkg/utils"
	"github.com/tour-navigation/internal/pkg/validator"
	"github.com/tour-navigation/internal/usecase"
	"github.com/tour-navigation/internal/usecase/dto"
)

// NavigationHandler - обработчик навигационных сессий
type NavigationHandler struct {
	navigationUC *usecase.NavigationUseCase
	logger       *zap.Logger
}

// NewNavigationHandler - создание нового NavigationHandler
func NewNavigationHandler(navigationUC *usecase.NavigationUseCase, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		navigationUC: navigationUC,
		logger:       logger,
	}
}

// StartSession - открытие навигационной сессии.
// Ответ приходит сразу: пока настоящий маршрут запрашивается в фоне,
// клиент получает синтетический кадр.
func (h *NavigationHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartNavigationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	sessionID, frame, err := h.navigationUC.Start(c.Context(), req.Origin.ToPoint(), req.Destination.ToPoint())
	if err != nil {
		return utils.SendError(c, err)
	}

	resp, err := frameResponse(sessionID, frame)
	if err != nil {
		h.logger.Error("Failed to encode frame", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: resp})
}

// UpdatePosition - обновление живой позиции в рамках сессии
func (h *NavigationHandler) UpdatePosition(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.PositionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	frame, err := h.navigationUC.OnPositionUpdate(c.Context(), sessionID, req.Position.ToPoint())
	if err != nil {
		return utils.SendError(c, err)
	}

	resp, err := frameResponse(sessionID, frame)
	if err != nil {
		h.logger.Error("Failed to encode frame", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	return utils.SendSuccess(c, resp, nil)
}

// StopSession - закрытие навигационной сессии
func (h *NavigationHandler) StopSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.navigationUC.Stop(c.Context(), sessionID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"stopped": true}, nil)
}

func frameResponse(sessionID uuid.UUID, frame domain.NavigationFrame) (*dto.NavigationFrameResponse, error) {
	geometry, err := routeGeometry(frame.RouteGeometry)
	if err != nil {
		return nil, err
	}

	return &dto.NavigationFrameResponse{
		SessionID:         sessionID.String(),
		InstructionText:   frame.InstructionText,
		InstructionType:   frame.InstructionType,
		RemainingDistance: frame.RemainingDistance,
		RemainingDuration: frame.RemainingDuration,
		RouteGeometry:     geometry,
		Arrived:           frame.Arrived,
		Rerouting:         frame.Rerouting,
	}, nil
}
