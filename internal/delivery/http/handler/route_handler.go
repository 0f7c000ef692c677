package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/pkg/errors"
	"github.com/tour-navigation/internal/pkg/utils"
	"github.com/tour-navigation/internal/pkg/validator"
	"github.com/tour-navigation/internal/usecase"
	"github.com/tour-navigation/internal/usecase/dto"
)

// RouteHandler - обработчик разовых запросов маршрута
type RouteHandler struct {
	acquisitionUC *usecase.RouteAcquisitionUseCase
	logger        *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(acquisitionUC *usecase.RouteAcquisitionUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		acquisitionUC: acquisitionUC,
		logger:        logger,
	}
}

// GetRoute - пеший маршрут между двумя точками.
// Запрос не может закончиться отказом: при недоступности всех
// провайдеров отдаётся синтетический маршрут.
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	route := h.acquisitionUC.Acquire(c.Context(), req.Start.ToPoint(), req.End.ToPoint())

	geometry, err := routeGeometry(route.Points)
	if err != nil {
		h.logger.Error("Failed to encode route geometry", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	instructions := make([]dto.InstructionResponse, len(route.Instructions))
	for i, in := range route.Instructions {
		instructions[i] = dto.InstructionResponse{
			Type:     in.Type,
			Text:     in.Text,
			Distance: in.Distance,
			Duration: in.Duration,
			Index:    in.Index,
		}
	}

	return utils.SendSuccess(c, &dto.RouteResponse{
		Geometry:     geometry,
		Distance:     route.Distance,
		Duration:     route.Duration,
		Instructions: instructions,
		Source:       route.Source,
	}, &utils.Meta{Total: len(route.Points)})
}
