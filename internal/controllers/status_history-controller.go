package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/services"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"
)

type StatusHistoryController struct {
	historyService services.StatusHistoryServiceInterface
	logger         *zap.Logger
}

func NewStatusHistoryController(historyService services.StatusHistoryServiceInterface, logger *zap.Logger) *StatusHistoryController {
	return &StatusHistoryController{historyService: historyService, logger: logger}
}

func (c *StatusHistoryController) GetByEquipmentID(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.historyService.GetByEquipmentID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "status history fetched", http.StatusOK)
}

// GetHistories lists status history across a factory's fleet, scoped by
// filter[factory_id] for admin sessions and by the session's own factory
// otherwise.
func (c *StatusHistoryController) GetHistories(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	var factoryID uint64
	if raw, ok := filter.Filter["factory_id"].(string); ok {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "invalid factory_id", err, nil),
				c.logger)
		}
		factoryID = id
	}

	res, err := c.historyService.GetByFactoryID(ctx.Request().Context(), factoryID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "status history fetched", http.StatusOK)
}

func (c *StatusHistoryController) CreateHistory(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateStatusHistoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.historyService.CreateHistory(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("status change failed", zap.Uint64("equipment_id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "status changed", http.StatusCreated)
}

func (c *StatusHistoryController) UpdateHistory(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateStatusHistoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.historyService.UpdateHistory(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "status history updated", http.StatusOK)
}

func (c *StatusHistoryController) DeleteHistory(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.historyService.DeleteHistory(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "status history deleted", http.StatusOK)
}
