package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/services"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"
)

type MaintenanceLogController struct {
	logService services.MaintenanceLogServiceInterface
	logger     *zap.Logger
}

func NewMaintenanceLogController(logService services.MaintenanceLogServiceInterface, logger *zap.Logger) *MaintenanceLogController {
	return &MaintenanceLogController{logService: logService, logger: logger}
}

func (c *MaintenanceLogController) GetLogs(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.logService.GetLogs(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "maintenance logs fetched", http.StatusOK, total)
}

func (c *MaintenanceLogController) FindLog(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.logService.FindLog(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "maintenance log found", http.StatusOK)
}

func (c *MaintenanceLogController) CreateLog(ctx echo.Context) error {
	var payload dto.CreateMaintenanceLogDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.logService.CreateLog(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("maintenance log create failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "maintenance log created", http.StatusCreated)
}

func (c *MaintenanceLogController) UpdateLog(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMaintenanceLogDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.logService.UpdateLog(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("maintenance log update failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "maintenance log updated", http.StatusOK)
}

func (c *MaintenanceLogController) DeleteLog(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	warnings, err := c.logService.DeleteLog(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("maintenance log delete failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if len(warnings) > 0 {
		return utils.SuccessResponseWithWarnings(ctx, nil, "maintenance log deleted", http.StatusOK, warnings)
	}
	return utils.SuccessResponse(ctx, nil, "maintenance log deleted", http.StatusOK)
}
