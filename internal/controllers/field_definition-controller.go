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

type FieldDefinitionController struct {
	fieldService services.FieldDefinitionServiceInterface
	logger       *zap.Logger
}

func NewFieldDefinitionController(fieldService services.FieldDefinitionServiceInterface, logger *zap.Logger) *FieldDefinitionController {
	return &FieldDefinitionController{fieldService: fieldService, logger: logger}
}

func (c *FieldDefinitionController) GetFieldDefinitions(ctx echo.Context) error {
	activeOnly := ctx.QueryParam("active") == "true"

	res, err := c.fieldService.GetFieldDefinitions(ctx.Request().Context(), activeOnly)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "field definitions fetched", http.StatusOK)
}

func (c *FieldDefinitionController) CreateFieldDefinition(ctx echo.Context) error {
	var payload dto.CreateFieldDefinitionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.fieldService.CreateFieldDefinition(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("field definition create failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "field definition created", http.StatusCreated)
}

func (c *FieldDefinitionController) DeactivateFieldDefinition(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.fieldService.DeactivateFieldDefinition(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "field definition deactivated", http.StatusOK)
}
