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

type TemplateController struct {
	templateService services.TemplateServiceInterface
	logger          *zap.Logger
}

func NewTemplateController(templateService services.TemplateServiceInterface, logger *zap.Logger) *TemplateController {
	return &TemplateController{templateService: templateService, logger: logger}
}

func (c *TemplateController) GetTemplates(ctx echo.Context) error {
	activeOnly := ctx.QueryParam("active") == "true"

	res, err := c.templateService.GetTemplates(ctx.Request().Context(), activeOnly)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "templates fetched", http.StatusOK)
}

func (c *TemplateController) FindTemplate(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.FindTemplate(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "template found", http.StatusOK)
}

func (c *TemplateController) CreateTemplate(ctx echo.Context) error {
	var payload dto.CreateTemplateDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.CreateTemplate(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("template create failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "template created", http.StatusCreated)
}

func (c *TemplateController) UpdateTemplate(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateTemplateDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.UpdateTemplate(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("template update failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "template updated", http.StatusOK)
}
