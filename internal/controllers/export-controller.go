package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/services"
	"equipment-system/pkg/utils"
)

type ExportController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewExportController(equipmentService services.EquipmentServiceInterface, logger *zap.Logger) *ExportController {
	return &ExportController{equipmentService: equipmentService, logger: logger}
}

var exportHeaders = []string{
	"ID", "Factory", "Name", "Maker", "Model", "Status",
	"Template", "Serial Number", "Acquisition Date", "Acquisition Cost",
	"Install Location", "Capacity", "Images", "Created At",
}

func exportRow(item dto.EquipmentDTO) []interface{} {
	var cost string
	if item.AcquisitionCost != nil {
		cost = fmt.Sprintf("%.2f", *item.AcquisitionCost)
	}
	return []interface{}{
		item.ID, item.FactoryName, item.Name, item.Maker, item.Model, item.Status,
		item.TemplateName, item.SerialNumber, item.AcquisitionDate, cost,
		item.InstallLocation, item.Capacity, strings.Join(item.ImageURLs, ", "), item.CreatedAt,
	}
}

// ExportEquipment streams the full equipment list as an XLSX workbook. The
// usual list filters apply; pagination does not.
func (c *ExportController) ExportEquipment(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = true
	filter.Limit = 100000
	filter.Offset = 0

	data, _, err := c.equipmentService.GetEquipment(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f := excelize.NewFile()
	sheet := "Equipment"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &exportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "N1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "E", 20)
	f.SetColWidth(sheet, "G", "I", 18)
	f.SetColWidth(sheet, "K", "M", 25)

	fileName := fmt.Sprintf("equipment_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
