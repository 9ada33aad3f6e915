package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-system/internal/controllers"
)

func runAdminRouter(
	g *echo.Group,
	templateCtrl *controllers.TemplateController,
	fieldCtrl *controllers.FieldDefinitionController,
	exportCtrl *controllers.ExportController,
) {
	g.GET("/templates", templateCtrl.GetTemplates)
	g.GET("/templates/:id", templateCtrl.FindTemplate)
	g.POST("/templates", templateCtrl.CreateTemplate)
	g.PUT("/templates/:id", templateCtrl.UpdateTemplate)

	g.GET("/field-definitions", fieldCtrl.GetFieldDefinitions)
	g.POST("/field-definitions", fieldCtrl.CreateFieldDefinition)
	g.DELETE("/field-definitions/:id", fieldCtrl.DeactivateFieldDefinition)

	g.GET("/equipment/export", exportCtrl.ExportEquipment)
}
