package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-system/internal/controllers"
)

func runMaintenanceLogRouter(g *echo.Group, ctrl *controllers.MaintenanceLogController) {
	g.GET("/maintenance-logs", ctrl.GetLogs)
	g.GET("/maintenance-logs/:id", ctrl.FindLog)
	g.POST("/maintenance-logs", ctrl.CreateLog)
	g.PUT("/maintenance-logs/:id", ctrl.UpdateLog)
	g.DELETE("/maintenance-logs/:id", ctrl.DeleteLog)
}
