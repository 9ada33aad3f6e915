package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-system/internal/controllers"
)

func runStatusHistoryRouter(g *echo.Group, ctrl *controllers.StatusHistoryController) {
	g.GET("/status-history", ctrl.GetHistories)
	g.PUT("/status-history/:id", ctrl.UpdateHistory)
	g.DELETE("/status-history/:id", ctrl.DeleteHistory)
}
