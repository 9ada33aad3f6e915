package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-system/internal/controllers"
)

func runFactoryRouter(g *echo.Group, ctrl *controllers.FactoryController) {
	g.GET("/factories", ctrl.GetFactories)
	g.GET("/factories/:id", ctrl.FindFactory)
	g.POST("/factories", ctrl.CreateFactory)
	g.PUT("/factories/:id", ctrl.UpdateFactory)
	g.DELETE("/factories/:id", ctrl.DeleteFactory)
}
