package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-system/internal/controllers"
)

func runUploadRouter(g *echo.Group, ctrl *controllers.UploadController) {
	g.POST("/uploads/images", ctrl.UploadImages)
	g.POST("/uploads/documents", ctrl.UploadDocuments)
}
