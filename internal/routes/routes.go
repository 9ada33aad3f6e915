package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-system/internal/controllers"
	"equipment-system/internal/repositories"
	"equipment-system/internal/services"
	"equipment-system/pkg/config"
	"equipment-system/pkg/filestorage"
	"equipment-system/pkg/middleware"
	"equipment-system/pkg/service"
)

// InitRouter wires repositories, services and controllers and registers every
// route. /api/auth is open; everything else needs a session, and the /api/admin
// subtree additionally needs an admin one.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) error {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BaseDir, cfg.Upload.PublicBaseURL)
	if err != nil {
		return err
	}

	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	listCache := services.NewListCache(cacheRepo, cfg.Cache.ListTTL, logger)

	factoryRepo := repositories.NewFactoryRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	logRepo := repositories.NewMaintenanceLogRepository(dbConn, logger)
	historyRepo := repositories.NewStatusHistoryRepository(dbConn, logger)
	templateRepo := repositories.NewTemplateRepository(dbConn, logger)
	fieldRepo := repositories.NewFieldDefinitionRepository(dbConn, logger)

	authService := services.NewAuthService(factoryRepo, jwtSvc, cfg.Admin.Password, logger)
	factoryService := services.NewFactoryService(factoryRepo, equipmentRepo, logRepo, fileStorage, listCache, logger)
	equipmentService := services.NewEquipmentService(
		equipmentRepo, logRepo, historyRepo, templateRepo, fieldRepo,
		txManager, fileStorage, listCache, logger,
	)
	logService := services.NewMaintenanceLogService(logRepo, equipmentRepo, fileStorage, listCache, logger)
	historyService := services.NewStatusHistoryService(historyRepo, equipmentRepo, txManager, listCache, logger)
	templateService := services.NewTemplateService(templateRepo, listCache, logger)
	fieldService := services.NewFieldDefinitionService(fieldRepo, listCache, logger)

	authController := controllers.NewAuthController(authService, logger)
	factoryController := controllers.NewFactoryController(factoryService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)
	logController := controllers.NewMaintenanceLogController(logService, logger)
	historyController := controllers.NewStatusHistoryController(historyService, logger)
	templateController := controllers.NewTemplateController(templateService, logger)
	fieldController := controllers.NewFieldDefinitionController(fieldService, logger)
	exportController := controllers.NewExportController(equipmentService, logger)
	uploadController := controllers.NewUploadController(fileStorage, cfg.Upload, logger)

	secureGroup := api.Group("", authMW.Auth)
	adminOnly := secureGroup.Group("", authMW.AdminOnly)
	adminGroup := secureGroup.Group("/admin", authMW.AdminOnly)

	runAuthRouter(api, authController)
	runFactoryRouter(adminOnly, factoryController)
	runEquipmentRouter(secureGroup, equipmentController, historyController)
	runMaintenanceLogRouter(secureGroup, logController)
	runStatusHistoryRouter(secureGroup, historyController)
	runAdminRouter(adminGroup, templateController, fieldController, exportController)
	runUploadRouter(secureGroup, uploadController)

	logger.Info("routes registered")
	return nil
}
