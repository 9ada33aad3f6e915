package services

import (
	"context"
	"strconv"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	"equipment-system/internal/specs"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/filestorage"
	"equipment-system/pkg/types"
	"equipment-system/pkg/utils"
)

type MaintenanceLogServiceInterface interface {
	GetLogs(ctx context.Context, filter types.Filter) ([]dto.MaintenanceLogDTO, uint64, error)
	FindLog(ctx context.Context, id uint64) (*dto.MaintenanceLogDTO, error)
	CreateLog(ctx context.Context, payload dto.CreateMaintenanceLogDTO) (*dto.MaintenanceLogDTO, error)
	UpdateLog(ctx context.Context, id uint64, payload dto.UpdateMaintenanceLogDTO) (*dto.MaintenanceLogDTO, error)
	DeleteLog(ctx context.Context, id uint64) ([]string, error)
}

type MaintenanceLogService struct {
	logRepo       repositories.MaintenanceLogRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	storage       filestorage.FileStorageInterface
	cache         *ListCache
	logger        *zap.Logger
}

func NewMaintenanceLogService(
	logRepo repositories.MaintenanceLogRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	storage filestorage.FileStorageInterface,
	cache *ListCache,
	logger *zap.Logger,
) MaintenanceLogServiceInterface {
	return &MaintenanceLogService{
		logRepo:       logRepo,
		equipmentRepo: equipmentRepo,
		storage:       storage,
		cache:         cache,
		logger:        logger,
	}
}

// combineDateTime joins the two form inputs into one timestamp. A missing
// time means midnight.
func combineDateTime(date, clock string) (time.Time, error) {
	if clock == "" {
		return time.Parse("2006-01-02", date)
	}
	return time.Parse("2006-01-02 15:04", date+" "+clock)
}

func toMaintenanceLogDTO(l entities.MaintenanceLog) dto.MaintenanceLogDTO {
	out := dto.MaintenanceLogDTO{
		ID:              l.ID,
		EquipmentID:     l.EquipmentID,
		EquipmentName:   l.EquipmentName,
		FactoryName:     l.FactoryName,
		MaintenanceDate: l.MaintenanceDate.Format(time.RFC3339),
		Engineer:        l.Engineer,
		Action:          l.Action,
		ActionCategory:  l.ActionCategory,
		Notes:           l.Notes,
		ImageURLs:       specs.SplitImageURLs(l.ImageURLs),
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if l.Cost.Valid {
		cost := l.Cost.Float64
		out.Cost = &cost
	}
	return out
}

// authorizeLogEquipment confirms the session owns the equipment the log
// belongs to.
func (s *MaintenanceLogService) authorizeLogEquipment(ctx context.Context, equipmentID uint64) error {
	e, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return err
	}
	return authorizeEquipment(ctx, e)
}

func (s *MaintenanceLogService) GetLogs(ctx context.Context, filter types.Filter) ([]dto.MaintenanceLogDTO, uint64, error) {
	if !utils.IsAdminFromCtx(ctx) {
		factoryID, err := utils.GetFactoryIDFromCtx(ctx)
		if err != nil {
			return nil, 0, err
		}
		if filter.Filter == nil {
			filter.Filter = map[string]interface{}{}
		}
		filter.Filter["factory_id"] = strconv.FormatUint(factoryID, 10)
	}

	logs, total, err := s.logRepo.GetLogs(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.MaintenanceLogDTO, 0, len(logs))
	for _, l := range logs {
		items = append(items, toMaintenanceLogDTO(l))
	}
	return items, total, nil
}

func (s *MaintenanceLogService) FindLog(ctx context.Context, id uint64) (*dto.MaintenanceLogDTO, error) {
	l, err := s.logRepo.FindLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLogEquipment(ctx, l.EquipmentID); err != nil {
		return nil, err
	}
	out := toMaintenanceLogDTO(*l)
	return &out, nil
}

func (s *MaintenanceLogService) CreateLog(ctx context.Context, payload dto.CreateMaintenanceLogDTO) (*dto.MaintenanceLogDTO, error) {
	if err := s.authorizeLogEquipment(ctx, payload.EquipmentID); err != nil {
		return nil, err
	}

	when, err := combineDateTime(payload.MaintenanceDate, payload.MaintenanceTime)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("invalid maintenance date/time")
	}

	id, err := s.logRepo.CreateLog(ctx, entities.MaintenanceLog{
		EquipmentID:     payload.EquipmentID,
		MaintenanceDate: when,
		Engineer:        payload.Engineer,
		Action:          payload.Action,
		ActionCategory:  payload.ActionCategory,
		Notes:           payload.Notes,
		ImageURLs:       specs.JoinImageURLs(payload.ImageURLs),
		Cost:            null.Float64FromPtr(payload.Cost),
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("maintenance log created",
		zap.Uint64("id", id),
		zap.Uint64("equipment_id", payload.EquipmentID))

	l, err := s.logRepo.FindLog(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toMaintenanceLogDTO(*l)
	return &out, nil
}

func (s *MaintenanceLogService) UpdateLog(ctx context.Context, id uint64, payload dto.UpdateMaintenanceLogDTO) (*dto.MaintenanceLogDTO, error) {
	existing, err := s.logRepo.FindLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLogEquipment(ctx, existing.EquipmentID); err != nil {
		return nil, err
	}

	if payload.MaintenanceDate != nil || payload.MaintenanceTime != nil {
		date := existing.MaintenanceDate.Format("2006-01-02")
		clock := existing.MaintenanceDate.Format("15:04")
		if payload.MaintenanceDate != nil {
			date = *payload.MaintenanceDate
		}
		if payload.MaintenanceTime != nil {
			clock = *payload.MaintenanceTime
		}
		when, err := combineDateTime(date, clock)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("invalid maintenance date/time")
		}
		existing.MaintenanceDate = when
	}
	if payload.Engineer != nil {
		existing.Engineer = *payload.Engineer
	}
	if payload.Action != nil {
		existing.Action = *payload.Action
	}
	if payload.ActionCategory != nil {
		existing.ActionCategory = *payload.ActionCategory
	}
	if payload.Notes != nil {
		existing.Notes = *payload.Notes
	}
	if payload.Cost != nil {
		existing.Cost = null.Float64FromPtr(payload.Cost)
	}
	if payload.ImageURLs != nil {
		existing.ImageURLs = specs.JoinImageURLs(payload.ImageURLs)
	}

	if err := s.logRepo.UpdateLog(ctx, id, *existing); err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	return s.FindLog(ctx, id)
}

// DeleteLog removes the record and its images; image failures come back as
// warnings.
func (s *MaintenanceLogService) DeleteLog(ctx context.Context, id uint64) ([]string, error) {
	existing, err := s.logRepo.FindLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLogEquipment(ctx, existing.EquipmentID); err != nil {
		return nil, err
	}

	warnings := cleanupImages(s.storage, s.logger, specs.SplitImageURLs(existing.ImageURLs))

	if err := s.logRepo.DeleteLog(ctx, id); err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	return warnings, nil
}
