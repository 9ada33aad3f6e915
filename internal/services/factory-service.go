package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	"equipment-system/internal/specs"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/filestorage"
	"equipment-system/pkg/types"
)

type FactoryServiceInterface interface {
	GetFactories(ctx context.Context, filter types.Filter) ([]dto.FactoryDTO, uint64, error)
	FindFactory(ctx context.Context, id uint64) (*dto.FactoryDTO, error)
	CreateFactory(ctx context.Context, payload dto.CreateFactoryDTO) (*dto.FactoryDTO, error)
	UpdateFactory(ctx context.Context, id uint64, payload dto.UpdateFactoryDTO) (*dto.FactoryDTO, error)
	DeleteFactory(ctx context.Context, id uint64) ([]string, error)
}

type FactoryService struct {
	factoryRepo   repositories.FactoryRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	logRepo       repositories.MaintenanceLogRepositoryInterface
	storage       filestorage.FileStorageInterface
	cache         *ListCache
	logger        *zap.Logger
}

func NewFactoryService(
	factoryRepo repositories.FactoryRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logRepo repositories.MaintenanceLogRepositoryInterface,
	storage filestorage.FileStorageInterface,
	cache *ListCache,
	logger *zap.Logger,
) FactoryServiceInterface {
	return &FactoryService{
		factoryRepo:   factoryRepo,
		equipmentRepo: equipmentRepo,
		logRepo:       logRepo,
		storage:       storage,
		cache:         cache,
		logger:        logger,
	}
}

func toFactoryDTO(f entities.Factory) dto.FactoryDTO {
	return dto.FactoryDTO{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}

type cachedFactoryList struct {
	Items []dto.FactoryDTO `json:"items"`
	Total uint64           `json:"total"`
}

func (s *FactoryService) GetFactories(ctx context.Context, filter types.Filter) ([]dto.FactoryDTO, uint64, error) {
	key := fmt.Sprintf("factories:%s:%d:%d", filter.Search, filter.Limit, filter.Offset)

	var cached cachedFactoryList
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached.Items, cached.Total, nil
	}

	factories, total, err := s.factoryRepo.GetFactories(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.FactoryDTO, 0, len(factories))
	for _, f := range factories {
		items = append(items, toFactoryDTO(f))
	}
	s.cache.SetJSON(ctx, key, cachedFactoryList{Items: items, Total: total})
	return items, total, nil
}

func (s *FactoryService) FindFactory(ctx context.Context, id uint64) (*dto.FactoryDTO, error) {
	factory, err := s.factoryRepo.FindFactory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toFactoryDTO(*factory)
	return &out, nil
}

func (s *FactoryService) CreateFactory(ctx context.Context, payload dto.CreateFactoryDTO) (*dto.FactoryDTO, error) {
	if _, err := s.factoryRepo.FindFactoryByName(ctx, payload.Name); err == nil {
		return nil, apperrors.NewHttpError(http.StatusConflict, "factory name already exists", apperrors.ErrConflict, nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	id, err := s.factoryRepo.CreateFactory(ctx, entities.Factory{
		Name:     payload.Name,
		Password: payload.Password,
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("factory created", zap.Uint64("id", id), zap.String("name", payload.Name))
	return s.FindFactory(ctx, id)
}

func (s *FactoryService) UpdateFactory(ctx context.Context, id uint64, payload dto.UpdateFactoryDTO) (*dto.FactoryDTO, error) {
	factory, err := s.factoryRepo.FindFactory(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil && *payload.Name != factory.Name {
		if other, err := s.factoryRepo.FindFactoryByName(ctx, *payload.Name); err == nil && other.ID != id {
			return nil, apperrors.NewHttpError(http.StatusConflict, "factory name already exists", apperrors.ErrConflict, nil)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		factory.Name = *payload.Name
	}
	if payload.Password != nil {
		factory.Password = *payload.Password
	}

	if err := s.factoryRepo.UpdateFactory(ctx, id, *factory); err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	return s.FindFactory(ctx, id)
}

// DeleteFactory removes the factory and, via the schema's cascades, all of
// its equipment with their logs and status history. The database never sees
// the stored image files, so those are collected up front and deleted
// best-effort; failures come back as warnings.
func (s *FactoryService) DeleteFactory(ctx context.Context, id uint64) ([]string, error) {
	if _, err := s.factoryRepo.FindFactory(ctx, id); err != nil {
		return nil, err
	}

	equipment, _, err := s.equipmentRepo.GetEquipment(ctx, types.Filter{
		Filter: map[string]interface{}{"factory_id": id},
	})
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, e := range equipment {
		urls = append(urls, specs.SplitImageURLs(e.ImageURLs)...)
		logURLs, err := s.logRepo.ImageURLsByEquipmentID(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		for _, stored := range logURLs {
			urls = append(urls, specs.SplitImageURLs(stored)...)
		}
	}
	warnings := cleanupImages(s.storage, s.logger, urls)

	if err := s.factoryRepo.DeleteFactory(ctx, id); err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("factory deleted",
		zap.Uint64("id", id),
		zap.Int("equipment", len(equipment)),
		zap.Int("warnings", len(warnings)))
	return warnings, nil
}
