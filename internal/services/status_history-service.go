package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"
)

type StatusHistoryServiceInterface interface {
	GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.StatusHistoryDTO, error)
	GetByFactoryID(ctx context.Context, factoryID uint64) ([]dto.StatusHistoryDTO, error)
	CreateHistory(ctx context.Context, equipmentID uint64, payload dto.CreateStatusHistoryDTO) (*dto.StatusHistoryDTO, error)
	UpdateHistory(ctx context.Context, id uint64, payload dto.UpdateStatusHistoryDTO) (*dto.StatusHistoryDTO, error)
	DeleteHistory(ctx context.Context, id uint64) error
}

type StatusHistoryService struct {
	historyRepo   repositories.StatusHistoryRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	txManager     repositories.TxManagerInterface
	cache         *ListCache
	logger        *zap.Logger
}

func NewStatusHistoryService(
	historyRepo repositories.StatusHistoryRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	cache *ListCache,
	logger *zap.Logger,
) StatusHistoryServiceInterface {
	return &StatusHistoryService{
		historyRepo:   historyRepo,
		equipmentRepo: equipmentRepo,
		txManager:     txManager,
		cache:         cache,
		logger:        logger,
	}
}

func toStatusHistoryDTO(h entities.StatusHistory) dto.StatusHistoryDTO {
	return dto.StatusHistoryDTO{
		ID:            h.ID,
		EquipmentID:   h.EquipmentID,
		EquipmentName: h.EquipmentName,
		Status:        h.Status,
		Notes:         h.Notes,
		CreatedAt:     h.CreatedAt.Format(time.RFC3339),
	}
}

func (s *StatusHistoryService) authorize(ctx context.Context, equipmentID uint64) error {
	e, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return err
	}
	return authorizeEquipment(ctx, e)
}

func (s *StatusHistoryService) GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.StatusHistoryDTO, error) {
	if err := s.authorize(ctx, equipmentID); err != nil {
		return nil, err
	}
	histories, err := s.historyRepo.FindByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StatusHistoryDTO, 0, len(histories))
	for _, h := range histories {
		items = append(items, toStatusHistoryDTO(h))
	}
	return items, nil
}

// GetByFactoryID lists the status trail across a whole factory's fleet. A
// factory session always reads its own trail; an admin names the factory.
func (s *StatusHistoryService) GetByFactoryID(ctx context.Context, factoryID uint64) ([]dto.StatusHistoryDTO, error) {
	if utils.IsAdminFromCtx(ctx) {
		if factoryID == 0 {
			return nil, apperrors.NewInvalidInputError("factory_id is required")
		}
	} else {
		own, err := utils.GetFactoryIDFromCtx(ctx)
		if err != nil {
			return nil, err
		}
		if factoryID != 0 && factoryID != own {
			return nil, apperrors.ErrForbidden
		}
		factoryID = own
	}

	histories, err := s.historyRepo.FindByFactoryID(ctx, factoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StatusHistoryDTO, 0, len(histories))
	for _, h := range histories {
		items = append(items, toStatusHistoryDTO(h))
	}
	return items, nil
}

// CreateHistory appends a status entry and overwrites the equipment's current
// status, both inside one transaction so the trail and the record never
// disagree.
func (s *StatusHistoryService) CreateHistory(ctx context.Context, equipmentID uint64, payload dto.CreateStatusHistoryDTO) (*dto.StatusHistoryDTO, error) {
	if err := s.authorize(ctx, equipmentID); err != nil {
		return nil, err
	}

	var id uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		id, err = s.historyRepo.CreateInTx(ctx, tx, entities.StatusHistory{
			EquipmentID: equipmentID,
			Status:      payload.Status,
			Notes:       payload.Notes,
		})
		if err != nil {
			return err
		}
		return s.equipmentRepo.UpdateStatusInTx(ctx, tx, equipmentID, payload.Status)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateAll(ctx)
	s.logger.Info("status changed",
		zap.Uint64("equipment_id", equipmentID),
		zap.String("status", payload.Status))

	h, err := s.historyRepo.FindHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toStatusHistoryDTO(*h)
	return &out, nil
}

// UpdateHistory corrects an entry's text. It never touches the equipment's
// current status; that only moves through CreateHistory.
func (s *StatusHistoryService) UpdateHistory(ctx context.Context, id uint64, payload dto.UpdateStatusHistoryDTO) (*dto.StatusHistoryDTO, error) {
	existing, err := s.historyRepo.FindHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, existing.EquipmentID); err != nil {
		return nil, err
	}

	if payload.Status != nil {
		existing.Status = *payload.Status
	}
	if payload.Notes != nil {
		existing.Notes = *payload.Notes
	}

	if err := s.historyRepo.UpdateHistory(ctx, id, *existing); err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)

	h, err := s.historyRepo.FindHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toStatusHistoryDTO(*h)
	return &out, nil
}

// DeleteHistory removes an entry. The equipment keeps whatever status it has;
// deleting a trail row does not rewind it.
func (s *StatusHistoryService) DeleteHistory(ctx context.Context, id uint64) error {
	existing, err := s.historyRepo.FindHistory(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, existing.EquipmentID); err != nil {
		return err
	}

	if err := s.historyRepo.DeleteHistory(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}
