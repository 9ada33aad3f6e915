package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	apperrors "equipment-system/pkg/errors"
)

type FieldDefinitionServiceInterface interface {
	GetFieldDefinitions(ctx context.Context, activeOnly bool) ([]dto.FieldDefinitionDTO, error)
	CreateFieldDefinition(ctx context.Context, payload dto.CreateFieldDefinitionDTO) (*dto.FieldDefinitionDTO, error)
	DeactivateFieldDefinition(ctx context.Context, id uint64) error
}

type FieldDefinitionService struct {
	fieldRepo repositories.FieldDefinitionRepositoryInterface
	cache     *ListCache
	logger    *zap.Logger
}

func NewFieldDefinitionService(
	fieldRepo repositories.FieldDefinitionRepositoryInterface,
	cache *ListCache,
	logger *zap.Logger,
) FieldDefinitionServiceInterface {
	return &FieldDefinitionService{fieldRepo: fieldRepo, cache: cache, logger: logger}
}

func toFieldDefinitionDTO(d entities.FieldDefinition) dto.FieldDefinitionDTO {
	return dto.FieldDefinitionDTO{
		ID:         d.ID,
		FieldKey:   d.FieldKey,
		FieldLabel: d.FieldLabel,
		FieldType:  d.FieldType,
		Category:   d.Category,
		IsActive:   d.IsActive,
		CreatedAt:  d.CreatedAt.Format(time.RFC3339),
	}
}

func (s *FieldDefinitionService) GetFieldDefinitions(ctx context.Context, activeOnly bool) ([]dto.FieldDefinitionDTO, error) {
	defs, err := s.fieldRepo.GetFieldDefinitions(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FieldDefinitionDTO, 0, len(defs))
	for _, d := range defs {
		items = append(items, toFieldDefinitionDTO(d))
	}
	return items, nil
}

// CreateFieldDefinition registers a new attribute key. Keys are compared
// case-sensitively and must be unique across the whole registry, active or
// not.
func (s *FieldDefinitionService) CreateFieldDefinition(ctx context.Context, payload dto.CreateFieldDefinitionDTO) (*dto.FieldDefinitionDTO, error) {
	if _, err := s.fieldRepo.FindByKey(ctx, payload.FieldKey); err == nil {
		return nil, apperrors.NewHttpError(http.StatusConflict, "field key already exists", apperrors.ErrConflict, nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	id, err := s.fieldRepo.CreateFieldDefinition(ctx, entities.FieldDefinition{
		FieldKey:   payload.FieldKey,
		FieldLabel: payload.FieldLabel,
		FieldType:  payload.FieldType,
		Category:   payload.Category,
		IsActive:   true,
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("field definition created", zap.Uint64("id", id), zap.String("key", payload.FieldKey))

	created, err := s.fieldRepo.FindFieldDefinition(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toFieldDefinitionDTO(*created)
	return &out, nil
}

// DeactivateFieldDefinition soft-deletes the key. Templates that still name
// it keep working; stored equipment details referencing it are hidden at
// read time.
func (s *FieldDefinitionService) DeactivateFieldDefinition(ctx context.Context, id uint64) error {
	if err := s.fieldRepo.DeactivateFieldDefinition(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}
