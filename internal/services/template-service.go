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
	"equipment-system/internal/specs"
	apperrors "equipment-system/pkg/errors"
)

type TemplateServiceInterface interface {
	GetTemplates(ctx context.Context, activeOnly bool) ([]dto.TemplateDTO, error)
	FindTemplate(ctx context.Context, id uint64) (*dto.TemplateDTO, error)
	CreateTemplate(ctx context.Context, payload dto.CreateTemplateDTO) (*dto.TemplateDTO, error)
	UpdateTemplate(ctx context.Context, id uint64, payload dto.UpdateTemplateDTO) (*dto.TemplateDTO, error)
}

type TemplateService struct {
	templateRepo repositories.TemplateRepositoryInterface
	cache        *ListCache
	logger       *zap.Logger
}

func NewTemplateService(
	templateRepo repositories.TemplateRepositoryInterface,
	cache *ListCache,
	logger *zap.Logger,
) TemplateServiceInterface {
	return &TemplateService{templateRepo: templateRepo, cache: cache, logger: logger}
}

func toTemplateDTO(t entities.EquipmentTemplate) dto.TemplateDTO {
	return dto.TemplateDTO{
		ID:           t.ID,
		Name:         t.Name,
		DisplayName:  t.DisplayName,
		FieldsConfig: t.Config(),
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *TemplateService) GetTemplates(ctx context.Context, activeOnly bool) ([]dto.TemplateDTO, error) {
	templates, err := s.templateRepo.GetTemplates(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateDTO, 0, len(templates))
	for _, t := range templates {
		items = append(items, toTemplateDTO(t))
	}
	return items, nil
}

func (s *TemplateService) FindTemplate(ctx context.Context, id uint64) (*dto.TemplateDTO, error) {
	t, err := s.templateRepo.FindTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toTemplateDTO(*t)
	return &out, nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, payload dto.CreateTemplateDTO) (*dto.TemplateDTO, error) {
	if _, err := s.templateRepo.FindTemplateByName(ctx, payload.Name); err == nil {
		return nil, apperrors.NewHttpError(http.StatusConflict, "template name already exists", apperrors.ErrConflict, nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	cfg, err := specs.EncodeJSON(payload.FieldsConfig)
	if err != nil {
		return nil, err
	}

	id, err := s.templateRepo.CreateTemplate(ctx, entities.EquipmentTemplate{
		Name:         payload.Name,
		DisplayName:  payload.DisplayName,
		FieldsConfig: cfg,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("template created", zap.Uint64("id", id), zap.String("name", payload.Name))
	return s.FindTemplate(ctx, id)
}

// UpdateTemplate edits a template in place. Deactivation (is_active=false)
// is the only way a template leaves circulation; equipment referencing it
// keeps its stored data.
func (s *TemplateService) UpdateTemplate(ctx context.Context, id uint64, payload dto.UpdateTemplateDTO) (*dto.TemplateDTO, error) {
	existing, err := s.templateRepo.FindTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil && *payload.Name != existing.Name {
		if other, err := s.templateRepo.FindTemplateByName(ctx, *payload.Name); err == nil && other.ID != id {
			return nil, apperrors.NewHttpError(http.StatusConflict, "template name already exists", apperrors.ErrConflict, nil)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		existing.Name = *payload.Name
	}
	if payload.DisplayName != nil {
		existing.DisplayName = *payload.DisplayName
	}
	if payload.FieldsConfig != nil {
		cfg, err := specs.EncodeJSON(payload.FieldsConfig)
		if err != nil {
			return nil, err
		}
		existing.FieldsConfig = cfg
	}
	if payload.IsActive != nil {
		existing.IsActive = *payload.IsActive
	}

	if err := s.templateRepo.UpdateTemplate(ctx, id, *existing); err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	return s.FindTemplate(ctx, id)
}
