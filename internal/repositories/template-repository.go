package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-system/internal/entities"
	apperrors "equipment-system/pkg/errors"
)

const templateTable = "equipment_templates"

type TemplateRepositoryInterface interface {
	GetTemplates(ctx context.Context, activeOnly bool) ([]entities.EquipmentTemplate, error)
	FindTemplate(ctx context.Context, id uint64) (*entities.EquipmentTemplate, error)
	FindTemplateByName(ctx context.Context, name string) (*entities.EquipmentTemplate, error)
	CreateTemplate(ctx context.Context, template entities.EquipmentTemplate) (uint64, error)
	UpdateTemplate(ctx context.Context, id uint64, template entities.EquipmentTemplate) error
}

type TemplateRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTemplateRepository(storage *pgxpool.Pool, logger *zap.Logger) TemplateRepositoryInterface {
	return &TemplateRepository{storage: storage, logger: logger}
}

func scanTemplate(row pgx.Row) (*entities.EquipmentTemplate, error) {
	var t entities.EquipmentTemplate
	err := row.Scan(&t.ID, &t.Name, &t.DisplayName, &t.FieldsConfig, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	return &t, nil
}

func (r *TemplateRepository) GetTemplates(ctx context.Context, activeOnly bool) ([]entities.EquipmentTemplate, error) {
	query := fmt.Sprintf(`
		SELECT id, name, display_name, fields_config, is_active, created_at, updated_at
		FROM %s`, templateTable)
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY name ASC"

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []entities.EquipmentTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func (r *TemplateRepository) FindTemplate(ctx context.Context, id uint64) (*entities.EquipmentTemplate, error) {
	query := fmt.Sprintf(`
		SELECT id, name, display_name, fields_config, is_active, created_at, updated_at
		FROM %s WHERE id = $1`, templateTable)
	return scanTemplate(r.storage.QueryRow(ctx, query, id))
}

func (r *TemplateRepository) FindTemplateByName(ctx context.Context, name string) (*entities.EquipmentTemplate, error) {
	query := fmt.Sprintf(`
		SELECT id, name, display_name, fields_config, is_active, created_at, updated_at
		FROM %s WHERE name = $1`, templateTable)
	return scanTemplate(r.storage.QueryRow(ctx, query, name))
}

func (r *TemplateRepository) CreateTemplate(ctx context.Context, t entities.EquipmentTemplate) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, display_name, fields_config, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, templateTable)

	var id uint64
	if err := r.storage.QueryRow(ctx, query, t.Name, t.DisplayName, t.FieldsConfig, t.IsActive).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *TemplateRepository) UpdateTemplate(ctx context.Context, id uint64, t entities.EquipmentTemplate) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			name = $1, display_name = $2, fields_config = $3, is_active = $4,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $5`, templateTable)

	result, err := r.storage.Exec(ctx, query, t.Name, t.DisplayName, t.FieldsConfig, t.IsActive, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
