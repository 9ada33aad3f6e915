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

const fieldDefinitionTable = "field_definitions"

type FieldDefinitionRepositoryInterface interface {
	GetFieldDefinitions(ctx context.Context, activeOnly bool) ([]entities.FieldDefinition, error)
	FindFieldDefinition(ctx context.Context, id uint64) (*entities.FieldDefinition, error)
	FindByKey(ctx context.Context, fieldKey string) (*entities.FieldDefinition, error)
	CreateFieldDefinition(ctx context.Context, def entities.FieldDefinition) (uint64, error)
	DeactivateFieldDefinition(ctx context.Context, id uint64) error
}

type FieldDefinitionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewFieldDefinitionRepository(storage *pgxpool.Pool, logger *zap.Logger) FieldDefinitionRepositoryInterface {
	return &FieldDefinitionRepository{storage: storage, logger: logger}
}

func scanFieldDefinition(row pgx.Row) (*entities.FieldDefinition, error) {
	var d entities.FieldDefinition
	err := row.Scan(&d.ID, &d.FieldKey, &d.FieldLabel, &d.FieldType, &d.Category, &d.IsActive, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning field definition: %w", err)
	}
	return &d, nil
}

func (r *FieldDefinitionRepository) GetFieldDefinitions(ctx context.Context, activeOnly bool) ([]entities.FieldDefinition, error) {
	query := fmt.Sprintf(`
		SELECT id, field_key, field_label, field_type, category, is_active, created_at
		FROM %s`, fieldDefinitionTable)
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY field_key ASC"

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defs := []entities.FieldDefinition{}
	for rows.Next() {
		d, err := scanFieldDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *d)
	}
	return defs, rows.Err()
}

func (r *FieldDefinitionRepository) FindFieldDefinition(ctx context.Context, id uint64) (*entities.FieldDefinition, error) {
	query := fmt.Sprintf(`
		SELECT id, field_key, field_label, field_type, category, is_active, created_at
		FROM %s WHERE id = $1`, fieldDefinitionTable)
	return scanFieldDefinition(r.storage.QueryRow(ctx, query, id))
}

// FindByKey matches the key exactly (case-sensitive).
func (r *FieldDefinitionRepository) FindByKey(ctx context.Context, fieldKey string) (*entities.FieldDefinition, error) {
	query := fmt.Sprintf(`
		SELECT id, field_key, field_label, field_type, category, is_active, created_at
		FROM %s WHERE field_key = $1`, fieldDefinitionTable)
	return scanFieldDefinition(r.storage.QueryRow(ctx, query, fieldKey))
}

func (r *FieldDefinitionRepository) CreateFieldDefinition(ctx context.Context, d entities.FieldDefinition) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (field_key, field_label, field_type, category, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id`, fieldDefinitionTable)

	var id uint64
	if err := r.storage.QueryRow(ctx, query, d.FieldKey, d.FieldLabel, d.FieldType, d.Category).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// DeactivateFieldDefinition soft-deletes: templates and stored records that
// reference the key keep working; renderers filter the stale key out.
func (r *FieldDefinitionRepository) DeactivateFieldDefinition(ctx context.Context, id uint64) error {
	query := fmt.Sprintf(`UPDATE %s SET is_active = FALSE WHERE id = $1`, fieldDefinitionTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
