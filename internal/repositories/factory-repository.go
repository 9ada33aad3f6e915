package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-system/internal/entities"
	"equipment-system/internal/infrastructure/db"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/types"
)

const factoryTable = "factories"

var factoryMap = map[string]string{
	"id":         "f.id",
	"name":       "f.name",
	"created_at": "f.created_at",
}

type FactoryRepositoryInterface interface {
	GetFactories(ctx context.Context, filter types.Filter) ([]entities.Factory, uint64, error)
	FindFactory(ctx context.Context, id uint64) (*entities.Factory, error)
	FindFactoryByName(ctx context.Context, name string) (*entities.Factory, error)
	CreateFactory(ctx context.Context, factory entities.Factory) (uint64, error)
	UpdateFactory(ctx context.Context, id uint64, factory entities.Factory) error
	DeleteFactory(ctx context.Context, id uint64) error
}

type FactoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewFactoryRepository(storage *pgxpool.Pool, logger *zap.Logger) FactoryRepositoryInterface {
	return &FactoryRepository{storage: storage, logger: logger}
}

func scanFactory(row pgx.Row) (*entities.Factory, error) {
	var f entities.Factory
	err := row.Scan(&f.ID, &f.Name, &f.Password, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning factory: %w", err)
	}
	return &f, nil
}

func (r *FactoryRepository) GetFactories(ctx context.Context, filter types.Filter) ([]entities.Factory, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			return b.Where(sq.ILike{"f.name": "%" + filter.Search + "%"})
		}
		return b
	}

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder := db.ApplyListParams(applySearch(psql.Select("COUNT(f.id)").From(factoryTable+" AS f")), countFilter, factoryMap)

	var total uint64
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Factory{}, 0, nil
	}

	listBuilder := psql.Select("f.id, f.name, f.password, f.created_at, f.updated_at").
		From(factoryTable + " AS f")
	listBuilder = db.ApplyListParams(applySearch(listBuilder), filter, factoryMap)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("f.name ASC")
	}

	sqlList, argsList, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, sqlList, argsList...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	factories := []entities.Factory{}
	for rows.Next() {
		f, err := scanFactory(rows)
		if err != nil {
			return nil, 0, err
		}
		factories = append(factories, *f)
	}
	return factories, total, rows.Err()
}

func (r *FactoryRepository) FindFactory(ctx context.Context, id uint64) (*entities.Factory, error) {
	query := fmt.Sprintf(`SELECT id, name, password, created_at, updated_at FROM %s WHERE id = $1`, factoryTable)
	return scanFactory(r.storage.QueryRow(ctx, query, id))
}

func (r *FactoryRepository) FindFactoryByName(ctx context.Context, name string) (*entities.Factory, error) {
	query := fmt.Sprintf(`SELECT id, name, password, created_at, updated_at FROM %s WHERE name = $1`, factoryTable)
	return scanFactory(r.storage.QueryRow(ctx, query, name))
}

func (r *FactoryRepository) CreateFactory(ctx context.Context, factory entities.Factory) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, password) VALUES ($1, $2) RETURNING id`, factoryTable)

	var id uint64
	if err := r.storage.QueryRow(ctx, query, factory.Name, factory.Password).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *FactoryRepository) UpdateFactory(ctx context.Context, id uint64, factory entities.Factory) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, password = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3`, factoryTable)

	result, err := r.storage.Exec(ctx, query, factory.Name, factory.Password, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *FactoryRepository) DeleteFactory(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", factoryTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
