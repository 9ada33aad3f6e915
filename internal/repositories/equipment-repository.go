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

const equipmentTable = "equipment"

const equipmentColumns = `e.id, e.factory_id, e.name, e.maker, e.model, e.status,
	e.template_name, e.serial_number, e.acquisition_cost, e.acquisition_date,
	e.install_location, e.capacity,
	e.details, e.accessory_specs, e.spare_part_specs, e.screw_specs, e.oil_specs,
	e.documents, e.image_urls, e.created_at, e.updated_at, f.name AS factory_name`

var equipmentMap = map[string]string{
	"id":         "e.id",
	"factory_id": "e.factory_id",
	"name":       "e.name",
	"maker":      "e.maker",
	"model":      "e.model",
	"status":     "e.status",
	"created_at": "e.created_at",
	"updated_at": "e.updated_at",
}

type EquipmentRepositoryInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) error
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	DeleteEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.FactoryID, &e.Name, &e.Maker, &e.Model, &e.Status,
		&e.TemplateName, &e.SerialNumber, &e.AcquisitionCost, &e.AcquisitionDate,
		&e.InstallLocation, &e.Capacity,
		&e.Details, &e.AccessorySpecs, &e.SparePartSpecs, &e.ScrewSpecs, &e.OilSpecs,
		&e.Documents, &e.ImageURLs, &e.CreatedAt, &e.UpdatedAt, &e.FactoryName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning equipment: %w", err)
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"e.name": pat},
				sq.ILike{"e.maker": pat},
				sq.ILike{"e.model": pat},
			})
		}
		return b
	}

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder := psql.Select("COUNT(e.id)").
		From(equipmentTable + " AS e").
		Join("factories AS f ON f.id = e.factory_id")
	countBuilder = db.ApplyListParams(applySearch(countBuilder), countFilter, equipmentMap)

	var total uint64
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	listBuilder := psql.Select(equipmentColumns).
		From(equipmentTable + " AS e").
		Join("factories AS f ON f.id = e.factory_id")
	listBuilder = db.ApplyListParams(applySearch(listBuilder), filter, equipmentMap)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("e.name ASC")
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

	equipment := []entities.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		equipment = append(equipment, *e)
	}
	return equipment, total, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s AS e
			JOIN factories AS f ON f.id = e.factory_id
		WHERE e.id = $1`, equipmentColumns, equipmentTable)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e entities.Equipment) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			factory_id, name, maker, model, status,
			template_name, serial_number, acquisition_cost, acquisition_date,
			install_location, capacity,
			details, accessory_specs, spare_part_specs, screw_specs, oil_specs,
			documents, image_urls
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`, equipmentTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		e.FactoryID, e.Name, e.Maker, e.Model, e.Status,
		e.TemplateName, e.SerialNumber, e.AcquisitionCost, e.AcquisitionDate,
		e.InstallLocation, e.Capacity,
		e.Details, e.AccessorySpecs, e.SparePartSpecs, e.ScrewSpecs, e.OilSpecs,
		e.Documents, e.ImageURLs,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, e entities.Equipment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			name = $1, maker = $2, model = $3, status = $4,
			template_name = $5, serial_number = $6, acquisition_cost = $7,
			acquisition_date = $8, install_location = $9, capacity = $10,
			details = $11, accessory_specs = $12, spare_part_specs = $13,
			screw_specs = $14, oil_specs = $15, documents = $16, image_urls = $17,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $18`, equipmentTable)

	result, err := r.storage.Exec(ctx, query,
		e.Name, e.Maker, e.Model, e.Status,
		e.TemplateName, e.SerialNumber, e.AcquisitionCost,
		e.AcquisitionDate, e.InstallLocation, e.Capacity,
		e.Details, e.AccessorySpecs, e.SparePartSpecs,
		e.ScrewSpecs, e.OilSpecs, e.Documents, e.ImageURLs,
		id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, equipmentTable)
	result, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
