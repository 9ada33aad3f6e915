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

const maintenanceLogTable = "maintenance_logs"

const maintenanceLogColumns = `l.id, l.equipment_id, l.maintenance_date, l.engineer,
	l.action, l.action_category, l.notes, l.image_urls, l.cost, l.created_at,
	e.name AS equipment_name, f.name AS factory_name`

var maintenanceLogMap = map[string]string{
	"id":               "l.id",
	"equipment_id":     "l.equipment_id",
	"factory_id":       "e.factory_id",
	"engineer":         "l.engineer",
	"action_category":  "l.action_category",
	"maintenance_date": "l.maintenance_date",
	"created_at":       "l.created_at",
}

type MaintenanceLogRepositoryInterface interface {
	GetLogs(ctx context.Context, filter types.Filter) ([]entities.MaintenanceLog, uint64, error)
	FindLog(ctx context.Context, id uint64) (*entities.MaintenanceLog, error)
	CreateLog(ctx context.Context, log entities.MaintenanceLog) (uint64, error)
	UpdateLog(ctx context.Context, id uint64, log entities.MaintenanceLog) error
	DeleteLog(ctx context.Context, id uint64) error
	ImageURLsByEquipmentID(ctx context.Context, equipmentID uint64) ([]string, error)
	DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error
}

type MaintenanceLogRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMaintenanceLogRepository(storage *pgxpool.Pool, logger *zap.Logger) MaintenanceLogRepositoryInterface {
	return &MaintenanceLogRepository{storage: storage, logger: logger}
}

func scanMaintenanceLog(row pgx.Row) (*entities.MaintenanceLog, error) {
	var l entities.MaintenanceLog
	err := row.Scan(
		&l.ID, &l.EquipmentID, &l.MaintenanceDate, &l.Engineer,
		&l.Action, &l.ActionCategory, &l.Notes, &l.ImageURLs, &l.Cost, &l.CreatedAt,
		&l.EquipmentName, &l.FactoryName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning maintenance log: %w", err)
	}
	return &l, nil
}

func (r *MaintenanceLogRepository) GetLogs(ctx context.Context, filter types.Filter) ([]entities.MaintenanceLog, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := func(cols string) sq.SelectBuilder {
		return psql.Select(cols).
			From(maintenanceLogTable + " AS l").
			Join("equipment AS e ON e.id = l.equipment_id").
			Join("factories AS f ON f.id = e.factory_id")
	}

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder := db.ApplyListParams(base("COUNT(l.id)"), countFilter, maintenanceLogMap)

	var total uint64
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.MaintenanceLog{}, 0, nil
	}

	listBuilder := db.ApplyListParams(base(maintenanceLogColumns), filter, maintenanceLogMap)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("l.maintenance_date DESC")
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

	logs := []entities.MaintenanceLog{}
	for rows.Next() {
		l, err := scanMaintenanceLog(rows)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, *l)
	}
	return logs, total, rows.Err()
}

func (r *MaintenanceLogRepository) FindLog(ctx context.Context, id uint64) (*entities.MaintenanceLog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s AS l
			JOIN equipment AS e ON e.id = l.equipment_id
			JOIN factories AS f ON f.id = e.factory_id
		WHERE l.id = $1`, maintenanceLogColumns, maintenanceLogTable)
	return scanMaintenanceLog(r.storage.QueryRow(ctx, query, id))
}

func (r *MaintenanceLogRepository) CreateLog(ctx context.Context, l entities.MaintenanceLog) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (equipment_id, maintenance_date, engineer, action, action_category, notes, image_urls, cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`, maintenanceLogTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		l.EquipmentID, l.MaintenanceDate, l.Engineer, l.Action,
		l.ActionCategory, l.Notes, l.ImageURLs, l.Cost,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *MaintenanceLogRepository) UpdateLog(ctx context.Context, id uint64, l entities.MaintenanceLog) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			maintenance_date = $1, engineer = $2, action = $3,
			action_category = $4, notes = $5, image_urls = $6, cost = $7
		WHERE id = $8`, maintenanceLogTable)

	result, err := r.storage.Exec(ctx, query,
		l.MaintenanceDate, l.Engineer, l.Action,
		l.ActionCategory, l.Notes, l.ImageURLs, l.Cost, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceLogRepository) DeleteLog(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", maintenanceLogTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ImageURLsByEquipmentID collects the stored image URL columns of every log
// owned by the equipment, for cleanup before a cascading delete.
func (r *MaintenanceLogRepository) ImageURLsByEquipmentID(ctx context.Context, equipmentID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		fmt.Sprintf("SELECT image_urls FROM %s WHERE equipment_id = $1 AND image_urls <> ''", maintenanceLogTable),
		equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var stored string
		if err := rows.Scan(&stored); err != nil {
			return nil, err
		}
		urls = append(urls, stored)
	}
	return urls, rows.Err()
}

func (r *MaintenanceLogRepository) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	_, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE equipment_id = $1", maintenanceLogTable), equipmentID)
	return err
}
