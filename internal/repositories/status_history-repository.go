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

const statusHistoryTable = "equipment_status_history"

type StatusHistoryRepositoryInterface interface {
	FindByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.StatusHistory, error)
	FindByFactoryID(ctx context.Context, factoryID uint64) ([]entities.StatusHistory, error)
	FindHistory(ctx context.Context, id uint64) (*entities.StatusHistory, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, history entities.StatusHistory) (uint64, error)
	UpdateHistory(ctx context.Context, id uint64, history entities.StatusHistory) error
	DeleteHistory(ctx context.Context, id uint64) error
	DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error
}

type StatusHistoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStatusHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) StatusHistoryRepositoryInterface {
	return &StatusHistoryRepository{storage: storage, logger: logger}
}

func (r *StatusHistoryRepository) queryHistories(ctx context.Context, where string, arg interface{}) ([]entities.StatusHistory, error) {
	// Status history has no factory_id column; factory scoping goes through
	// the equipment join.
	query := fmt.Sprintf(`
		SELECT h.id, h.equipment_id, h.status, h.notes, h.created_at, e.name AS equipment_name
		FROM %s AS h
			JOIN equipment AS e ON e.id = h.equipment_id
		WHERE %s
		ORDER BY h.created_at DESC, h.id DESC`, statusHistoryTable, where)

	rows, err := r.storage.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := []entities.StatusHistory{}
	for rows.Next() {
		var h entities.StatusHistory
		if err := rows.Scan(&h.ID, &h.EquipmentID, &h.Status, &h.Notes, &h.CreatedAt, &h.EquipmentName); err != nil {
			return nil, fmt.Errorf("scanning status history: %w", err)
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

func (r *StatusHistoryRepository) FindByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.StatusHistory, error) {
	return r.queryHistories(ctx, "h.equipment_id = $1", equipmentID)
}

func (r *StatusHistoryRepository) FindByFactoryID(ctx context.Context, factoryID uint64) ([]entities.StatusHistory, error) {
	return r.queryHistories(ctx, "e.factory_id = $1", factoryID)
}

func (r *StatusHistoryRepository) FindHistory(ctx context.Context, id uint64) (*entities.StatusHistory, error) {
	query := fmt.Sprintf(`
		SELECT h.id, h.equipment_id, h.status, h.notes, h.created_at, e.name AS equipment_name
		FROM %s AS h
			JOIN equipment AS e ON e.id = h.equipment_id
		WHERE h.id = $1`, statusHistoryTable)

	var h entities.StatusHistory
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.EquipmentID, &h.Status, &h.Notes, &h.CreatedAt, &h.EquipmentName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning status history: %w", err)
	}
	return &h, nil
}

func (r *StatusHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, h entities.StatusHistory) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (equipment_id, status, notes) VALUES ($1, $2, $3)
		RETURNING id`, statusHistoryTable)

	var id uint64
	if err := tx.QueryRow(ctx, query, h.EquipmentID, h.Status, h.Notes).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *StatusHistoryRepository) UpdateHistory(ctx context.Context, id uint64, h entities.StatusHistory) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $1, notes = $2 WHERE id = $3`, statusHistoryTable)

	result, err := r.storage.Exec(ctx, query, h.Status, h.Notes, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *StatusHistoryRepository) DeleteHistory(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", statusHistoryTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *StatusHistoryRepository) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	_, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE equipment_id = $1", statusHistoryTable), equipmentID)
	return err
}
