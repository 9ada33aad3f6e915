package repositories

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-system/internal/entities"
	"equipment-system/pkg/constants"
	"equipment-system/pkg/database/postgresql"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/types"
)

var testPool *pgxpool.Pool

// TestMain connects to the database named by TEST_DATABASE_URL and applies
// the embedded migrations. Without the variable the integration tests are
// skipped, not failed.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	if err := postgresql.Migrate(dsn); err != nil {
		log.Fatalf("could not migrate test database: %v", err)
	}

	var err error
	testPool, err = postgresql.ConnectDB(context.Background(), dsn)
	if err != nil {
		log.Fatalf("could not connect to test database: %v", err)
	}
	defer testPool.Close()

	os.Exit(m.Run())
}

func requireTestDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
}

func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE TABLE equipment_status_history, maintenance_logs, equipment, factories RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func seedFactory(t *testing.T, pool *pgxpool.Pool, name string) uint64 {
	t.Helper()
	var id uint64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO factories (name, password) VALUES ($1, 'pw') RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestEquipmentRepository_Integration_CreateAndFind(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t, testPool)
	factoryID := seedFactory(t, testPool, "pusan")
	repo := NewEquipmentRepository(testPool, zap.NewNop())
	ctx := context.Background()

	id, err := repo.CreateEquipment(ctx, entities.Equipment{
		FactoryID:      factoryID,
		Name:           "Press 80t",
		Maker:          "Amada",
		Status:         constants.StatusNormal,
		Details:        `{"voltage":380}`,
		AccessorySpecs: `[{"name":"die set"}]`,
		SparePartSpecs: "[]",
		ScrewSpecs:     "[]",
		OilSpecs:       "[]",
		Documents:      "[]",
		ImageURLs:      "/uploads/a.jpg,/uploads/b.jpg",
	})
	require.NoError(t, err)

	found, err := repo.FindEquipment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Press 80t", found.Name)
	assert.Equal(t, "pusan", found.FactoryName)
	assert.Equal(t, `{"voltage":380}`, found.Details)
	assert.Equal(t, `[{"name":"die set"}]`, found.AccessorySpecs)
	assert.Equal(t, "/uploads/a.jpg,/uploads/b.jpg", found.ImageURLs)

	_, err = repo.FindEquipment(ctx, id+1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEquipmentRepository_Integration_ListByFactory(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t, testPool)
	repo := NewEquipmentRepository(testPool, zap.NewNop())
	ctx := context.Background()

	pusanID := seedFactory(t, testPool, "pusan")
	ulsanID := seedFactory(t, testPool, "ulsan")
	for _, e := range []entities.Equipment{
		{FactoryID: pusanID, Name: "Press", Status: constants.StatusNormal},
		{FactoryID: pusanID, Name: "Lathe", Status: constants.StatusNormal},
		{FactoryID: ulsanID, Name: "Conveyor", Status: constants.StatusNormal},
	} {
		e.Details, e.AccessorySpecs, e.SparePartSpecs = "{}", "[]", "[]"
		e.ScrewSpecs, e.OilSpecs, e.Documents = "[]", "[]", "[]"
		_, err := repo.CreateEquipment(ctx, e)
		require.NoError(t, err)
	}

	items, total, err := repo.GetEquipment(ctx, types.Filter{
		Filter: map[string]interface{}{"factory_id": pusanID},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, items, 2)
	// Default ordering is by name.
	assert.Equal(t, "Lathe", items[0].Name)
	assert.Equal(t, "Press", items[1].Name)

	items, total, err = repo.GetEquipment(ctx, types.Filter{Search: "conv"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, "Conveyor", items[0].Name)
}

func TestEquipmentRepository_Integration_StatusAndCascade(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t, testPool)
	factoryID := seedFactory(t, testPool, "pusan")
	repo := NewEquipmentRepository(testPool, zap.NewNop())
	historyRepo := NewStatusHistoryRepository(testPool, zap.NewNop())
	logRepo := NewMaintenanceLogRepository(testPool, zap.NewNop())
	txManager := NewTxManager(testPool)
	ctx := context.Background()

	id, err := repo.CreateEquipment(ctx, entities.Equipment{
		FactoryID: factoryID, Name: "Press", Status: constants.StatusNormal,
		Details: "{}", AccessorySpecs: "[]", SparePartSpecs: "[]",
		ScrewSpecs: "[]", OilSpecs: "[]", Documents: "[]",
	})
	require.NoError(t, err)

	err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := historyRepo.CreateInTx(ctx, tx, entities.StatusHistory{
			EquipmentID: id, Status: constants.StatusFaulty, Notes: "bearing",
		}); err != nil {
			return err
		}
		return repo.UpdateStatusInTx(ctx, tx, id, constants.StatusFaulty)
	})
	require.NoError(t, err)

	found, err := repo.FindEquipment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusFaulty, found.Status)

	rows, err := historyRepo.FindByEquipmentID(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bearing", rows[0].Notes)

	err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := historyRepo.DeleteByEquipmentIDInTx(ctx, tx, id); err != nil {
			return err
		}
		if err := logRepo.DeleteByEquipmentIDInTx(ctx, tx, id); err != nil {
			return err
		}
		return repo.DeleteEquipmentInTx(ctx, tx, id)
	})
	require.NoError(t, err)

	_, err = repo.FindEquipment(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
