package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/types"
)

type factoryFixture struct {
	svc       FactoryServiceInterface
	factories *stubFactoryRepo
	equipment *stubEquipmentRepo
	logs      *stubLogRepo
	storage   *stubStorage
}

func newFactoryFixture(factories ...entities.Factory) *factoryFixture {
	f := &factoryFixture{
		factories: newStubFactoryRepo(factories...),
		equipment: newStubEquipmentRepo(),
		logs:      newStubLogRepo(),
		storage:   newStubStorage(),
	}
	cache, _ := newTestListCache()
	f.svc = NewFactoryService(f.factories, f.equipment, f.logs, f.storage, cache, zap.NewNop())
	return f
}

func TestCreateFactory(t *testing.T) {
	f := newFactoryFixture()

	out, err := f.svc.CreateFactory(adminCtx(), dto.CreateFactoryDTO{Name: "pusan", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "pusan", out.Name)
	assert.Equal(t, "hunter2", f.factories.factories[out.ID].Password)
}

func TestCreateFactoryDuplicateName(t *testing.T) {
	f := newFactoryFixture(entities.Factory{ID: 1, Name: "pusan", Password: "pw"})

	_, err := f.svc.CreateFactory(adminCtx(), dto.CreateFactoryDTO{Name: "pusan", Password: "other"})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestUpdateFactoryRename(t *testing.T) {
	f := newFactoryFixture(
		entities.Factory{ID: 1, Name: "pusan", Password: "pw"},
		entities.Factory{ID: 2, Name: "ulsan", Password: "pw"},
	)

	// Renaming onto another factory's name is refused.
	taken := "ulsan"
	_, err := f.svc.UpdateFactory(adminCtx(), 1, dto.UpdateFactoryDTO{Name: &taken})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)

	// Keeping your own name is not a conflict.
	same := "pusan"
	pw := "newpass"
	out, err := f.svc.UpdateFactory(adminCtx(), 1, dto.UpdateFactoryDTO{Name: &same, Password: &pw})
	require.NoError(t, err)
	assert.Equal(t, "pusan", out.Name)
	assert.Equal(t, "newpass", f.factories.factories[1].Password)
}

func TestDeleteFactoryCleansStoredImages(t *testing.T) {
	f := newFactoryFixture(
		entities.Factory{ID: 1, Name: "pusan", Password: "pw"},
		entities.Factory{ID: 2, Name: "ulsan", Password: "pw"},
	)
	f.equipment.equipment[1] = entities.Equipment{ID: 1, FactoryID: 1, ImageURLs: "/uploads/a.jpg"}
	f.equipment.equipment[2] = entities.Equipment{ID: 2, FactoryID: 2, ImageURLs: "/uploads/other.jpg"}
	f.logs.imagesByEquip[1] = []string{"/uploads/log1.jpg,/uploads/log2.jpg"}
	f.storage.failOn["/uploads/log2.jpg"] = true

	warnings, err := f.svc.DeleteFactory(adminCtx(), 1)
	require.NoError(t, err)

	_, err = f.factories.FindFactory(adminCtx(), 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Only the deleted factory's files go, and a stuck file is a warning.
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/log1.jpg"}, f.storage.deleted)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "/uploads/log2.jpg")
}

func TestDeleteFactoryNotFound(t *testing.T) {
	f := newFactoryFixture()

	_, err := f.svc.DeleteFactory(adminCtx(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, f.storage.deleted)
}

func TestGetFactoriesCaching(t *testing.T) {
	f := newFactoryFixture(entities.Factory{ID: 1, Name: "pusan", Password: "pw"})

	items, total, err := f.svc.GetFactories(adminCtx(), types.Filter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, items, 1)

	// Second read is served from the cache: a record added behind its back
	// stays invisible until a write bumps the version.
	f.factories.factories[2] = entities.Factory{ID: 2, Name: "ulsan"}
	_, total, err = f.svc.GetFactories(adminCtx(), types.Filter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	_, err = f.svc.DeleteFactory(adminCtx(), 1)
	require.NoError(t, err)
	_, total, err = f.svc.GetFactories(adminCtx(), types.Filter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
}

func TestFactoryDTOHidesPassword(t *testing.T) {
	f := newFactoryFixture(entities.Factory{ID: 1, Name: "pusan", Password: "pw"})

	out, err := f.svc.FindFactory(adminCtx(), 1)
	require.NoError(t, err)
	assert.Equal(t, dto.FactoryDTO{ID: 1, Name: "pusan", CreatedAt: out.CreatedAt}, *out)
}
