package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/pkg/constants"
	apperrors "equipment-system/pkg/errors"
)

func newFieldDefinitionFixture(defs ...entities.FieldDefinition) (FieldDefinitionServiceInterface, *stubFieldRepo) {
	repo := newStubFieldRepo(defs...)
	cache, _ := newTestListCache()
	return NewFieldDefinitionService(repo, cache, zap.NewNop()), repo
}

func TestCreateFieldDefinition(t *testing.T) {
	svc, repo := newFieldDefinitionFixture()

	out, err := svc.CreateFieldDefinition(adminCtx(), dto.CreateFieldDefinitionDTO{
		FieldKey:   "voltage",
		FieldLabel: "Voltage (V)",
		FieldType:  constants.FieldTypeNumber,
		Category:   constants.FieldCategorySpecific,
	})
	require.NoError(t, err)
	assert.Equal(t, "voltage", out.FieldKey)
	assert.True(t, out.IsActive)
	assert.True(t, repo.defs[out.ID].IsActive)
}

func TestCreateFieldDefinitionDuplicateKey(t *testing.T) {
	svc, _ := newFieldDefinitionFixture(entities.FieldDefinition{
		ID: 1, FieldKey: "voltage", FieldType: constants.FieldTypeNumber, IsActive: true,
	})

	_, err := svc.CreateFieldDefinition(adminCtx(), dto.CreateFieldDefinitionDTO{
		FieldKey:   "voltage",
		FieldLabel: "Voltage",
		FieldType:  constants.FieldTypeNumber,
		Category:   constants.FieldCategorySpecific,
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDeactivateFieldDefinition(t *testing.T) {
	svc, repo := newFieldDefinitionFixture(entities.FieldDefinition{
		ID: 1, FieldKey: "voltage", FieldType: constants.FieldTypeNumber, IsActive: true,
	})

	require.NoError(t, svc.DeactivateFieldDefinition(adminCtx(), 1))
	assert.False(t, repo.defs[1].IsActive)

	// The key is soft-deleted, not gone.
	_, err := repo.FindByKey(context.Background(), "voltage")
	assert.NoError(t, err)

	active, err := svc.GetFieldDefinitions(adminCtx(), true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.GetFieldDefinitions(adminCtx(), false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeactivateFieldDefinitionNotFound(t *testing.T) {
	svc, _ := newFieldDefinitionFixture()
	assert.ErrorIs(t, svc.DeactivateFieldDefinition(adminCtx(), 99), apperrors.ErrNotFound)
}
