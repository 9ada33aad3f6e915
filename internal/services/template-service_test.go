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
)

func newTemplateFixture(templates ...entities.EquipmentTemplate) (TemplateServiceInterface, *stubTemplateRepo) {
	repo := newStubTemplateRepo(templates...)
	cache, _ := newTestListCache()
	return NewTemplateService(repo, cache, zap.NewNop()), repo
}

func TestCreateTemplate(t *testing.T) {
	svc, repo := newTemplateFixture()

	out, err := svc.CreateTemplate(adminCtx(), dto.CreateTemplateDTO{
		Name:        "press",
		DisplayName: "Press",
		FieldsConfig: entities.FieldsConfig{
			SpecificFields: []string{"voltage"},
			HasAccessories: true,
			HasOils:        true,
		},
	})
	require.NoError(t, err)
	assert.True(t, out.IsActive)
	assert.Equal(t, []string{"voltage"}, out.FieldsConfig.SpecificFields)
	assert.True(t, out.FieldsConfig.HasOils)
	assert.False(t, out.FieldsConfig.HasScrews)

	// The config round-trips through the stored column.
	stored := repo.templates[out.ID]
	cfg := stored.Config()
	assert.Equal(t, []string{"voltage"}, cfg.SpecificFields)
}

func TestCreateTemplateDuplicateName(t *testing.T) {
	svc, _ := newTemplateFixture(entities.EquipmentTemplate{ID: 1, Name: "press", IsActive: true})

	_, err := svc.CreateTemplate(adminCtx(), dto.CreateTemplateDTO{Name: "press", DisplayName: "Press"})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestUpdateTemplateDeactivation(t *testing.T) {
	svc, repo := newTemplateFixture(entities.EquipmentTemplate{
		ID: 1, Name: "press", DisplayName: "Press", IsActive: true,
		FieldsConfig: `{"has_oils":true}`,
	})

	inactive := false
	out, err := svc.UpdateTemplate(adminCtx(), 1, dto.UpdateTemplateDTO{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, out.IsActive)
	assert.False(t, repo.templates[1].IsActive)

	// Deactivated templates drop out of the active listing only.
	active, err := svc.GetTemplates(adminCtx(), true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.GetTemplates(adminCtx(), false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateTemplateRenameConflict(t *testing.T) {
	svc, _ := newTemplateFixture(
		entities.EquipmentTemplate{ID: 1, Name: "press", IsActive: true},
		entities.EquipmentTemplate{ID: 2, Name: "conveyor", IsActive: true},
	)

	taken := "conveyor"
	_, err := svc.UpdateTemplate(adminCtx(), 1, dto.UpdateTemplateDTO{Name: &taken})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}
