package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
	"equipment-system/internal/specs"
	"equipment-system/pkg/constants"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/filestorage"
	"equipment-system/pkg/types"
	"equipment-system/pkg/utils"
)

type EquipmentServiceInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, []string, error)
	DeleteEquipment(ctx context.Context, id uint64) ([]string, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logRepo       repositories.MaintenanceLogRepositoryInterface
	historyRepo   repositories.StatusHistoryRepositoryInterface
	templateRepo  repositories.TemplateRepositoryInterface
	fieldRepo     repositories.FieldDefinitionRepositoryInterface
	txManager     repositories.TxManagerInterface
	storage       filestorage.FileStorageInterface
	cache         *ListCache
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logRepo repositories.MaintenanceLogRepositoryInterface,
	historyRepo repositories.StatusHistoryRepositoryInterface,
	templateRepo repositories.TemplateRepositoryInterface,
	fieldRepo repositories.FieldDefinitionRepositoryInterface,
	txManager repositories.TxManagerInterface,
	storage filestorage.FileStorageInterface,
	cache *ListCache,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		logRepo:       logRepo,
		historyRepo:   historyRepo,
		templateRepo:  templateRepo,
		fieldRepo:     fieldRepo,
		txManager:     txManager,
		storage:       storage,
		cache:         cache,
		logger:        logger,
	}
}

// authorizeEquipment enforces the tenancy rule: a factory session may only
// touch its own records, an admin session may touch any.
func authorizeEquipment(ctx context.Context, e *entities.Equipment) error {
	if utils.IsAdminFromCtx(ctx) {
		return nil
	}
	factoryID, err := utils.GetFactoryIDFromCtx(ctx)
	if err != nil {
		return err
	}
	if e.FactoryID != factoryID {
		return apperrors.ErrForbidden
	}
	return nil
}

// activeFieldKeys loads the registry once per request for render-time
// filtering of detail keys whose definitions were deactivated.
func (s *EquipmentService) activeFieldKeys(ctx context.Context) (map[string]entities.FieldDefinition, error) {
	defs, err := s.fieldRepo.GetFieldDefinitions(ctx, true)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]entities.FieldDefinition, len(defs))
	for _, d := range defs {
		byKey[d.FieldKey] = d
	}
	return byKey, nil
}

// normalizeDetails validates a raw details object against the field registry
// and, when a template is in play, against its specific-fields list. Values
// are coerced to the registered type; key order is preserved.
func (s *EquipmentService) normalizeDetails(ctx context.Context, raw []byte, cfg *entities.FieldsConfig) (string, error) {
	if len(raw) == 0 {
		return "{}", nil
	}
	parsed, err := specs.ParseDetails(raw)
	if err != nil {
		return "", apperrors.NewInvalidInputError("details must be a JSON object: %v", err)
	}
	if parsed.Len() == 0 {
		return "{}", nil
	}

	defs, err := s.activeFieldKeys(ctx)
	if err != nil {
		return "", err
	}

	var allowed map[string]bool
	if cfg != nil && len(cfg.SpecificFields) > 0 {
		allowed = make(map[string]bool, len(cfg.SpecificFields))
		for _, k := range cfg.SpecificFields {
			allowed[k] = true
		}
	}

	var normalized specs.Details
	for _, key := range parsed.Keys() {
		def, ok := defs[key]
		if !ok {
			return "", apperrors.NewInvalidInputError("unknown detail field %q", key)
		}
		if allowed != nil && !allowed[key] {
			return "", apperrors.NewInvalidInputError("detail field %q is not part of the template", key)
		}
		value, _ := parsed.Get(key)
		coerced, err := specs.NormalizeValue(def.FieldType, value)
		if err != nil {
			return "", apperrors.NewInvalidInputError("detail field %q: %v", key, err)
		}
		normalized.Set(key, coerced)
	}
	return specs.EncodeJSON(normalized)
}

// resolveTemplate looks up a named template; a name that resolves to nothing
// or to a deactivated template is a client error.
func (s *EquipmentService) resolveTemplate(ctx context.Context, name *string) (*entities.EquipmentTemplate, error) {
	if name == nil || *name == "" {
		return nil, nil
	}
	tpl, err := s.templateRepo.FindTemplateByName(ctx, *name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("unknown template %q", *name)
		}
		return nil, err
	}
	if !tpl.IsActive {
		return nil, apperrors.NewInvalidInputError("template %q is no longer active", *name)
	}
	return tpl, nil
}

func encodeRows(v interface{}, enabled bool) (string, error) {
	if !enabled || v == nil {
		return "[]", nil
	}
	return specs.EncodeJSON(v)
}

func parseDateColumn(value *string) (null.Time, error) {
	if value == nil || *value == "" {
		return null.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return null.Time{}, apperrors.NewInvalidInputError("acquisition_date must be YYYY-MM-DD")
	}
	return null.TimeFrom(t), nil
}

// equipmentListKey serializes a filter into a cache key. Map entries go in
// sorted key order so identical queries always land on the same key.
func equipmentListKey(filter types.Filter) string {
	filterKeys := make([]string, 0, len(filter.Filter))
	for k := range filter.Filter {
		filterKeys = append(filterKeys, k)
	}
	sort.Strings(filterKeys)
	sortKeys := make([]string, 0, len(filter.Sort))
	for k := range filter.Sort {
		sortKeys = append(sortKeys, k)
	}
	sort.Strings(sortKeys)

	var b strings.Builder
	b.WriteString("equipment")
	for _, k := range filterKeys {
		fmt.Fprintf(&b, ":%s=%v", k, filter.Filter[k])
	}
	for _, k := range sortKeys {
		fmt.Fprintf(&b, ":%s.%s", k, filter.Sort[k])
	}
	fmt.Fprintf(&b, ":%s:%d:%d", filter.Search, filter.Limit, filter.Offset)
	return b.String()
}

func (s *EquipmentService) GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	// Factory sessions only ever see their own fleet.
	if !utils.IsAdminFromCtx(ctx) {
		factoryID, err := utils.GetFactoryIDFromCtx(ctx)
		if err != nil {
			return nil, 0, err
		}
		if filter.Filter == nil {
			filter.Filter = map[string]interface{}{}
		}
		filter.Filter["factory_id"] = strconv.FormatUint(factoryID, 10)
	}

	key := equipmentListKey(filter)
	var cached struct {
		Items []dto.EquipmentDTO `json:"items"`
		Total uint64             `json:"total"`
	}
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached.Items, cached.Total, nil
	}

	equipment, total, err := s.equipmentRepo.GetEquipment(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	defs, err := s.activeFieldKeys(ctx)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.EquipmentDTO, 0, len(equipment))
	for _, e := range equipment {
		items = append(items, toEquipmentDTO(e, defs))
	}

	cached.Items = items
	cached.Total = total
	s.cache.SetJSON(ctx, key, cached)
	return items, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	e, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeEquipment(ctx, e); err != nil {
		return nil, err
	}
	defs, err := s.activeFieldKeys(ctx)
	if err != nil {
		return nil, err
	}
	out := toEquipmentDTO(*e, defs)
	return &out, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	factoryID, err := s.resolveFactoryID(ctx, payload.FactoryID)
	if err != nil {
		return nil, err
	}

	tpl, err := s.resolveTemplate(ctx, payload.TemplateName)
	if err != nil {
		return nil, err
	}
	cfg := sectionsFor(tpl)

	var tplCfg *entities.FieldsConfig
	if tpl != nil {
		c := tpl.Config()
		tplCfg = &c
	}
	details, err := s.normalizeDetails(ctx, payload.Details, tplCfg)
	if err != nil {
		return nil, err
	}

	acqDate, err := parseDateColumn(payload.AcquisitionDate)
	if err != nil {
		return nil, err
	}

	e := entities.Equipment{
		FactoryID: factoryID,
		Name:      payload.Name,
		Maker:     payload.Maker,
		Model:     payload.Model,
		Status:    constants.StatusNormal,

		TemplateName:    null.StringFromPtr(payload.TemplateName),
		SerialNumber:    null.StringFromPtr(payload.SerialNumber),
		AcquisitionCost: null.Float64FromPtr(payload.AcquisitionCost),
		AcquisitionDate: acqDate,
		InstallLocation: null.StringFromPtr(payload.InstallLocation),
		Capacity:        null.StringFromPtr(payload.Capacity),

		Details:   details,
		ImageURLs: specs.JoinImageURLs(payload.ImageURLs),
	}

	if e.AccessorySpecs, err = encodeRows(payload.Accessories, cfg.HasAccessories); err != nil {
		return nil, err
	}
	if e.SparePartSpecs, err = encodeRows(payload.SpareParts, cfg.HasSpareParts); err != nil {
		return nil, err
	}
	screwRows := specs.NormalizeScrewTable(payload.ScrewTables)
	if e.ScrewSpecs, err = encodeRows(screwRows, cfg.HasScrews); err != nil {
		return nil, err
	}
	oilRows := specs.AppendOilNotes(payload.OilRows, payload.OilNotes, payload.OilAftercare)
	if e.OilSpecs, err = encodeRows(oilRows, cfg.HasOils); err != nil {
		return nil, err
	}
	if !cfg.HasDocuments || payload.Documents == nil {
		e.Documents = "[]"
	} else if e.Documents, err = specs.EncodeJSON(payload.Documents); err != nil {
		return nil, err
	}

	id, err := s.equipmentRepo.CreateEquipment(ctx, e)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("equipment created",
		zap.Uint64("id", id),
		zap.Uint64("factory_id", factoryID),
		zap.String("name", payload.Name))

	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, []string, error) {
	existing, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := authorizeEquipment(ctx, existing); err != nil {
		return nil, nil, err
	}

	if payload.Name != nil {
		existing.Name = *payload.Name
	}
	if payload.Maker != nil {
		existing.Maker = *payload.Maker
	}
	if payload.Model != nil {
		existing.Model = *payload.Model
	}
	if payload.Status != nil {
		existing.Status = *payload.Status
	}
	if payload.TemplateName != nil {
		existing.TemplateName = null.StringFromPtr(payload.TemplateName)
	}
	if payload.SerialNumber != nil {
		existing.SerialNumber = null.StringFromPtr(payload.SerialNumber)
	}
	if payload.AcquisitionCost != nil {
		existing.AcquisitionCost = null.Float64FromPtr(payload.AcquisitionCost)
	}
	if payload.AcquisitionDate != nil {
		acqDate, err := parseDateColumn(payload.AcquisitionDate)
		if err != nil {
			return nil, nil, err
		}
		existing.AcquisitionDate = acqDate
	}
	if payload.InstallLocation != nil {
		existing.InstallLocation = null.StringFromPtr(payload.InstallLocation)
	}
	if payload.Capacity != nil {
		existing.Capacity = null.StringFromPtr(payload.Capacity)
	}

	tpl, err := s.resolveTemplate(ctx, strPtrFromNull(existing.TemplateName))
	if err != nil {
		return nil, nil, err
	}
	var tplCfg *entities.FieldsConfig
	if tpl != nil {
		c := tpl.Config()
		tplCfg = &c
	}
	cfg := sectionsFor(tpl)

	if payload.Details != nil {
		details, err := s.normalizeDetails(ctx, payload.Details, tplCfg)
		if err != nil {
			return nil, nil, err
		}
		existing.Details = details
	}
	if payload.Accessories != nil {
		if existing.AccessorySpecs, err = encodeRows(payload.Accessories, cfg.HasAccessories); err != nil {
			return nil, nil, err
		}
	}
	if payload.SpareParts != nil {
		if existing.SparePartSpecs, err = encodeRows(payload.SpareParts, cfg.HasSpareParts); err != nil {
			return nil, nil, err
		}
	}
	if payload.ScrewTables != nil {
		rows := specs.NormalizeScrewTable(payload.ScrewTables)
		if existing.ScrewSpecs, err = encodeRows(rows, cfg.HasScrews); err != nil {
			return nil, nil, err
		}
	}
	if payload.OilRows != nil || payload.OilNotes != "" || payload.OilAftercare != "" {
		rows := specs.AppendOilNotes(payload.OilRows, payload.OilNotes, payload.OilAftercare)
		if existing.OilSpecs, err = encodeRows(rows, cfg.HasOils); err != nil {
			return nil, nil, err
		}
	}
	if payload.NewDocuments != nil {
		merged := specs.MergeDocuments(specs.DecodeDocuments(existing.Documents), payload.NewDocuments)
		if existing.Documents, err = specs.EncodeJSON(merged); err != nil {
			return nil, nil, err
		}
	}

	var warnings []string
	if payload.KeepImageURLs != nil || payload.NewImageURLs != nil {
		merged := specs.MergeImageURLs(payload.KeepImageURLs, payload.NewImageURLs)
		dropped := specs.DroppedImageURLs(specs.SplitImageURLs(existing.ImageURLs), merged)
		warnings = cleanupImages(s.storage, s.logger, dropped)
		existing.ImageURLs = specs.JoinImageURLs(merged)
	}

	if err := s.equipmentRepo.UpdateEquipment(ctx, id, *existing); err != nil {
		return nil, nil, err
	}
	s.cache.InvalidateAll(ctx)

	out, err := s.FindEquipment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return out, warnings, nil
}

// DeleteEquipment removes the record along with its status history and
// maintenance logs. Stored images are deleted first, best-effort: a file that
// cannot be removed becomes a warning, never a failed delete.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) ([]string, error) {
	existing, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeEquipment(ctx, existing); err != nil {
		return nil, err
	}

	urls := specs.SplitImageURLs(existing.ImageURLs)
	logURLs, err := s.logRepo.ImageURLsByEquipmentID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, stored := range logURLs {
		urls = append(urls, specs.SplitImageURLs(stored)...)
	}
	warnings := cleanupImages(s.storage, s.logger, urls)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.historyRepo.DeleteByEquipmentIDInTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.logRepo.DeleteByEquipmentIDInTx(ctx, tx, id); err != nil {
			return err
		}
		return s.equipmentRepo.DeleteEquipmentInTx(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateAll(ctx)
	s.logger.Info("equipment deleted", zap.Uint64("id", id), zap.Int("warnings", len(warnings)))
	return warnings, nil
}

func (s *EquipmentService) resolveFactoryID(ctx context.Context, requested uint64) (uint64, error) {
	if utils.IsAdminFromCtx(ctx) {
		if requested == 0 {
			return 0, apperrors.NewInvalidInputError("factory_id is required for admin-created equipment")
		}
		return requested, nil
	}
	factoryID, err := utils.GetFactoryIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	if requested != 0 && requested != factoryID {
		return 0, apperrors.ErrForbidden
	}
	return factoryID, nil
}

// cleanupImages removes stored image objects best-effort: a file that cannot
// be deleted becomes a warning for the caller to surface, never an error.
func cleanupImages(storage filestorage.FileStorageInterface, logger *zap.Logger, urls []string) []string {
	var warnings []string
	for _, url := range urls {
		if err := storage.Delete(url); err != nil {
			logger.Warn("image cleanup failed", zap.String("url", url), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("failed to delete image %s", url))
		}
	}
	return warnings
}

// sectionsFor resolves which optional sections a record may carry. Without a
// template every section is open; with one, the template decides.
func sectionsFor(tpl *entities.EquipmentTemplate) entities.FieldsConfig {
	if tpl == nil {
		return entities.FieldsConfig{
			HasAccessories: true,
			HasSpareParts:  true,
			HasScrews:      true,
			HasOils:        true,
			HasDocuments:   true,
		}
	}
	return tpl.Config()
}

func strPtrFromNull(v null.String) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func toEquipmentDTO(e entities.Equipment, defs map[string]entities.FieldDefinition) dto.EquipmentDTO {
	details := specs.DecodeDetails(e.Details)
	details = details.Filter(func(key string) bool {
		_, ok := defs[key]
		return ok
	})

	oilTable, oilNotes, oilAftercare := specs.SplitOilRows(specs.DecodeOilRows(e.OilSpecs))

	out := dto.EquipmentDTO{
		ID:          e.ID,
		FactoryID:   e.FactoryID,
		FactoryName: e.FactoryName,
		Name:        e.Name,
		Maker:       e.Maker,
		Model:       e.Model,
		Status:      e.Status,

		TemplateName:    e.TemplateName.String,
		SerialNumber:    e.SerialNumber.String,
		InstallLocation: e.InstallLocation.String,
		Capacity:        e.Capacity.String,

		Details:      details,
		Accessories:  specs.DecodeAccessories(e.AccessorySpecs),
		SpareParts:   specs.DecodeSpareParts(e.SparePartSpecs),
		ScrewRows:    specs.DecodeScrewRows(e.ScrewSpecs),
		OilTable:     oilTable,
		OilNotes:     oilNotes,
		OilAftercare: oilAftercare,
		Documents:    specs.DecodeDocuments(e.Documents),
		ImageURLs:    specs.SplitImageURLs(e.ImageURLs),

		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
	if e.AcquisitionCost.Valid {
		cost := e.AcquisitionCost.Float64
		out.AcquisitionCost = &cost
	}
	if e.AcquisitionDate.Valid {
		out.AcquisitionDate = e.AcquisitionDate.Time.Format("2006-01-02")
	}
	return out
}
