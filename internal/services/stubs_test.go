package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-system/internal/entities"
	"equipment-system/pkg/contextkeys"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/types"
)

func factoryCtx(id uint64) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.FactoryIDKey, id)
	return context.WithValue(ctx, contextkeys.IsAdminKey, false)
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.FactoryIDKey, uint64(0))
	return context.WithValue(ctx, contextkeys.IsAdminKey, true)
}

var errCacheMiss = errors.New("cache miss")

type stubCache struct {
	values map[string]string
	ver    int64
}

func newStubCache() *stubCache {
	return &stubCache{values: map[string]string{}}
}

func (c *stubCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.values[key] = value.(string)
	return nil
}

func (c *stubCache) Get(ctx context.Context, key string) (string, error) {
	if key == cacheVersionKey {
		if c.ver == 0 {
			return "", errCacheMiss
		}
		return strconv.FormatInt(c.ver, 10), nil
	}
	v, ok := c.values[key]
	if !ok {
		return "", errCacheMiss
	}
	return v, nil
}

func (c *stubCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *stubCache) Incr(ctx context.Context, key string) (int64, error) {
	c.ver++
	return c.ver, nil
}

func newTestListCache() (*ListCache, *stubCache) {
	cache := newStubCache()
	return NewListCache(cache, time.Minute, zap.NewNop()), cache
}

type stubTxManager struct {
	runs int
	fail error
}

func (m *stubTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.runs++
	if m.fail != nil {
		return m.fail
	}
	return fn(nil)
}

type stubStorage struct {
	deleted []string
	failOn  map[string]bool
}

func newStubStorage() *stubStorage {
	return &stubStorage{failOn: map[string]bool{}}
}

func (s *stubStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	return "/uploads/" + prefix + "/" + originalFileName, nil
}

func (s *stubStorage) Delete(publicURL string) error {
	if s.failOn[publicURL] {
		return errors.New("unlink failed")
	}
	s.deleted = append(s.deleted, publicURL)
	return nil
}

type stubFactoryRepo struct {
	factories map[uint64]entities.Factory
	byName    map[string]uint64
	nextID    uint64
}

func newStubFactoryRepo(factories ...entities.Factory) *stubFactoryRepo {
	r := &stubFactoryRepo{
		factories: map[uint64]entities.Factory{},
		byName:    map[string]uint64{},
		nextID:    1,
	}
	for _, f := range factories {
		r.factories[f.ID] = f
		r.byName[f.Name] = f.ID
		if f.ID >= r.nextID {
			r.nextID = f.ID + 1
		}
	}
	return r
}

func (r *stubFactoryRepo) GetFactories(ctx context.Context, filter types.Filter) ([]entities.Factory, uint64, error) {
	out := make([]entities.Factory, 0, len(r.factories))
	for _, f := range r.factories {
		out = append(out, f)
	}
	return out, uint64(len(out)), nil
}

func (r *stubFactoryRepo) FindFactory(ctx context.Context, id uint64) (*entities.Factory, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &f, nil
}

func (r *stubFactoryRepo) FindFactoryByName(ctx context.Context, name string) (*entities.Factory, error) {
	id, ok := r.byName[name]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return r.FindFactory(ctx, id)
}

func (r *stubFactoryRepo) CreateFactory(ctx context.Context, factory entities.Factory) (uint64, error) {
	factory.ID = r.nextID
	r.nextID++
	r.factories[factory.ID] = factory
	r.byName[factory.Name] = factory.ID
	return factory.ID, nil
}

func (r *stubFactoryRepo) UpdateFactory(ctx context.Context, id uint64, factory entities.Factory) error {
	if _, ok := r.factories[id]; !ok {
		return apperrors.ErrNotFound
	}
	factory.ID = id
	r.factories[id] = factory
	return nil
}

func (r *stubFactoryRepo) DeleteFactory(ctx context.Context, id uint64) error {
	f, ok := r.factories[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(r.byName, f.Name)
	delete(r.factories, id)
	return nil
}

type stubEquipmentRepo struct {
	equipment map[uint64]entities.Equipment
	nextID    uint64
	deleted   []uint64
}

func newStubEquipmentRepo(items ...entities.Equipment) *stubEquipmentRepo {
	r := &stubEquipmentRepo{equipment: map[uint64]entities.Equipment{}, nextID: 1}
	for _, e := range items {
		r.equipment[e.ID] = e
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
	}
	return r
}

func (r *stubEquipmentRepo) GetEquipment(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	out := make([]entities.Equipment, 0, len(r.equipment))
	for _, e := range r.equipment {
		if v, ok := filter.Filter["factory_id"]; ok {
			if fmt.Sprintf("%v", v) != strconv.FormatUint(e.FactoryID, 10) {
				continue
			}
		}
		out = append(out, e)
	}
	return out, uint64(len(out)), nil
}

func (r *stubEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	e, ok := r.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *stubEquipmentRepo) CreateEquipment(ctx context.Context, e entities.Equipment) (uint64, error) {
	e.ID = r.nextID
	r.nextID++
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.equipment[e.ID] = e
	return e.ID, nil
}

func (r *stubEquipmentRepo) UpdateEquipment(ctx context.Context, id uint64, e entities.Equipment) error {
	if _, ok := r.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	e.ID = id
	r.equipment[id] = e
	return nil
}

func (r *stubEquipmentRepo) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	e, ok := r.equipment[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Status = status
	r.equipment[id] = e
	return nil
}

func (r *stubEquipmentRepo) DeleteEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := r.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.equipment, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubLogRepo struct {
	logs           map[uint64]entities.MaintenanceLog
	nextID         uint64
	imagesByEquip  map[uint64][]string
	deletedByEquip []uint64
}

func newStubLogRepo() *stubLogRepo {
	return &stubLogRepo{
		logs:          map[uint64]entities.MaintenanceLog{},
		nextID:        1,
		imagesByEquip: map[uint64][]string{},
	}
}

func (r *stubLogRepo) GetLogs(ctx context.Context, filter types.Filter) ([]entities.MaintenanceLog, uint64, error) {
	out := make([]entities.MaintenanceLog, 0, len(r.logs))
	for _, l := range r.logs {
		out = append(out, l)
	}
	return out, uint64(len(out)), nil
}

func (r *stubLogRepo) FindLog(ctx context.Context, id uint64) (*entities.MaintenanceLog, error) {
	l, ok := r.logs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (r *stubLogRepo) CreateLog(ctx context.Context, log entities.MaintenanceLog) (uint64, error) {
	log.ID = r.nextID
	r.nextID++
	log.CreatedAt = time.Now()
	r.logs[log.ID] = log
	return log.ID, nil
}

func (r *stubLogRepo) UpdateLog(ctx context.Context, id uint64, log entities.MaintenanceLog) error {
	if _, ok := r.logs[id]; !ok {
		return apperrors.ErrNotFound
	}
	log.ID = id
	r.logs[id] = log
	return nil
}

func (r *stubLogRepo) DeleteLog(ctx context.Context, id uint64) error {
	if _, ok := r.logs[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

func (r *stubLogRepo) ImageURLsByEquipmentID(ctx context.Context, equipmentID uint64) ([]string, error) {
	return r.imagesByEquip[equipmentID], nil
}

func (r *stubLogRepo) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	for id, l := range r.logs {
		if l.EquipmentID == equipmentID {
			delete(r.logs, id)
		}
	}
	r.deletedByEquip = append(r.deletedByEquip, equipmentID)
	return nil
}

type stubHistoryRepo struct {
	histories      map[uint64]entities.StatusHistory
	nextID         uint64
	deletedByEquip []uint64
	equipment      *stubEquipmentRepo
}

func newStubHistoryRepo() *stubHistoryRepo {
	return &stubHistoryRepo{histories: map[uint64]entities.StatusHistory{}, nextID: 1}
}

func (r *stubHistoryRepo) FindByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.StatusHistory, error) {
	var out []entities.StatusHistory
	for _, h := range r.histories {
		if h.EquipmentID == equipmentID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *stubHistoryRepo) FindByFactoryID(ctx context.Context, factoryID uint64) ([]entities.StatusHistory, error) {
	var out []entities.StatusHistory
	if r.equipment == nil {
		return out, nil
	}
	for _, h := range r.histories {
		e, ok := r.equipment.equipment[h.EquipmentID]
		if !ok || e.FactoryID != factoryID {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *stubHistoryRepo) FindHistory(ctx context.Context, id uint64) (*entities.StatusHistory, error) {
	h, ok := r.histories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &h, nil
}

func (r *stubHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, history entities.StatusHistory) (uint64, error) {
	history.ID = r.nextID
	r.nextID++
	history.CreatedAt = time.Now()
	r.histories[history.ID] = history
	return history.ID, nil
}

func (r *stubHistoryRepo) UpdateHistory(ctx context.Context, id uint64, history entities.StatusHistory) error {
	if _, ok := r.histories[id]; !ok {
		return apperrors.ErrNotFound
	}
	history.ID = id
	r.histories[id] = history
	return nil
}

func (r *stubHistoryRepo) DeleteHistory(ctx context.Context, id uint64) error {
	if _, ok := r.histories[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.histories, id)
	return nil
}

func (r *stubHistoryRepo) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	for id, h := range r.histories {
		if h.EquipmentID == equipmentID {
			delete(r.histories, id)
		}
	}
	r.deletedByEquip = append(r.deletedByEquip, equipmentID)
	return nil
}

type stubTemplateRepo struct {
	templates map[uint64]entities.EquipmentTemplate
	nextID    uint64
}

func newStubTemplateRepo(templates ...entities.EquipmentTemplate) *stubTemplateRepo {
	r := &stubTemplateRepo{templates: map[uint64]entities.EquipmentTemplate{}, nextID: 1}
	for _, t := range templates {
		r.templates[t.ID] = t
		if t.ID >= r.nextID {
			r.nextID = t.ID + 1
		}
	}
	return r
}

func (r *stubTemplateRepo) GetTemplates(ctx context.Context, activeOnly bool) ([]entities.EquipmentTemplate, error) {
	var out []entities.EquipmentTemplate
	for _, t := range r.templates {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *stubTemplateRepo) FindTemplate(ctx context.Context, id uint64) (*entities.EquipmentTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *stubTemplateRepo) FindTemplateByName(ctx context.Context, name string) (*entities.EquipmentTemplate, error) {
	for _, t := range r.templates {
		if t.Name == name {
			t := t
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubTemplateRepo) CreateTemplate(ctx context.Context, template entities.EquipmentTemplate) (uint64, error) {
	template.ID = r.nextID
	r.nextID++
	r.templates[template.ID] = template
	return template.ID, nil
}

func (r *stubTemplateRepo) UpdateTemplate(ctx context.Context, id uint64, template entities.EquipmentTemplate) error {
	if _, ok := r.templates[id]; !ok {
		return apperrors.ErrNotFound
	}
	template.ID = id
	r.templates[id] = template
	return nil
}

type stubFieldRepo struct {
	defs   map[uint64]entities.FieldDefinition
	nextID uint64
}

func newStubFieldRepo(defs ...entities.FieldDefinition) *stubFieldRepo {
	r := &stubFieldRepo{defs: map[uint64]entities.FieldDefinition{}, nextID: 1}
	for _, d := range defs {
		r.defs[d.ID] = d
		if d.ID >= r.nextID {
			r.nextID = d.ID + 1
		}
	}
	return r
}

func (r *stubFieldRepo) GetFieldDefinitions(ctx context.Context, activeOnly bool) ([]entities.FieldDefinition, error) {
	var out []entities.FieldDefinition
	for _, d := range r.defs {
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *stubFieldRepo) FindFieldDefinition(ctx context.Context, id uint64) (*entities.FieldDefinition, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (r *stubFieldRepo) FindByKey(ctx context.Context, fieldKey string) (*entities.FieldDefinition, error) {
	for _, d := range r.defs {
		if d.FieldKey == fieldKey {
			d := d
			return &d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubFieldRepo) CreateFieldDefinition(ctx context.Context, def entities.FieldDefinition) (uint64, error) {
	def.ID = r.nextID
	r.nextID++
	def.CreatedAt = time.Now()
	r.defs[def.ID] = def
	return def.ID, nil
}

func (r *stubFieldRepo) DeactivateFieldDefinition(ctx context.Context, id uint64) error {
	d, ok := r.defs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	d.IsActive = false
	r.defs[id] = d
	return nil
}
