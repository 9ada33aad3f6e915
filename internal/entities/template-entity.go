package entities

import (
	"encoding/json"

	"equipment-system/pkg/types"
)

// FieldsConfig describes which specific fields and optional sections apply
// to equipment created from a template.
type FieldsConfig struct {
	SpecificFields []string `json:"specific_fields"`
	HasAccessories bool     `json:"has_accessories"`
	HasSpareParts  bool     `json:"has_spare_parts"`
	HasScrews      bool     `json:"has_screws"`
	HasOils        bool     `json:"has_oils"`
	HasDocuments   bool     `json:"has_documents"`
}

// EquipmentTemplate is an admin-defined schema for a class of equipment.
type EquipmentTemplate struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	FieldsConfig string `json:"-"` // stored column text
	IsActive     bool   `json:"is_active"`

	types.BaseEntity
}

// Config decodes the stored fields_config column; malformed JSON yields the
// zero config (no specific fields, no sections).
func (t *EquipmentTemplate) Config() FieldsConfig {
	var cfg FieldsConfig
	if t.FieldsConfig == "" {
		return cfg
	}
	if err := json.Unmarshal([]byte(t.FieldsConfig), &cfg); err != nil {
		return FieldsConfig{}
	}
	return cfg
}
