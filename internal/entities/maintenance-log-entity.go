package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// MaintenanceLog is one service action performed on a piece of equipment.
type MaintenanceLog struct {
	ID              uint64       `json:"id"`
	EquipmentID     uint64       `json:"equipment_id"`
	MaintenanceDate time.Time    `json:"maintenance_date"`
	Engineer        string       `json:"engineer"`
	Action          string       `json:"action"`
	ActionCategory  string       `json:"action_category"`
	Notes           string       `json:"notes"`
	ImageURLs       string       `json:"-"`
	Cost            null.Float64 `json:"cost,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`

	// Joined data, not columns.
	EquipmentName string `json:"equipment_name,omitempty"`
	FactoryName   string `json:"factory_name,omitempty"`
}
