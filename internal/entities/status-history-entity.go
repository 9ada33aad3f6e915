package entities

import "time"

// StatusHistory is one entry of an equipment's condition trail. Inserting an
// entry also overwrites the equipment's current status.
type StatusHistory struct {
	ID          uint64    `json:"id"`
	EquipmentID uint64    `json:"equipment_id"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined data, not a column.
	EquipmentName string `json:"equipment_name,omitempty"`
}
