package dto

// CreateMaintenanceLogDTO takes the date and time as the two separate form
// inputs the UI collects; the service combines them into one timestamp.
type CreateMaintenanceLogDTO struct {
	EquipmentID     uint64   `json:"equipment_id" validate:"required,gt=0"`
	MaintenanceDate string   `json:"maintenance_date" validate:"required,datetime=2006-01-02"`
	MaintenanceTime string   `json:"maintenance_time,omitempty" validate:"omitempty,datetime=15:04"`
	Engineer        string   `json:"engineer" validate:"required,max=255"`
	Action          string   `json:"action" validate:"required"`
	ActionCategory  string   `json:"action_category" validate:"required,oneof=electrical mechanical drive other"`
	Notes           string   `json:"notes,omitempty"`
	Cost            *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	ImageURLs       []string `json:"image_urls,omitempty"`
}

type UpdateMaintenanceLogDTO struct {
	MaintenanceDate *string  `json:"maintenance_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MaintenanceTime *string  `json:"maintenance_time,omitempty" validate:"omitempty,datetime=15:04"`
	Engineer        *string  `json:"engineer,omitempty" validate:"omitempty,max=255"`
	Action          *string  `json:"action,omitempty"`
	ActionCategory  *string  `json:"action_category,omitempty" validate:"omitempty,oneof=electrical mechanical drive other"`
	Notes           *string  `json:"notes,omitempty"`
	Cost            *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	ImageURLs       []string `json:"image_urls,omitempty"`
}

type MaintenanceLogDTO struct {
	ID              uint64   `json:"id"`
	EquipmentID     uint64   `json:"equipment_id"`
	EquipmentName   string   `json:"equipment_name,omitempty"`
	FactoryName     string   `json:"factory_name,omitempty"`
	MaintenanceDate string   `json:"maintenance_date"`
	Engineer        string   `json:"engineer"`
	Action          string   `json:"action"`
	ActionCategory  string   `json:"action_category"`
	Notes           string   `json:"notes"`
	Cost            *float64 `json:"cost,omitempty"`
	ImageURLs       []string `json:"image_urls,omitempty"`
	CreatedAt       string   `json:"created_at"`
}
