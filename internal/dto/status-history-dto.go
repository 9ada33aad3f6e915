package dto

type CreateStatusHistoryDTO struct {
	Status string `json:"status" validate:"required,oneof=normal faulty sold"`
	Notes  string `json:"notes,omitempty"`
}

type UpdateStatusHistoryDTO struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=normal faulty sold"`
	Notes  *string `json:"notes,omitempty"`
}

type StatusHistoryDTO struct {
	ID            uint64 `json:"id"`
	EquipmentID   uint64 `json:"equipment_id"`
	EquipmentName string `json:"equipment_name,omitempty"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
	CreatedAt     string `json:"created_at"`
}
