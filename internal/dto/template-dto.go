package dto

import "equipment-system/internal/entities"

type CreateTemplateDTO struct {
	Name         string                `json:"name" validate:"required,max=100"`
	DisplayName  string                `json:"display_name" validate:"required,max=255"`
	FieldsConfig entities.FieldsConfig `json:"fields_config"`
}

type UpdateTemplateDTO struct {
	Name         *string                `json:"name,omitempty" validate:"omitempty,max=100"`
	DisplayName  *string                `json:"display_name,omitempty" validate:"omitempty,max=255"`
	FieldsConfig *entities.FieldsConfig `json:"fields_config,omitempty"`
	IsActive     *bool                  `json:"is_active,omitempty"`
}

type TemplateDTO struct {
	ID           uint64                `json:"id"`
	Name         string                `json:"name"`
	DisplayName  string                `json:"display_name"`
	FieldsConfig entities.FieldsConfig `json:"fields_config"`
	IsActive     bool                  `json:"is_active"`
	CreatedAt    string                `json:"created_at"`
	UpdatedAt    string                `json:"updated_at"`
}
