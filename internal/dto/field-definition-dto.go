package dto

type CreateFieldDefinitionDTO struct {
	FieldKey   string `json:"field_key" validate:"required,max=100"`
	FieldLabel string `json:"field_label" validate:"required,max=255"`
	FieldType  string `json:"field_type" validate:"required,oneof=text number date"`
	Category   string `json:"category" validate:"required,oneof=specific section"`
}

type FieldDefinitionDTO struct {
	ID         uint64 `json:"id"`
	FieldKey   string `json:"field_key"`
	FieldLabel string `json:"field_label"`
	FieldType  string `json:"field_type"`
	Category   string `json:"category"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
}
