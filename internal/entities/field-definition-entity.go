package entities

import "time"

// FieldDefinition is a named, typed attribute that templates may include.
// Definitions are soft-deleted (is_active=false) so historical templates
// referencing a key keep resolving.
type FieldDefinition struct {
	ID         uint64    `json:"id"`
	FieldKey   string    `json:"field_key"`
	FieldLabel string    `json:"field_label"`
	FieldType  string    `json:"field_type"`
	Category   string    `json:"category"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}
