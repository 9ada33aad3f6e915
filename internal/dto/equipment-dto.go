package dto

import (
	"encoding/json"

	"equipment-system/internal/specs"
)

// CreateEquipmentDTO carries a new equipment record: fixed scalar columns
// plus the structured sections. Details arrives as raw JSON so the client's
// key order survives into the stored column.
type CreateEquipmentDTO struct {
	FactoryID uint64 `json:"factory_id,omitempty" validate:"omitempty,gt=0"`
	Name      string `json:"name" validate:"required,max=255"`
	Maker     string `json:"maker" validate:"max=255"`
	Model     string `json:"model" validate:"max=255"`

	TemplateName    *string  `json:"template_name,omitempty" validate:"omitempty,max=100"`
	SerialNumber    *string  `json:"serial_number,omitempty"`
	AcquisitionCost *float64 `json:"acquisition_cost,omitempty" validate:"omitempty,gte=0"`
	AcquisitionDate *string  `json:"acquisition_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	InstallLocation *string  `json:"install_location,omitempty"`
	Capacity        *string  `json:"capacity,omitempty"`

	Details      json.RawMessage             `json:"details,omitempty"`
	Accessories  []specs.AccessoryRow        `json:"accessory_specs,omitempty"`
	SpareParts   []specs.SparePartRow        `json:"spare_part_specs,omitempty"`
	ScrewTables  map[string][]specs.ScrewRow `json:"screw_specs,omitempty"`
	OilRows      []specs.OilRow              `json:"oil_specs,omitempty"`
	OilNotes     string                      `json:"oil_notes,omitempty"`
	OilAftercare string                      `json:"oil_aftercare,omitempty"`
	Documents    []specs.Document            `json:"documents,omitempty"`
	ImageURLs    []string                    `json:"image_urls,omitempty"`
}

// UpdateEquipmentDTO mutates an equipment record. Image handling: the record
// keeps the union of KeepImageURLs and NewImageURLs; previously stored URLs
// absent from that union are dropped and their objects deleted best-effort.
// NewDocuments are merged into the existing document list by name.
type UpdateEquipmentDTO struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Maker  *string `json:"maker,omitempty" validate:"omitempty,max=255"`
	Model  *string `json:"model,omitempty" validate:"omitempty,max=255"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=normal faulty sold"`

	TemplateName    *string  `json:"template_name,omitempty" validate:"omitempty,max=100"`
	SerialNumber    *string  `json:"serial_number,omitempty"`
	AcquisitionCost *float64 `json:"acquisition_cost,omitempty" validate:"omitempty,gte=0"`
	AcquisitionDate *string  `json:"acquisition_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	InstallLocation *string  `json:"install_location,omitempty"`
	Capacity        *string  `json:"capacity,omitempty"`

	Details      json.RawMessage             `json:"details,omitempty"`
	Accessories  []specs.AccessoryRow        `json:"accessory_specs,omitempty"`
	SpareParts   []specs.SparePartRow        `json:"spare_part_specs,omitempty"`
	ScrewTables  map[string][]specs.ScrewRow `json:"screw_specs,omitempty"`
	OilRows      []specs.OilRow              `json:"oil_specs,omitempty"`
	OilNotes     string                      `json:"oil_notes,omitempty"`
	OilAftercare string                      `json:"oil_aftercare,omitempty"`

	NewDocuments  []specs.Document `json:"new_documents,omitempty"`
	KeepImageURLs []string         `json:"keep_image_urls,omitempty"`
	NewImageURLs  []string         `json:"new_image_urls,omitempty"`
}

// EquipmentDTO is the read shape: fixed columns plus every bag unpacked,
// with the oil sentinels already split out of the tabular rows.
type EquipmentDTO struct {
	ID          uint64 `json:"id"`
	FactoryID   uint64 `json:"factory_id"`
	FactoryName string `json:"factory_name"`
	Name        string `json:"name"`
	Maker       string `json:"maker"`
	Model       string `json:"model"`
	Status      string `json:"status"`

	TemplateName    string   `json:"template_name,omitempty"`
	SerialNumber    string   `json:"serial_number,omitempty"`
	AcquisitionCost *float64 `json:"acquisition_cost,omitempty"`
	AcquisitionDate string   `json:"acquisition_date,omitempty"`
	InstallLocation string   `json:"install_location,omitempty"`
	Capacity        string   `json:"capacity,omitempty"`

	Details      specs.Details        `json:"details"`
	Accessories  []specs.AccessoryRow `json:"accessory_specs,omitempty"`
	SpareParts   []specs.SparePartRow `json:"spare_part_specs,omitempty"`
	ScrewRows    []specs.ScrewRow     `json:"screw_specs,omitempty"`
	OilTable     []specs.OilRow       `json:"oil_specs,omitempty"`
	OilNotes     string               `json:"oil_notes,omitempty"`
	OilAftercare string               `json:"oil_aftercare,omitempty"`
	Documents    []specs.Document     `json:"documents,omitempty"`
	ImageURLs    []string             `json:"image_urls,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
