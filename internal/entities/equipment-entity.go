package entities

import (
	"github.com/aarondl/null/v8"

	"equipment-system/pkg/types"
)

// Equipment is one machine record. Fixed descriptive columns sit next to
// several JSON-encoded attribute bags whose shape is governed by the
// template/field registry; the bags are kept as raw column text here and
// unpacked by the service layer through internal/specs.
type Equipment struct {
	ID        uint64 `json:"id"`
	FactoryID uint64 `json:"factory_id"`
	Name      string `json:"name"`
	Maker     string `json:"maker"`
	Model     string `json:"model"`
	Status    string `json:"status"`

	TemplateName    null.String  `json:"template_name,omitempty"`
	SerialNumber    null.String  `json:"serial_number,omitempty"`
	AcquisitionCost null.Float64 `json:"acquisition_cost,omitempty"`
	AcquisitionDate null.Time    `json:"acquisition_date,omitempty"`
	InstallLocation null.String  `json:"install_location,omitempty"`
	Capacity        null.String  `json:"capacity,omitempty"`

	// Stored JSON bags (column text, not decoded here).
	Details        string `json:"-"`
	AccessorySpecs string `json:"-"`
	SparePartSpecs string `json:"-"`
	ScrewSpecs     string `json:"-"`
	OilSpecs       string `json:"-"`
	Documents      string `json:"-"`
	ImageURLs      string `json:"-"`

	types.BaseEntity

	// Joined data, not a column.
	FactoryName string `json:"factory_name,omitempty"`
}
