package seeders

import "equipment-system/pkg/constants"

type fieldDefinitionRow struct {
	Key      string
	Label    string
	Type     string
	Category string
}

// The registry the admin screens start from. Keys referenced by the seed
// templates below must appear here.
var fieldDefinitionsData = []fieldDefinitionRow{
	{"voltage", "Voltage (V)", constants.FieldTypeNumber, constants.FieldCategorySpecific},
	{"power_kw", "Rated Power (kW)", constants.FieldTypeNumber, constants.FieldCategorySpecific},
	{"air_pressure", "Air Pressure (MPa)", constants.FieldTypeNumber, constants.FieldCategorySpecific},
	{"stroke_length", "Stroke Length (mm)", constants.FieldTypeNumber, constants.FieldCategorySpecific},
	{"slide_speed", "Slide Speed (spm)", constants.FieldTypeNumber, constants.FieldCategorySpecific},
	{"max_load", "Maximum Load (t)", constants.FieldTypeNumber, constants.FieldCategorySpecific},
	{"bed_size", "Bed Size", constants.FieldTypeText, constants.FieldCategorySpecific},
	{"control_model", "Controller Model", constants.FieldTypeText, constants.FieldCategorySpecific},
	{"coolant_type", "Coolant Type", constants.FieldTypeText, constants.FieldCategorySpecific},
	{"inspection_date", "Last Inspection Date", constants.FieldTypeDate, constants.FieldCategorySpecific},
	{"warranty_until", "Warranty Until", constants.FieldTypeDate, constants.FieldCategorySpecific},
	{"accessories", "Accessories", constants.FieldTypeText, constants.FieldCategorySection},
	{"spare_parts", "Spare Parts", constants.FieldTypeText, constants.FieldCategorySection},
	{"screws", "Screw Replacement", constants.FieldTypeText, constants.FieldCategorySection},
	{"oils", "Oil and Lubrication", constants.FieldTypeText, constants.FieldCategorySection},
	{"documents", "Documents", constants.FieldTypeText, constants.FieldCategorySection},
}

type templateRow struct {
	Name         string
	DisplayName  string
	FieldsConfig string
}

var templatesData = []templateRow{
	{
		Name:        "press",
		DisplayName: "Press",
		FieldsConfig: `{"specific_fields":["voltage","power_kw","air_pressure","stroke_length","slide_speed","max_load","bed_size"],` +
			`"has_accessories":true,"has_spare_parts":true,"has_screws":true,"has_oils":true,"has_documents":true}`,
	},
	{
		Name:        "machining_center",
		DisplayName: "Machining Center",
		FieldsConfig: `{"specific_fields":["voltage","power_kw","control_model","coolant_type","inspection_date"],` +
			`"has_accessories":true,"has_spare_parts":true,"has_screws":false,"has_oils":true,"has_documents":true}`,
	},
	{
		Name:        "conveyor",
		DisplayName: "Conveyor",
		FieldsConfig: `{"specific_fields":["voltage","power_kw","warranty_until"],` +
			`"has_accessories":false,"has_spare_parts":true,"has_screws":false,"has_oils":true,"has_documents":false}`,
	},
	{
		Name:        "generic",
		DisplayName: "Generic Equipment",
		FieldsConfig: `{"specific_fields":[],` +
			`"has_accessories":true,"has_spare_parts":true,"has_screws":true,"has_oils":true,"has_documents":true}`,
	},
}
