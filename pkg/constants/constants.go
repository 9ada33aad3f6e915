package constants

// Equipment status codes. Any status is reachable from any other; transitions
// happen only through status-history inserts.
const (
	StatusNormal = "normal"
	StatusFaulty = "faulty"
	StatusSold   = "sold"
)

// Maintenance action categories.
const (
	ActionCategoryElectrical = "electrical"
	ActionCategoryMechanical = "mechanical"
	ActionCategoryDrive      = "drive"
	ActionCategoryOther      = "other"
)

// Field definition types and categories for the template registry.
const (
	FieldTypeText   = "text"
	FieldTypeNumber = "number"
	FieldTypeDate   = "date"

	FieldCategorySpecific = "specific"
	FieldCategorySection  = "section"
)
