package specs

import (
	"encoding/json"
	"sort"
)

// AccessoryRow is one row of the accessory section.
type AccessoryRow struct {
	Name     string `json:"name"`
	Spec     string `json:"spec,omitempty"`
	Quantity string `json:"quantity,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// SparePartRow is one row of the spare-part section: part, replacement
// cycle, and the date it was last replaced.
type SparePartRow struct {
	Part     string `json:"part"`
	Cycle    string `json:"cycle,omitempty"`
	LastDate string `json:"last_date,omitempty"`
}

// ScrewRow is one flattened row of the screw-cycle tables. Section records
// which material table the row came from.
type ScrewRow struct {
	Section  string `json:"section,omitempty"`
	Part     string `json:"part"`
	Material string `json:"material,omitempty"`
	Cycle    string `json:"cycle,omitempty"`
	LastDate string `json:"last_date,omitempty"`
}

// NormalizeScrewTable flattens the nested per-material table input into a
// plain row list before encoding. Sections are visited in sorted order so
// the stored form is deterministic.
func NormalizeScrewTable(tables map[string][]ScrewRow) []ScrewRow {
	if len(tables) == 0 {
		return nil
	}
	sections := make([]string, 0, len(tables))
	for section := range tables {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	var rows []ScrewRow
	for _, section := range sections {
		for _, row := range tables[section] {
			row.Section = section
			rows = append(rows, row)
		}
	}
	return rows
}

// OilRow is one entry of the oil-spec array. Two sentinel shapes ride along
// in the same array: {"notes": …} and {"aftercare": …}, carrying free text
// that does not fit the tabular rows. Tabular consumers must go through
// SplitOilRows.
type OilRow struct {
	Part      string `json:"part,omitempty"`
	OilType   string `json:"oil_type,omitempty"`
	Cycle     string `json:"cycle,omitempty"`
	LastDate  string `json:"last_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Aftercare string `json:"aftercare,omitempty"`
}

// IsSentinel reports whether the row is one of the free-text carrier entries
// rather than a tabular row.
func (r OilRow) IsSentinel() bool {
	return r.Part == "" && r.OilType == "" && r.Cycle == "" && r.LastDate == "" &&
		(r.Notes != "" || r.Aftercare != "")
}

// AppendOilNotes appends the free-text sentinels after the tabular rows.
// Empty texts produce no sentinel.
func AppendOilNotes(rows []OilRow, notes, aftercare string) []OilRow {
	if notes != "" {
		rows = append(rows, OilRow{Notes: notes})
	}
	if aftercare != "" {
		rows = append(rows, OilRow{Aftercare: aftercare})
	}
	return rows
}

// SplitOilRows separates the tabular rows from the sentinel texts.
func SplitOilRows(rows []OilRow) (table []OilRow, notes string, aftercare string) {
	for _, row := range rows {
		if row.IsSentinel() {
			if row.Notes != "" {
				notes = row.Notes
			}
			if row.Aftercare != "" {
				aftercare = row.Aftercare
			}
			continue
		}
		table = append(table, row)
	}
	return table, notes, aftercare
}

// Decode helpers for the stored columns. Malformed stored JSON yields an
// empty collection rather than an error.

func DecodeAccessories(stored string) []AccessoryRow {
	return decodeRows[AccessoryRow](stored)
}

func DecodeSpareParts(stored string) []SparePartRow {
	return decodeRows[SparePartRow](stored)
}

func DecodeScrewRows(stored string) []ScrewRow {
	return decodeRows[ScrewRow](stored)
}

func DecodeOilRows(stored string) []OilRow {
	return decodeRows[OilRow](stored)
}

func decodeRows[T any](stored string) []T {
	if stored == "" {
		return nil
	}
	var rows []T
	if err := json.Unmarshal([]byte(stored), &rows); err != nil {
		return nil
	}
	return rows
}
