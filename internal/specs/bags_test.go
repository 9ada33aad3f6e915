package specs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScrewTable(t *testing.T) {
	rows := NormalizeScrewTable(map[string][]ScrewRow{
		"upper": {
			{Part: "guide bolt", Cycle: "6m"},
		},
		"base": {
			{Part: "anchor", Material: "SUS304"},
			{Part: "frame bolt"},
		},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "base", rows[0].Section)
	assert.Equal(t, "anchor", rows[0].Part)
	assert.Equal(t, "base", rows[1].Section)
	assert.Equal(t, "upper", rows[2].Section)
	assert.Equal(t, "guide bolt", rows[2].Part)
}

func TestNormalizeScrewTableEmpty(t *testing.T) {
	assert.Nil(t, NormalizeScrewTable(nil))
	assert.Nil(t, NormalizeScrewTable(map[string][]ScrewRow{}))
}

func TestOilSentinelRoundTrip(t *testing.T) {
	rows := []OilRow{
		{Part: "gearbox", OilType: "VG220", Cycle: "3m"},
		{Part: "slide", OilType: "VG68"},
	}
	rows = AppendOilNotes(rows, "check level weekly", "wipe residue")
	require.Len(t, rows, 4)

	table, notes, aftercare := SplitOilRows(rows)
	assert.Len(t, table, 2)
	assert.Equal(t, "check level weekly", notes)
	assert.Equal(t, "wipe residue", aftercare)
}

func TestAppendOilNotesSkipsEmpty(t *testing.T) {
	rows := AppendOilNotes([]OilRow{{Part: "gearbox"}}, "", "")
	assert.Len(t, rows, 1)
}

func TestOilRowIsSentinel(t *testing.T) {
	assert.True(t, OilRow{Notes: "text"}.IsSentinel())
	assert.True(t, OilRow{Aftercare: "text"}.IsSentinel())
	assert.False(t, OilRow{Part: "gearbox", Notes: "inline note"}.IsSentinel())
	assert.False(t, OilRow{}.IsSentinel())
}

func TestDecodeRowsLenient(t *testing.T) {
	assert.Nil(t, DecodeAccessories(""))
	assert.Nil(t, DecodeAccessories("not json"))
	assert.Nil(t, DecodeOilRows(`{"object":"not array"}`))

	rows := DecodeSpareParts(`[{"part":"belt","cycle":"12m"}]`)
	require.Len(t, rows, 1)
	assert.Equal(t, "belt", rows[0].Part)
}
