package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilmBlueprint_JSONAlwaysHasAllKeys(t *testing.T) {
	var bp FilmBlueprint
	bp.Set(SectionShots, "wide")

	raw, err := json.Marshal(bp)
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Len(t, m, len(SectionKeys))
	for _, k := range SectionKeys {
		_, ok := m[string(k)]
		assert.True(t, ok, "missing key %s", k)
	}
	assert.Equal(t, "wide", m["shots"])
}

func TestFilmBlueprint_GetSet(t *testing.T) {
	var bp FilmBlueprint
	for i, k := range SectionKeys {
		require.True(t, bp.Set(k, string(rune('a'+i))))
	}
	for i, k := range SectionKeys {
		assert.Equal(t, string(rune('a'+i)), bp.Get(k))
	}
	assert.False(t, bp.Set("unknown", "x"))
	assert.Equal(t, "", bp.Get("unknown"))
}

func TestFilmBlueprint_EmptySections(t *testing.T) {
	var bp FilmBlueprint
	assert.True(t, bp.IsEmpty())
	assert.Equal(t, SectionKeys, bp.EmptySections())

	bp.Story = "x"
	bp.Production = "y"
	assert.False(t, bp.IsEmpty())
	missing := bp.EmptySections()
	assert.Len(t, missing, len(SectionKeys)-2)
	assert.NotContains(t, missing, SectionStory)
	assert.NotContains(t, missing, SectionProduction)
}

func TestSectionKey_Title(t *testing.T) {
	assert.Equal(t, "Story & Structure", SectionStory.Title())
	assert.Equal(t, "Shot List", SectionShots.Title())
	assert.Equal(t, "mystery", SectionKey("mystery").Title())
}

func TestBudget_Label(t *testing.T) {
	tests := []struct {
		in   Budget
		want string
	}{
		{BudgetLow, "Low Budget"},
		{BudgetMedium, "Medium Budget"},
		{BudgetHigh, "High Budget"},
		{" HIGH ", "Medium Budget"},
		{"", "Medium Budget"},
		{"unknown-value", "Medium Budget"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Label(), "budget %q", tt.in)
	}

	assert.True(t, BudgetHigh.Valid())
	assert.False(t, Budget("HIGH").Valid())
	assert.False(t, Budget("").Valid())
}

func TestFormData_WithDefaults(t *testing.T) {
	got := FormData{Genre: "Horror", Tone: "   ", Budget: BudgetLow}.WithDefaults()

	assert.Equal(t, "Horror", got.Genre)
	assert.Equal(t, DefaultTone, got.Tone)
	assert.Equal(t, DefaultLogline, got.Logline)
	assert.Equal(t, DefaultSetting, got.Setting)
	assert.Equal(t, DefaultEra, got.Era)
	assert.Equal(t, DefaultVisualStyle, got.VisualStyle)
	assert.Equal(t, BudgetLow, got.Budget)
}
