package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/trackerview/internal/filter"
	"github.com/hupe1980/trackerview/internal/view"
)

func sampleView() []view.Row {
	return []view.Row{
		{
			Name: view.Annotated{Name: "Bahamas", Color: "#ff0000"},
			Categories: view.Categories{
				NewStatus:            view.Annotated{Name: "Launched", Color: "#1b7837"},
				UseCase:              view.Annotated{Name: "Retail"},
				CorporatePartnership: "Yes",
			},
			Show: true,
		},
		{
			Name:       view.Annotated{Name: "Sweden"},
			Categories: view.Categories{NewStatus: view.Annotated{Name: "Pilot"}},
			Show:       false,
		},
	}
}

// ---------------------------------------------------------------------------
// JSON / YAML
// ---------------------------------------------------------------------------

func TestFormatJSON_ShownOnly(t *testing.T) {
	out, err := FormatJSON(sampleView(), Options{})
	require.NoError(t, err)

	var got []view.Row
	require.NoError(t, json.Unmarshal(out, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Bahamas", got[0].Name.Name)
	assert.Equal(t, "#ff0000", got[0].Name.Color)
}

func TestFormatJSON_EmptyIsArray(t *testing.T) {
	out, err := FormatJSON(nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))
}

func TestFormatYAML_All(t *testing.T) {
	out, err := FormatYAML(sampleView(), Options{All: true})
	require.NoError(t, err)

	var got []view.Row
	require.NoError(t, sigsyaml.Unmarshal(out, &got))
	require.Len(t, got, 2)
	assert.False(t, got[1].Show)
	assert.Contains(t, string(out), "new_status:")
}

// ---------------------------------------------------------------------------
// CSV
// ---------------------------------------------------------------------------

func TestFormatCSV(t *testing.T) {
	out, err := FormatCSV(sampleView(), Options{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
	assert.Equal(t, "Bahamas,Launched,Retail,,,,,Yes,", lines[1])
}

func TestFormatCSV_AllAddsShowColumn(t *testing.T) {
	out, err := FormatCSV(sampleView(), Options{All: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], ",show"))
	assert.True(t, strings.HasSuffix(lines[2], ",false"))
	assert.Len(t, csvHeader, 9, "header must not be modified")
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

func TestFormatTable_NoColorAligned(t *testing.T) {
	out, err := FormatTable(sampleView(), Options{All: true, NoColor: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, string(out), "\x1b[")

	// The status column starts at the same offset on every line.
	col := strings.Index(lines[0], "STATUS")
	assert.Equal(t, "Launched", lines[1][col:col+len("Launched")])
	assert.Equal(t, "Pilot", lines[2][col:col+len("Pilot")])
	assert.True(t, strings.HasSuffix(lines[2], "false"))
}

func TestFormatTable_ColorSwatches(t *testing.T) {
	out, err := FormatTable(sampleView(), Options{})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "\x1b[38;2;255;0;0m")
	assert.Contains(t, s, "\x1b[38;2;27;120;55m")
	assert.NotContains(t, s, "Sweden")
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input   string
		r, g, b uint8
		ok      bool
	}{
		{"#ff8000", 255, 128, 0, true},
		{"#fff", 255, 255, 255, true},
		{"000000", 0, 0, 0, true},
		{"", 0, 0, 0, false},
		{"red", 0, 0, 0, false},
		{"#zzzzzz", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, g, b, ok := parseHex(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, []uint8{tt.r, tt.g, tt.b}, []uint8{r, g, b})
		})
	}
}

// ---------------------------------------------------------------------------
// Filters
// ---------------------------------------------------------------------------

func TestFormatFilters(t *testing.T) {
	listings := []FilterListing{{
		Name:    "status",
		Options: filter.State{{ID: "Pilot", Name: "Pilot", Selected: true}, {ID: "Research", Name: "Research"}},
	}}

	out, err := FormatFilters("table", listings)
	require.NoError(t, err)
	assert.Contains(t, string(out), "FILTER")
	assert.Contains(t, string(out), "Research")

	out, err = FormatFilters("json", listings)
	require.NoError(t, err)

	var got []FilterListing
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, listings, got)

	out, err = FormatFilters("yaml", listings)
	require.NoError(t, err)
	assert.Contains(t, string(out), "selected: true")

	_, err = FormatFilters("csv", listings)
	require.Error(t, err)
}

func TestListFilters(t *testing.T) {
	set := filter.NewSet()
	set.Init(nil, []string{"Pilot"})

	got := ListFilters(set)
	require.Len(t, got, 9)
	assert.Equal(t, filter.Status, got[0].Name)
	assert.Equal(t, []string{"Pilot"}, got[0].Options.IDs())
}

// ---------------------------------------------------------------------------
// Reports
// ---------------------------------------------------------------------------

func TestFormatMarkdown(t *testing.T) {
	rows := sampleView()
	rows[0].Categories.CrossborderPartnerships = "A|B"

	out, err := FormatMarkdown(rows, Options{})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "# Tracker")
	assert.Contains(t, s, "1 of 2 rows shown.")
	assert.Contains(t, s, "| NAME | STATUS |")
	assert.Contains(t, s, "| Bahamas | Launched | Retail |")
	assert.Contains(t, s, `A\|B`)
	assert.NotContains(t, s, "Sweden")

	out, err = FormatMarkdown(rows, Options{All: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), "| Sweden | Pilot |")
	assert.Contains(t, string(out), "| false |")
}

func TestFormatHTML(t *testing.T) {
	rows := sampleView()
	rows[0].Name.Name = "<Bahamas>"

	out, err := FormatHTML(rows, Options{All: true})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<!DOCTYPE html>")
	assert.Contains(t, s, "1 of 2 rows shown.")
	assert.Contains(t, s, "&lt;Bahamas&gt;")
	assert.Contains(t, s, "background:#1b7837")
	assert.Contains(t, s, `<tr class="hidden">`)
}
