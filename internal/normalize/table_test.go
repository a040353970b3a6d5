package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTableEmpty(t *testing.T) {
	table := BuildTable(nil)

	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
	require.NotNil(t, table.Placeholder)
	assert.Equal(t, PlaceholderText, table.Placeholder.Text)
	assert.Equal(t, 10, table.Placeholder.Colspan)
}

func TestBuildTableColumnsFromFirstRow(t *testing.T) {
	rows, err := Normalize([]byte(`[
		{"site_no":"01","station_nm":"Upper","extra":true},
		{"station_nm":"Lower","site_no":"02","late":"ignored"}
	]`))
	require.NoError(t, err)

	table := BuildTable(rows)
	assert.Nil(t, table.Placeholder)
	assert.Equal(t, []Column{
		{Key: "site_no", Label: "Site Number"},
		{Key: "station_nm", Label: "Station Name"},
		{Key: "extra", Label: "Extra"},
	}, table.Columns)
	assert.Equal(t, [][]string{
		{"01", "Upper", "true"},
		{"02", "Lower", ""},
	}, table.Rows)
}

func TestCell(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"false", false, ""},
		{"true", true, "true"},
		{"zero number", json.Number("0"), ""},
		{"zero float text", json.Number("0.0"), ""},
		{"number", json.Number("12.50"), "12.50"},
		{"empty string", "", ""},
		{"string", "N/A", "N/A"},
		{"zero int", 0, ""},
		{"int", 3, "3"},
		{"float", 1.5, "1.5"},
		{"array", []any{json.Number("1"), "a"}, `[1,"a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cell(tt.in))
		})
	}
}

func TestCellNestedObject(t *testing.T) {
	rows, err := Normalize([]byte(`[{"geo":{"lat":1,"lon":2}}]`))
	require.NoError(t, err)

	v, _ := rows[0].Get("geo")
	assert.Equal(t, `{"lat":1,"lon":2}`, Cell(v))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "pH", Label(KeyPH))
	assert.Equal(t, "Dissolved Oxygen", Label(KeyOxygen))
	assert.Equal(t, "Variables", Label(KeyVariableCount))
	assert.Equal(t, "TurbidityNtu", Label("turbidityNtu"))
	assert.Equal(t, "", Label(""))
}
