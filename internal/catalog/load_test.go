package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
	"40025": {
		"artnr": 40025,
		"type": "24V DC",
		"converter_description": "POWERLED CONVERTER 24V 50W",
		"dimmability": "DALI / 1-10V",
		"ip": "IP67",
		"class": 2,
		"nom_input_voltage_v": {"min": "198", "max": "264"},
		"output_voltage_v": "2-25",
		"efficiency_full_load": "0,87",
		"size": "160*40*30",
		"listprice": "49,90",
		"gross_weight": 0.4,
		"lamps": {
			"HALOLED": {"min": 1, "max": "4"},
			"LEDLINE 12V": {"min": "1", "max": 2}
		}
	},
	"93055": {
		"artnr": "93055.0",
		"converter_description": "MINILED DRIVER 350mA",
		"type": "350mA",
		"lamps": {}
	}
}`

func TestParse(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	rec, ok := cat.ByArtnr("40025")
	require.True(t, ok)

	assert.Equal(t, "POWERLED CONVERTER 24V 50W", rec.Description)
	assert.Equal(t, "POWERLED CONVERTER 24V 50W (ARTNR: 40025)", rec.Label())

	// decimal-comma strings decode as numbers
	require.NotNil(t, rec.Efficiency)
	assert.InDelta(t, 0.87, *rec.Efficiency, 1e-9)
	require.NotNil(t, rec.ListPrice)
	assert.InDelta(t, 49.90, *rec.ListPrice, 1e-9)

	// IP arrives with a prefix, class as a bare number
	require.NotNil(t, rec.IPRating)
	assert.Equal(t, 67, *rec.IPRating)
	assert.Equal(t, "IP67", rec.IPCode())
	require.NotNil(t, rec.SafetyClass)
	assert.Equal(t, 2, *rec.SafetyClass)

	// voltage ranges as {min,max} object and as "a-b" string
	require.NotNil(t, rec.InputVoltage)
	assert.Equal(t, Range{Min: 198, Max: 264}, *rec.InputVoltage)
	require.NotNil(t, rec.OutputVoltage)
	assert.Equal(t, Range{Min: 2, Max: 25}, *rec.OutputVoltage)

	// lamp bounds mixed numeric and string
	assert.Equal(t, LampRange{Min: 1, Max: 4}, rec.Lamps["HALOLED"])
	assert.Equal(t, LampRange{Min: 1, Max: 2}, rec.Lamps["LEDLINE 12V"])
}

func TestParseFloatArtnr(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	// "93055.0" canonicalizes to 93055
	rec, ok := cat.ByArtnr("93055")
	require.True(t, ok)
	assert.Equal(t, 93055, rec.ArticleNumber)
}

func TestParseMissingFieldsStayAbsent(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	rec, ok := cat.ByArtnr("93055")
	require.True(t, ok)
	assert.Nil(t, rec.Efficiency)
	assert.Nil(t, rec.ListPrice)
	assert.Nil(t, rec.IPRating)
	assert.Nil(t, rec.InputVoltage)
	assert.Equal(t, "N/A", rec.IPCode())
}

func TestParseRecordsSorted(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	all := cat.All()
	require.Len(t, all, 2)
	assert.Equal(t, 40025, all[0].ArticleNumber)
	assert.Equal(t, 93055, all[1].ArticleNumber)
}

func TestParseIPVariants(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want *int
	}{
		{"bare number", `67`, iptr(67)},
		{"prefixed string", `"IP67"`, iptr(67)},
		{"numeric string with fraction", `"67.0"`, iptr(67)},
		{"unparseable string", `"unknown"`, nil},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"1": {"artnr": 40025, "ip": ` + tt.ip + `, "lamps": {}}}`
			cat, err := Parse([]byte(doc))
			require.NoError(t, err)
			rec, ok := cat.ByArtnr("40025")
			require.True(t, ok)
			if tt.want == nil {
				assert.Nil(t, rec.IPRating)
			} else {
				require.NotNil(t, rec.IPRating)
				assert.Equal(t, *tt.want, *rec.IPRating)
			}
		})
	}
}

func iptr(n int) *int { return &n }

func TestParseBadArtnr(t *testing.T) {
	_, err := Parse([]byte(`{"x": {"artnr": "not-a-number"}}`))
	require.Error(t, err)
}

func TestLengthMM(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	rec, _ := cat.ByArtnr("40025")
	assert.Equal(t, 160.0, rec.LengthMM())
}

func TestHasType(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	rec, _ := cat.ByArtnr("40025")
	assert.True(t, rec.HasType("24v"))
	assert.False(t, rec.HasType("350ma"))

	mini, _ := cat.ByArtnr("93055")
	assert.True(t, mini.HasType("350ma"))
}
