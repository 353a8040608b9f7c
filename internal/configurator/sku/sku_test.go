package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
)

func baseComponents() Components {
	return Components{
		Brand:      "Renin",
		SeriesCode: "CONT",
		DoorType:   catalogdomain.DoorTypeBarn,
		WidthIn:    48,
		HeightIn:   80,
		PanelCount: 2,
		Material:   "PIN",
		Finish:     "MWH",
		Glass:      "FRO",
		Hardware:   []string{"PTK", "SCK"},
	}
}

func TestGenerate_Format(t *testing.T) {
	got := Generate(baseComponents())
	assert.Equal(t, "RENIN-CONT-BD-W4800-H8000-P2-MPIN-FMWH-GFRO-XPTK-XSCK", got)
}

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate(baseComponents())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Generate(baseComponents()))
	}
}

func TestGenerate_FloatNoiseCollapses(t *testing.T) {
	a := baseComponents()
	b := baseComponents()
	a.WidthIn = 48
	b.WidthIn = 48.0000001
	assert.Equal(t, Generate(a), Generate(b))
}

func TestGenerate_DistinctForEachPricedAttribute(t *testing.T) {
	base := Generate(baseComponents())

	mutations := []func(*Components){
		func(c *Components) { c.WidthIn = 50 },
		func(c *Components) { c.HeightIn = 84 },
		func(c *Components) { c.WidthIn = 48.25 },
		func(c *Components) { c.Material = "OAK" },
		func(c *Components) { c.Finish = "ESP" },
		func(c *Components) { c.Glass = "" },
		func(c *Components) { c.Hardware = []string{"PTK"} },
		func(c *Components) { c.DoorType = catalogdomain.DoorTypeBypass },
		func(c *Components) { c.PanelCount = 3 },
	}
	seen := map[string]bool{base: true}
	for i, mutate := range mutations {
		c := baseComponents()
		mutate(&c)
		got := Generate(c)
		assert.False(t, seen[got], "mutation %d collided", i)
		seen[got] = true
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	c := baseComponents()
	decoded, err := Decode(Generate(c))
	require.NoError(t, err)

	assert.Equal(t, "RENIN", decoded.Brand)
	assert.Equal(t, "CONT", decoded.SeriesCode)
	assert.Equal(t, catalogdomain.DoorTypeBarn, decoded.DoorType)
	assert.Equal(t, 48.0, decoded.WidthIn)
	assert.Equal(t, 80.0, decoded.HeightIn)
	assert.Equal(t, 2, decoded.PanelCount)
	assert.Equal(t, "PIN", decoded.Material)
	assert.Equal(t, "MWH", decoded.Finish)
	assert.Equal(t, "FRO", decoded.Glass)
	assert.Equal(t, []string{"PTK", "SCK"}, decoded.Hardware)
}

func TestDecode_FractionalDimensions(t *testing.T) {
	c := baseComponents()
	c.WidthIn = 48.25
	c.HeightIn = 80.5

	decoded, err := Decode(Generate(c))
	require.NoError(t, err)
	assert.Equal(t, 48.25, decoded.WidthIn)
	assert.Equal(t, 80.5, decoded.HeightIn)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		sku  string
	}{
		{"empty", ""},
		{"too short", "RENIN-CONT"},
		{"unknown door type", "RENIN-CONT-ZZ-W4800-H8000-MPIN-FMWH"},
		{"garbage width", "RENIN-CONT-BD-Wabc-H8000-MPIN-FMWH"},
		{"missing material", "RENIN-CONT-BD-W4800-H8000-FMWH"},
		{"unknown token prefix", "RENIN-CONT-BD-W4800-H8000-MPIN-FMWH-Q9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.sku)
			require.Error(t, err)
			assert.ErrorIs(t, err, catalogdomain.ErrInvalidSKU)
		})
	}
}
