package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalSeries(id, code string) ProductSeries {
	return ProductSeries{
		ID:             id,
		Code:           code,
		Name:           "Test Series",
		Brand:          "Renin",
		DoorType:       DoorTypeBarn,
		BasePriceCents: 50000,
		Requirements:   OpeningRequirements{MinWidth: 24, MaxWidth: 96, MinHeight: 60, MaxHeight: 120},
		Materials:      []MaterialOption{{ID: "mdf", Code: "MDF", Name: "MDF", InStock: true}},
		Finishes:       []FinishOption{{ID: "white", Code: "WH", Name: "White", InStock: true}},
	}
}

func TestNewCatalog_Empty(t *testing.T) {
	_, err := NewCatalog("v1", nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestNewCatalog_DuplicateSeries(t *testing.T) {
	_, err := NewCatalog("v1", []ProductSeries{
		minimalSeries("doors-a", "AAA"),
		minimalSeries("doors-a", "BBB"),
	})
	assert.ErrorIs(t, err, ErrDuplicateSeries)
}

func TestNewCatalog_InvalidSeries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductSeries)
	}{
		{"missing code", func(s *ProductSeries) { s.Code = "" }},
		{"zero base price", func(s *ProductSeries) { s.BasePriceCents = 0 }},
		{"inverted widths", func(s *ProductSeries) { s.Requirements.MaxWidth = s.Requirements.MinWidth - 1 }},
		{"no materials", func(s *ProductSeries) { s.Materials = nil }},
		{"no finishes", func(s *ProductSeries) { s.Finishes = nil }},
		{"rule scope unknown material", func(s *ProductSeries) {
			s.Rules = []PricingRule{{ID: "r1", Scope: RuleScope{Materials: []string{"nope"}}, Calc: FixedCalc(100)}}
		}},
		{"rule scope unknown glass", func(s *ProductSeries) {
			s.Rules = []PricingRule{{ID: "r1", Scope: RuleScope{Glass: []string{"nope"}}, Calc: FixedCalc(100)}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := minimalSeries("doors-a", "AAA")
			tt.mutate(&s)
			_, err := NewCatalog("v1", []ProductSeries{s})
			assert.ErrorIs(t, err, ErrInvalidSeries)
		})
	}
}

func TestNewCatalog_SortsRulesByPriority(t *testing.T) {
	s := minimalSeries("doors-a", "AAA")
	s.Rules = []PricingRule{
		{ID: "late", Calc: FixedCalc(100), Priority: 5},
		{ID: "early", Calc: FixedCalc(100), Priority: 1},
		{ID: "tie-first", Calc: FixedCalc(100), Priority: 3},
		{ID: "tie-second", Calc: FixedCalc(100), Priority: 3},
	}

	c, err := NewCatalog("v1", []ProductSeries{s})
	require.NoError(t, err)

	got, ok := c.SeriesByID("doors-a")
	require.True(t, ok)
	ids := make([]string, 0, len(got.Rules))
	for _, r := range got.Rules {
		ids = append(ids, r.ID)
	}
	// Ties keep their declaration order.
	assert.Equal(t, []string{"early", "tie-first", "tie-second", "late"}, ids)
}

func TestCatalog_Lookups(t *testing.T) {
	c, err := NewCatalog("2026-08-01", []ProductSeries{
		minimalSeries("doors-a", "AAA"),
		minimalSeries("doors-b", "BBB"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-08-01", c.Version())
	assert.Len(t, c.Series(), 2)

	byID, ok := c.SeriesByID("doors-b")
	require.True(t, ok)
	assert.Equal(t, "BBB", byID.Code)

	byCode, ok := c.SeriesByCode("AAA")
	require.True(t, ok)
	assert.Equal(t, "doors-a", byCode.ID)

	_, ok = c.SeriesByID("doors-c")
	assert.False(t, ok)
}
