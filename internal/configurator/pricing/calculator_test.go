package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/configurator/domain"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func testSeries() *catalogdomain.ProductSeries {
	return &catalogdomain.ProductSeries{
		ID:             "renin-continental",
		Code:           "CONT",
		Name:           "Continental Barn Door",
		Brand:          "Renin",
		DoorType:       catalogdomain.DoorTypeBarn,
		PanelCount:     1,
		BasePriceCents: 89900,
		Requirements: catalogdomain.OpeningRequirements{
			MinWidth:  24,
			MaxWidth:  96,
			MinHeight: 60,
			MaxHeight: 120,
		},
		Materials: []catalogdomain.MaterialOption{
			{ID: "mdf", Code: "MDF", Name: "MDF Core", Modifier: catalogdomain.FixedModifier(0), InStock: true},
			{ID: "solid-pine", Code: "PIN", Name: "Solid Pine", Modifier: catalogdomain.FixedModifier(0), InStock: true},
		},
		Finishes: []catalogdomain.FinishOption{
			{ID: "matte-white", Code: "MWH", Name: "Matte White", Modifier: catalogdomain.FixedModifier(0), InStock: true},
			{ID: "espresso", Code: "ESP", Name: "Espresso", Modifier: catalogdomain.FixedModifier(4500), InStock: true},
		},
		Glass: []catalogdomain.GlassOption{
			{ID: "frosted", Code: "FRO", Name: "Frosted Insert", Modifier: catalogdomain.FixedModifier(0), InStock: true},
		},
		Hardware: []catalogdomain.HardwareOption{
			{ID: "classic-track", Code: "CTK", Kind: catalogdomain.HardwareTrack, Compatibility: []catalogdomain.DoorType{catalogdomain.DoorTypeBarn}, Included: true, InStock: true},
			{ID: "premium-track", Code: "PTK", Kind: catalogdomain.HardwareTrack, Compatibility: []catalogdomain.DoorType{catalogdomain.DoorTypeBarn}, Modifier: catalogdomain.FixedModifier(9500), InStock: true},
		},
		AddOns: []catalogdomain.AddOnOption{
			{ID: "pro-install", Name: "Professional Installation", PriceCents: 24900, Labor: true},
		},
		Rules: []catalogdomain.PricingRule{
			{
				ID:          "solid-wood-upcharge",
				Description: "Solid wood construction upcharge",
				Scope:       catalogdomain.RuleScope{Materials: []string{"solid-pine"}},
				Calc:        catalogdomain.PercentageCalc(0.10),
				Priority:    1,
			},
			{
				ID:          "glass-cutout",
				Description: "Glass cutout and glazing",
				Scope:       catalogdomain.RuleScope{Glass: []string{"frosted"}},
				Calc:        catalogdomain.FixedCalc(15000),
				Priority:    2,
			},
		},
	}
}

func validResult() domain.ValidationResult {
	return domain.ValidationResult{IsValid: true}
}

func baseRequest() domain.ConfigureRequest {
	return domain.ConfigureRequest{
		SeriesID:   "renin-continental",
		Dimensions: catalogdomain.OpeningDimensions{Width: 48, Height: 80, Unit: catalogdomain.UnitInches},
		MaterialID: "solid-pine",
		FinishID:   "matte-white",
		GlassID:    "frosted",
	}
}

func TestCalculate_PercentageThenFixed(t *testing.T) {
	// 899.00 base, +10% solid wood, +150.00 glass cutout = 1138.90
	breakdown := Calculate(testSeries(), baseRequest(), validResult(), testNow)

	assert.Equal(t, int64(89900), breakdown.BaseCents)
	require.Len(t, breakdown.Surcharges, 2)
	assert.Equal(t, int64(8990), breakdown.Surcharges[0].AmountCents)
	assert.Equal(t, int64(15000), breakdown.Surcharges[1].AmountCents)
	assert.Equal(t, int64(113890), breakdown.TotalCents)
}

func TestCalculate_PriorityOrderChangesTotal(t *testing.T) {
	// With the fixed glass charge folded in before the percentage rule,
	// the 10% applies to a larger subtotal.
	series := testSeries()
	series.Rules[0].Priority = 2
	series.Rules[1].Priority = 1
	series.Rules[0], series.Rules[1] = series.Rules[1], series.Rules[0]

	breakdown := Calculate(series, baseRequest(), validResult(), testNow)

	// 89900 + 15000 = 104900, +10% = +10490 -> 115390
	assert.Equal(t, int64(115390), breakdown.TotalCents)
	assert.NotEqual(t, Calculate(testSeries(), baseRequest(), validResult(), testNow).TotalCents, breakdown.TotalCents)
}

func TestCalculate_TotalIsSumOfParts(t *testing.T) {
	req := baseRequest()
	req.FinishID = "espresso"
	req.TrackID = "premium-track"
	req.AddOnIDs = []string{"pro-install"}

	breakdown := Calculate(testSeries(), req, validResult(), testNow)

	var surcharges int64
	for _, s := range breakdown.Surcharges {
		surcharges += s.AmountCents
	}
	sum := breakdown.BaseCents + breakdown.FinishCents + breakdown.GlassCents +
		breakdown.HardwareCents + breakdown.LaborCents + surcharges
	assert.Equal(t, breakdown.TotalCents, sum)
	assert.Equal(t, int64(24900), breakdown.LaborCents)
	assert.Equal(t, int64(9500), breakdown.HardwareCents)
}

func TestCalculate_IncludedHardwareIsFree(t *testing.T) {
	req := baseRequest()
	req.TrackID = "classic-track"

	breakdown := Calculate(testSeries(), req, validResult(), testNow)
	assert.Zero(t, breakdown.HardwareCents)
}

func TestCalculate_PerSqFtRule(t *testing.T) {
	series := testSeries()
	series.Rules = []catalogdomain.PricingRule{{
		ID:       "oversize",
		Calc:     catalogdomain.PerSqFtCalc(250),
		Priority: 1,
	}}
	req := baseRequest()
	req.GlassID = ""

	// 48x80 inches = 26.666... sqft; 250 cents/sqft rounds to 6667.
	breakdown := Calculate(series, req, validResult(), testNow)
	require.Len(t, breakdown.Surcharges, 1)
	assert.Equal(t, int64(6667), breakdown.Surcharges[0].AmountCents)
}

func TestCalculate_TieredRuleBelowLowestTier(t *testing.T) {
	series := testSeries()
	series.Rules = []catalogdomain.PricingRule{{
		ID: "volume-tiers",
		Calc: catalogdomain.TieredCalc([]catalogdomain.Tier{
			{Threshold: 3, AmountCents: -2500},
			{Threshold: 5, AmountCents: -6000},
		}),
		Priority: 1,
	}}
	req := baseRequest()
	req.GlassID = ""
	req.Quantity = 1

	breakdown := Calculate(series, req, validResult(), testNow)
	assert.Empty(t, breakdown.Surcharges)
	assert.Equal(t, int64(89900), breakdown.TotalCents)

	req.Quantity = 5
	breakdown = Calculate(series, req, validResult(), testNow)
	require.Len(t, breakdown.Surcharges, 1)
	assert.Equal(t, int64(-6000), breakdown.Surcharges[0].AmountCents)
}

func TestCalculate_ExpiredWindowSkipsRule(t *testing.T) {
	series := testSeries()
	until := testNow.Add(-time.Hour)
	series.Rules[1].Window = catalogdomain.RuleWindow{ValidUntil: &until}

	breakdown := Calculate(series, baseRequest(), validResult(), testNow)
	require.Len(t, breakdown.Surcharges, 1)
	assert.Equal(t, int64(98890), breakdown.TotalCents)
}

func TestCalculate_Deterministic(t *testing.T) {
	first := Calculate(testSeries(), baseRequest(), validResult(), testNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Calculate(testSeries(), baseRequest(), validResult(), testNow))
	}
}

func TestCalculate_PanicsOnInvalidResult(t *testing.T) {
	assert.PanicsWithValue(t, domain.ErrPricedWhenInvalid, func() {
		Calculate(testSeries(), baseRequest(), domain.ValidationResult{IsValid: false}, testNow)
	})
}

func TestVolumeDiscount(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitCents int64
		wantRate  float64
		wantCents int64
	}{
		{"below threshold", 2, 100000, 0, 0},
		{"three doors", 3, 100000, 0.05, 15000},
		{"five doors", 5, 100000, 0.10, 50000},
		{"ten doors", 10, 100000, 0.15, 150000},
		{"rounds half up", 3, 33333, 0.05, 5000}, // 4999.95 -> 5000
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := VolumeDiscount(tt.quantity, tt.unitCents)
			assert.Equal(t, tt.wantRate, d.Rate)
			assert.Equal(t, tt.wantCents, d.DiscountCents)
		})
	}
}
