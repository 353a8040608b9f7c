package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/clock"
	"github.com/scaroll/pgclosets-core/internal/configurator/domain"
	"github.com/scaroll/pgclosets-core/internal/configurator/sku"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func testService(t *testing.T) domain.Service {
	t.Helper()

	series := catalogdomain.ProductSeries{
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
			{ID: "solid-pine", Code: "PIN", Name: "Solid Pine", Modifier: catalogdomain.FixedModifier(0), InStock: true},
			{ID: "premium-oak", Code: "OAK", Name: "Premium Oak", Modifier: catalogdomain.FixedModifier(0), LeadTimeDays: 21},
		},
		Finishes: []catalogdomain.FinishOption{
			{ID: "matte-white", Code: "MWH", Name: "Matte White", Modifier: catalogdomain.FixedModifier(0), InStock: true},
		},
		Glass: []catalogdomain.GlassOption{
			{ID: "frosted", Code: "FRO", Name: "Frosted Insert", Modifier: catalogdomain.FixedModifier(0), InStock: true},
		},
		Hardware: []catalogdomain.HardwareOption{
			{ID: "classic-track", Code: "CTK", Name: "Classic Track", Kind: catalogdomain.HardwareTrack, Compatibility: []catalogdomain.DoorType{catalogdomain.DoorTypeBarn}, Included: true, InStock: true},
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

	catalog, err := catalogdomain.NewCatalog("test", []catalogdomain.ProductSeries{series})
	require.NoError(t, err)

	return New(Params{
		Log:     zap.NewNop(),
		Catalog: catalogdomain.NewStaticSource(catalog),
		Clock:   clock.NewFakeClock(testNow),
	})
}

func validRequest() domain.ConfigureRequest {
	return domain.ConfigureRequest{
		SeriesID:   "renin-continental",
		Dimensions: catalogdomain.OpeningDimensions{Width: 48, Height: 80, Unit: catalogdomain.UnitInches},
		MaterialID: "solid-pine",
		FinishID:   "matte-white",
		GlassID:    "frosted",
	}
}

func TestConfigure_RequiresSeries(t *testing.T) {
	svc := testService(t)

	req := validRequest()
	req.SeriesID = ""
	_, err := svc.Configure(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSeriesRequired)
}

func TestConfigure_RejectsNegativeQuantity(t *testing.T) {
	svc := testService(t)

	req := validRequest()
	req.Quantity = -1
	_, err := svc.Configure(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrQuantityInvalid)
}

func TestConfigure_UnknownSeries(t *testing.T) {
	svc := testService(t)

	req := validRequest()
	req.SeriesID = "no-such-series"
	_, err := svc.Configure(context.Background(), req)
	assert.ErrorIs(t, err, catalogdomain.ErrSeriesNotFound)
}

func TestConfigure_InvalidConfigurationCarriesNoPrice(t *testing.T) {
	svc := testService(t)

	req := validRequest()
	req.Dimensions.Width = 200

	cfg, err := svc.Configure(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, cfg.IsValid)
	assert.NotEmpty(t, cfg.Errors)
	assert.Zero(t, cfg.UnitPriceCents)
	assert.Zero(t, cfg.TotalCents)
	assert.Empty(t, cfg.SKU)
}

func TestConfigure_ValidConfiguration(t *testing.T) {
	svc := testService(t)

	cfg, err := svc.Configure(context.Background(), validRequest())
	require.NoError(t, err)
	require.True(t, cfg.IsValid, "errors: %v", cfg.Errors)

	// 899.00 base, +10% solid wood, +150.00 glass cutout.
	assert.Equal(t, int64(113890), cfg.UnitPriceCents)
	assert.Equal(t, int64(113890), cfg.TotalCents)
	assert.Equal(t, cfg.Breakdown.TotalCents, cfg.UnitPriceCents)
	assert.Zero(t, cfg.Discount.DiscountCents)
	assert.True(t, cfg.InStock)
	assert.Zero(t, cfg.LeadTimeDays)

	decoded, err := sku.Decode(cfg.SKU)
	require.NoError(t, err)
	assert.Equal(t, "RENIN", decoded.Brand)
	assert.Equal(t, "CONT", decoded.SeriesCode)
	assert.Equal(t, 48.0, decoded.WidthIn)
	assert.Equal(t, 80.0, decoded.HeightIn)
	assert.Equal(t, "PIN", decoded.Material)
	assert.Equal(t, "MWH", decoded.Finish)
	assert.Equal(t, "FRO", decoded.Glass)
}

func TestConfigure_VolumeDiscountAtFiveUnits(t *testing.T) {
	svc := testService(t)

	req := validRequest()
	req.Quantity = 5

	cfg, err := svc.Configure(context.Background(), req)
	require.NoError(t, err)
	require.True(t, cfg.IsValid)

	assert.Equal(t, 0.10, cfg.Discount.Rate)
	assert.Equal(t, int64(56945), cfg.Discount.DiscountCents)
	assert.Equal(t, int64(113890*5-56945), cfg.TotalCents)
}

func TestConfigure_OutOfStockOptionSetsLeadTime(t *testing.T) {
	svc := testService(t)

	req := validRequest()
	req.MaterialID = "premium-oak"

	cfg, err := svc.Configure(context.Background(), req)
	require.NoError(t, err)
	require.True(t, cfg.IsValid, "errors: %v", cfg.Errors)

	assert.False(t, cfg.InStock)
	assert.Equal(t, 21, cfg.LeadTimeDays)
}
