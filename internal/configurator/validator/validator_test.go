package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/configurator/domain"
)

func testSeries() *catalogdomain.ProductSeries {
	return &catalogdomain.ProductSeries{
		ID:             "renin-continental",
		Code:           "CONT",
		Name:           "Continental Barn Door",
		Brand:          "Renin",
		DoorType:       catalogdomain.DoorTypeBarn,
		BasePriceCents: 89900,
		Requirements: catalogdomain.OpeningRequirements{
			MinWidth:          24,
			MaxWidth:          96,
			MinHeight:         60,
			MaxHeight:         120,
			RequiredClearance: 4,
		},
		Materials: []catalogdomain.MaterialOption{
			{ID: "mdf", Code: "MDF", Name: "MDF Core", Availability: catalogdomain.AvailabilityStandard, InStock: true},
			{ID: "premium-oak", Code: "OAK", Name: "Premium Oak", Availability: catalogdomain.AvailabilityCustom, LeadTimeDays: 21, InStock: false},
			{ID: "walnut", Code: "WAL", Name: "Walnut", Availability: catalogdomain.AvailabilityDiscontinued},
		},
		Finishes: []catalogdomain.FinishOption{
			{ID: "matte-white", Code: "MWH", Name: "Matte White", Availability: catalogdomain.AvailabilityStandard, InStock: true},
		},
		Glass: []catalogdomain.GlassOption{
			{ID: "frosted", Code: "FRO", Name: "Frosted Insert", Availability: catalogdomain.AvailabilityStandard, InStock: true},
		},
		Hardware: []catalogdomain.HardwareOption{
			{ID: "barn-track", Code: "BTK", Name: "Barn Track", Kind: catalogdomain.HardwareTrack, Compatibility: []catalogdomain.DoorType{catalogdomain.DoorTypeBarn}, InStock: true},
			{ID: "bypass-track", Code: "BYT", Name: "Bypass Track", Kind: catalogdomain.HardwareTrack, Compatibility: []catalogdomain.DoorType{catalogdomain.DoorTypeBypass}, InStock: true},
		},
		AddOns: []catalogdomain.AddOnOption{
			{ID: "install-kit", Name: "Installation Kit", PriceCents: 4900},
		},
	}
}

func validRequest() domain.ConfigureRequest {
	return domain.ConfigureRequest{
		SeriesID:   "renin-continental",
		Dimensions: catalogdomain.OpeningDimensions{Width: 48, Height: 80, Unit: catalogdomain.UnitInches},
		MaterialID: "mdf",
		FinishID:   "matte-white",
	}
}

func TestValidate_HappyPath(t *testing.T) {
	result := Validate(testSeries(), validRequest())
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidate_DimensionBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		valid bool
	}{
		{"at minimum", 24, true},
		{"at maximum", 96, true},
		{"just over maximum", 96.01, false},
		{"just under minimum", 23.99, false},
		{"far outside", 120, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Dimensions.Width = tt.width
			result := Validate(testSeries(), req)
			assert.Equal(t, tt.valid, result.IsValid)
			if !tt.valid {
				require.NotEmpty(t, result.Errors)
				assert.Contains(t, result.Errors[0], "width")
			}
		})
	}
}

func TestValidate_EachDimensionReportedSeparately(t *testing.T) {
	req := validRequest()
	req.Dimensions.Width = 120
	req.Dimensions.Height = 40

	result := Validate(testSeries(), req)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "width")
	assert.Contains(t, result.Errors[1], "height")
}

func TestValidate_MetricDimensions(t *testing.T) {
	// 121.92 cm = 48 in, inside the range.
	req := validRequest()
	req.Dimensions = catalogdomain.OpeningDimensions{Width: 121.92, Height: 203.2, Unit: catalogdomain.UnitCentimeters}

	result := Validate(testSeries(), req)
	assert.True(t, result.IsValid)
}

func TestValidate_ClearanceWarningWithoutContext(t *testing.T) {
	result := Validate(testSeries(), validRequest())
	assert.True(t, result.IsValid)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "clearance")
}

func TestValidate_ClearanceErrorWithObstructions(t *testing.T) {
	req := validRequest()
	req.Clearance = &catalogdomain.ClearanceContext{LeftOffset: 10, RightOffset: 10, Obstructions: true}

	result := Validate(testSeries(), req)
	assert.False(t, result.IsValid)
}

func TestValidate_UnknownMaterial(t *testing.T) {
	req := validRequest()
	req.MaterialID = "titanium"

	result := Validate(testSeries(), req)
	assert.False(t, result.IsValid)
}

func TestValidate_MissingMaterialAndFinish(t *testing.T) {
	req := validRequest()
	req.MaterialID = ""
	req.FinishID = ""

	result := Validate(testSeries(), req)
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 2)
}

func TestValidate_IncompatibleHardwareSuggestsAlternative(t *testing.T) {
	req := validRequest()
	req.TrackID = "bypass-track"

	result := Validate(testSeries(), req)
	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Barn Track")
}

func TestValidate_DiscontinuedMaterialRejected(t *testing.T) {
	req := validRequest()
	req.MaterialID = "walnut"

	result := Validate(testSeries(), req)
	assert.False(t, result.IsValid)
}

func TestValidate_CustomAvailabilityWarnsUntilAcknowledged(t *testing.T) {
	req := validRequest()
	req.MaterialID = "premium-oak"

	result := Validate(testSeries(), req)
	assert.True(t, result.IsValid)
	require.NotEmpty(t, result.Warnings)

	req.LeadTimeAcknowledged = true
	result = Validate(testSeries(), req)
	assert.True(t, result.IsValid)
	for _, w := range result.Warnings {
		assert.NotContains(t, w, "lead time")
	}
}

func TestValidate_UnknownAddOn(t *testing.T) {
	req := validRequest()
	req.AddOnIDs = []string{"gold-plating"}

	result := Validate(testSeries(), req)
	assert.False(t, result.IsValid)
}
