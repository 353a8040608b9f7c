package domain

import (
	"context"
	"errors"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
)

// ConfigureRequest is a customer's in-progress selection against a series.
// The UI resubmits the full snapshot on every edit; each call is priced
// independently with no state carried between calls.
type ConfigureRequest struct {
	SeriesID   string                          `json:"series_id"`
	Dimensions catalogdomain.OpeningDimensions `json:"dimensions"`

	MaterialID string `json:"material_id"`
	FinishID   string `json:"finish_id"`
	GlassID    string `json:"glass_id,omitempty"`

	TrackID               string   `json:"track_id,omitempty"`
	HandleID              string   `json:"handle_id,omitempty"`
	SoftCloseID           string   `json:"soft_close_id,omitempty"`
	AdditionalHardwareIDs []string `json:"additional_hardware_ids,omitempty"`

	AddOnIDs []string `json:"add_on_ids,omitempty"`

	Clearance *catalogdomain.ClearanceContext `json:"clearance,omitempty"`

	// Custom-availability options carry extended lead times the customer
	// must acknowledge before the warning clears.
	LeadTimeAcknowledged bool `json:"lead_time_acknowledged,omitempty"`

	Quantity int `json:"quantity,omitempty"`
}

// HardwareIDs returns every selected hardware id in a stable order.
func (r ConfigureRequest) HardwareIDs() []string {
	var ids []string
	if r.TrackID != "" {
		ids = append(ids, r.TrackID)
	}
	if r.HandleID != "" {
		ids = append(ids, r.HandleID)
	}
	if r.SoftCloseID != "" {
		ids = append(ids, r.SoftCloseID)
	}
	ids = append(ids, r.AdditionalHardwareIDs...)
	return ids
}

// ValidationResult is the pass/fail outcome plus diagnostics. Errors block
// submission; warnings are advisory only. The split is part of the UI
// contract.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Surcharge is one named adjustment inside a price breakdown.
type Surcharge struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason,omitempty"`
}

// PriceBreakdown itemizes a configuration's price in cents. TotalCents is
// always the sum of the other fields.
type PriceBreakdown struct {
	BaseCents     int64       `json:"base_cents"`
	FinishCents   int64       `json:"finish_cents"`
	GlassCents    int64       `json:"glass_cents,omitempty"`
	HardwareCents int64       `json:"hardware_cents"`
	LaborCents    int64       `json:"labor_cents,omitempty"`
	Surcharges    []Surcharge `json:"surcharges"`
	TotalCents    int64       `json:"total_cents"`
}

// VolumeDiscount describes a quantity break applied on top of unit pricing.
type VolumeDiscount struct {
	Rate          float64 `json:"rate"`
	DiscountCents int64   `json:"discount_cents"`
}

// Configuration is the finalized result of a configure call. When IsValid
// is false the pricing fields are zero and Errors says why.
type Configuration struct {
	SeriesID string           `json:"series_id"`
	Request  ConfigureRequest `json:"request"`

	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	SKU            string         `json:"generated_sku,omitempty"`
	UnitPriceCents int64          `json:"unit_price_cents,omitempty"`
	TotalCents     int64          `json:"total_price_cents,omitempty"`
	Breakdown      PriceBreakdown `json:"price_breakdown"`
	Discount       VolumeDiscount `json:"volume_discount"`
	LeadTimeDays   int            `json:"lead_time_days"`
	InStock        bool           `json:"in_stock"`
}

// Service is the configuration orchestrator consumed by the HTTP layer.
type Service interface {
	Configure(ctx context.Context, req ConfigureRequest) (*Configuration, error)
}

var (
	ErrSeriesRequired    = errors.New("series_required")
	ErrQuantityInvalid   = errors.New("quantity_invalid")
	ErrPricedWhenInvalid = errors.New("priced_invalid_configuration")
)
