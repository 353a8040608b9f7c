package loader

import (
	"fmt"
	"time"

	"github.com/scaroll/pgclosets-core/internal/catalog/domain"
)

// The document types mirror the on-disk catalog JSON. Loosely-typed fields
// (modifier amounts, calculation variants) get mapped onto the domain's
// tagged constructors here, so shape errors surface at load time instead of
// during pricing.

type document struct {
	Version string           `mapstructure:"version"`
	Series  []seriesDocument `mapstructure:"series"`
}

type seriesDocument struct {
	ID         string `mapstructure:"id"`
	Code       string `mapstructure:"code"`
	Slug       string `mapstructure:"slug"`
	Name       string `mapstructure:"name"`
	Brand      string `mapstructure:"brand"`
	DoorType   string `mapstructure:"door_type"`
	PanelCount int    `mapstructure:"panel_count"`

	BasePriceCents int64               `mapstructure:"base_price_cents"`
	Requirements   requirementsDoc     `mapstructure:"opening_requirements"`
	Materials      []materialDocument  `mapstructure:"materials"`
	Finishes       []finishDocument    `mapstructure:"finishes"`
	Glass          []glassDocument     `mapstructure:"glass"`
	Hardware       []hardwareDocument  `mapstructure:"hardware"`
	AddOns         []addOnDocument     `mapstructure:"add_ons"`
	Rules          []ruleDocument      `mapstructure:"pricing_rules"`
	Package        packageDocument     `mapstructure:"package"`
	Keywords       []string            `mapstructure:"keywords"`
}

type requirementsDoc struct {
	MinWidth          float64 `mapstructure:"min_width"`
	MaxWidth          float64 `mapstructure:"max_width"`
	MinHeight         float64 `mapstructure:"min_height"`
	MaxHeight         float64 `mapstructure:"max_height"`
	RequiredClearance float64 `mapstructure:"required_clearance"`
}

type modifierDocument struct {
	Cents   int64   `mapstructure:"cents"`
	Percent float64 `mapstructure:"percent"`
}

func (m modifierDocument) toDomain() domain.Modifier {
	if m.Percent != 0 {
		return domain.PercentModifier(m.Percent)
	}
	return domain.FixedModifier(m.Cents)
}

type materialDocument struct {
	ID           string           `mapstructure:"id"`
	Code         string           `mapstructure:"code"`
	Name         string           `mapstructure:"name"`
	Type         string           `mapstructure:"type"`
	Modifier     modifierDocument `mapstructure:"modifier"`
	Availability string           `mapstructure:"availability"`
	LeadTimeDays int              `mapstructure:"lead_time_days"`
	InStock      bool             `mapstructure:"in_stock"`
}

type finishDocument struct {
	ID           string           `mapstructure:"id"`
	Code         string           `mapstructure:"code"`
	Name         string           `mapstructure:"name"`
	Modifier     modifierDocument `mapstructure:"modifier"`
	Availability string           `mapstructure:"availability"`
	LeadTimeDays int              `mapstructure:"lead_time_days"`
	InStock      bool             `mapstructure:"in_stock"`
}

type glassDocument struct {
	ID           string           `mapstructure:"id"`
	Code         string           `mapstructure:"code"`
	Name         string           `mapstructure:"name"`
	Tempered     bool             `mapstructure:"tempered"`
	Mirror       bool             `mapstructure:"mirror"`
	Modifier     modifierDocument `mapstructure:"modifier"`
	Availability string           `mapstructure:"availability"`
	LeadTimeDays int              `mapstructure:"lead_time_days"`
	InStock      bool             `mapstructure:"in_stock"`
}

type hardwareDocument struct {
	ID            string           `mapstructure:"id"`
	Code          string           `mapstructure:"code"`
	Name          string           `mapstructure:"name"`
	Kind          string           `mapstructure:"kind"`
	Compatibility []string         `mapstructure:"compatibility"`
	Included      bool             `mapstructure:"included"`
	Modifier      modifierDocument `mapstructure:"modifier"`
	Availability  string           `mapstructure:"availability"`
	LeadTimeDays  int              `mapstructure:"lead_time_days"`
	InStock       bool             `mapstructure:"in_stock"`
}

type addOnDocument struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	PriceCents int64  `mapstructure:"price_cents"`
	Labor      bool   `mapstructure:"labor"`
}

type packageDocument struct {
	WeightKg float64 `mapstructure:"weight_kg"`
	LengthCm float64 `mapstructure:"length_cm"`
	WidthCm  float64 `mapstructure:"width_cm"`
	HeightCm float64 `mapstructure:"height_cm"`
}

type tierDocument struct {
	Threshold   float64 `mapstructure:"threshold"`
	AmountCents int64   `mapstructure:"amount_cents"`
}

type calculationDocument struct {
	Method      string         `mapstructure:"method"`
	AmountCents int64          `mapstructure:"amount_cents"`
	Rate        float64        `mapstructure:"rate"`
	PerSqFt     int64          `mapstructure:"per_sqft_cents"`
	Tiers       []tierDocument `mapstructure:"tiers"`
}

func (c calculationDocument) toDomain() (domain.Calculation, error) {
	switch domain.CalcMethod(c.Method) {
	case domain.CalcFixed:
		return domain.FixedCalc(c.AmountCents), nil
	case domain.CalcPercentage:
		return domain.PercentageCalc(c.Rate), nil
	case domain.CalcPerSqFt:
		return domain.PerSqFtCalc(c.PerSqFt), nil
	case domain.CalcTiered:
		tiers := make([]domain.Tier, 0, len(c.Tiers))
		for _, t := range c.Tiers {
			tiers = append(tiers, domain.Tier{Threshold: t.Threshold, AmountCents: t.AmountCents})
		}
		return domain.TieredCalc(tiers), nil
	default:
		return domain.Calculation{}, fmt.Errorf("%w: %q", domain.ErrUnknownCalcMethod, c.Method)
	}
}

type ruleDocument struct {
	ID          string              `mapstructure:"id"`
	Description string              `mapstructure:"description"`
	Scope       scopeDocument       `mapstructure:"scope"`
	Window      windowDocument      `mapstructure:"window"`
	Calc        calculationDocument `mapstructure:"calculation"`
	Priority    int                 `mapstructure:"priority"`
}

type scopeDocument struct {
	DoorTypes []string `mapstructure:"door_types"`
	Materials []string `mapstructure:"materials"`
	Finishes  []string `mapstructure:"finishes"`
	Glass     []string `mapstructure:"glass"`
	MinWidth  float64  `mapstructure:"min_width"`
	MaxWidth  float64  `mapstructure:"max_width"`
	MinHeight float64  `mapstructure:"min_height"`
	MaxHeight float64  `mapstructure:"max_height"`
}

type windowDocument struct {
	ValidFrom   string `mapstructure:"valid_from"`
	ValidUntil  string `mapstructure:"valid_until"`
	MinQuantity int    `mapstructure:"min_quantity"`
	MaxQuantity int    `mapstructure:"max_quantity"`
}

func (w windowDocument) toDomain() (domain.RuleWindow, error) {
	out := domain.RuleWindow{MinQuantity: w.MinQuantity, MaxQuantity: w.MaxQuantity}
	if w.ValidFrom != "" {
		t, err := time.Parse(time.RFC3339, w.ValidFrom)
		if err != nil {
			return out, fmt.Errorf("rule window valid_from: %w", err)
		}
		out.ValidFrom = &t
	}
	if w.ValidUntil != "" {
		t, err := time.Parse(time.RFC3339, w.ValidUntil)
		if err != nil {
			return out, fmt.Errorf("rule window valid_until: %w", err)
		}
		out.ValidUntil = &t
	}
	return out, nil
}

func (sd seriesDocument) toDomain() (domain.ProductSeries, error) {
	s := domain.ProductSeries{
		ID:             sd.ID,
		Code:           sd.Code,
		Slug:           sd.Slug,
		Name:           sd.Name,
		Brand:          sd.Brand,
		DoorType:       domain.DoorType(sd.DoorType),
		PanelCount:     sd.PanelCount,
		BasePriceCents: sd.BasePriceCents,
		Requirements: domain.OpeningRequirements{
			MinWidth:          sd.Requirements.MinWidth,
			MaxWidth:          sd.Requirements.MaxWidth,
			MinHeight:         sd.Requirements.MinHeight,
			MaxHeight:         sd.Requirements.MaxHeight,
			RequiredClearance: sd.Requirements.RequiredClearance,
		},
		PackageWeightKg: sd.Package.WeightKg,
		PackageLengthCm: sd.Package.LengthCm,
		PackageWidthCm:  sd.Package.WidthCm,
		PackageHeightCm: sd.Package.HeightCm,
		Keywords:        sd.Keywords,
	}

	for _, m := range sd.Materials {
		s.Materials = append(s.Materials, domain.MaterialOption{
			ID:           m.ID,
			Code:         m.Code,
			Name:         m.Name,
			Type:         domain.MaterialType(m.Type),
			Modifier:     m.Modifier.toDomain(),
			Availability: domain.Availability(m.Availability),
			LeadTimeDays: m.LeadTimeDays,
			InStock:      m.InStock,
		})
	}
	for _, f := range sd.Finishes {
		s.Finishes = append(s.Finishes, domain.FinishOption{
			ID:           f.ID,
			Code:         f.Code,
			Name:         f.Name,
			Modifier:     f.Modifier.toDomain(),
			Availability: domain.Availability(f.Availability),
			LeadTimeDays: f.LeadTimeDays,
			InStock:      f.InStock,
		})
	}
	for _, g := range sd.Glass {
		s.Glass = append(s.Glass, domain.GlassOption{
			ID:           g.ID,
			Code:         g.Code,
			Name:         g.Name,
			Tempered:     g.Tempered,
			Mirror:       g.Mirror,
			Modifier:     g.Modifier.toDomain(),
			Availability: domain.Availability(g.Availability),
			LeadTimeDays: g.LeadTimeDays,
			InStock:      g.InStock,
		})
	}
	for _, h := range sd.Hardware {
		compat := make([]domain.DoorType, 0, len(h.Compatibility))
		for _, dt := range h.Compatibility {
			compat = append(compat, domain.DoorType(dt))
		}
		s.Hardware = append(s.Hardware, domain.HardwareOption{
			ID:            h.ID,
			Code:          h.Code,
			Name:          h.Name,
			Kind:          domain.HardwareKind(h.Kind),
			Compatibility: compat,
			Included:      h.Included,
			Modifier:      h.Modifier.toDomain(),
			Availability:  domain.Availability(h.Availability),
			LeadTimeDays:  h.LeadTimeDays,
			InStock:       h.InStock,
		})
	}
	for _, a := range sd.AddOns {
		s.AddOns = append(s.AddOns, domain.AddOnOption{
			ID:         a.ID,
			Name:       a.Name,
			PriceCents: a.PriceCents,
			Labor:      a.Labor,
		})
	}

	for _, r := range sd.Rules {
		calc, err := r.Calc.toDomain()
		if err != nil {
			return s, fmt.Errorf("series %s rule %s: %w", sd.ID, r.ID, err)
		}
		window, err := r.Window.toDomain()
		if err != nil {
			return s, fmt.Errorf("series %s rule %s: %w", sd.ID, r.ID, err)
		}
		doorTypes := make([]domain.DoorType, 0, len(r.Scope.DoorTypes))
		for _, dt := range r.Scope.DoorTypes {
			doorTypes = append(doorTypes, domain.DoorType(dt))
		}
		s.Rules = append(s.Rules, domain.PricingRule{
			ID:          r.ID,
			Description: r.Description,
			Scope: domain.RuleScope{
				DoorTypes: doorTypes,
				Materials: r.Scope.Materials,
				Finishes:  r.Scope.Finishes,
				Glass:     r.Scope.Glass,
				MinWidth:  r.Scope.MinWidth,
				MaxWidth:  r.Scope.MaxWidth,
				MinHeight: r.Scope.MinHeight,
				MaxHeight: r.Scope.MaxHeight,
			},
			Window:   window,
			Calc:     calc,
			Priority: r.Priority,
		})
	}

	return s, nil
}
