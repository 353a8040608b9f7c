package domain

import "math"

// DoorType categorizes a sellable door line.
type DoorType string

const (
	DoorTypeBarn   DoorType = "barn"
	DoorTypeBypass DoorType = "bypass"
	DoorTypeBifold DoorType = "bifold"
	DoorTypePivot  DoorType = "pivot"
)

// MaterialType is the base construction material of a door panel.
type MaterialType string

const (
	MaterialSolidWood      MaterialType = "solid-wood"
	MaterialEngineeredWood MaterialType = "engineered-wood"
	MaterialMDF            MaterialType = "mdf"
	MaterialGlass          MaterialType = "glass"
	MaterialAluminum       MaterialType = "aluminum"
)

// Availability describes whether an option is orderable and on what terms.
type Availability string

const (
	AvailabilityStandard     Availability = "standard"
	AvailabilityPremium      Availability = "premium"
	AvailabilityCustom       Availability = "custom"
	AvailabilityDiscontinued Availability = "discontinued"
)

// Unit is the measurement unit of customer-entered dimensions.
type Unit string

const (
	UnitInches      Unit = "in"
	UnitCentimeters Unit = "cm"
	UnitMillimeters Unit = "mm"
)

// OpeningDimensions is a customer-measured opening. Width and Height are
// required; Depth matters only for bypass tracks.
type OpeningDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth,omitempty"`
	Unit   Unit    `json:"unit"`
}

// Inches returns width and height normalized to inches.
func (d OpeningDimensions) Inches() (width, height float64) {
	switch d.Unit {
	case UnitCentimeters:
		return d.Width / 2.54, d.Height / 2.54
	case UnitMillimeters:
		return d.Width / 25.4, d.Height / 25.4
	default:
		return d.Width, d.Height
	}
}

// AreaSqFt returns the opening area in square feet.
func (d OpeningDimensions) AreaSqFt() float64 {
	w, h := d.Inches()
	return (w * h) / 144
}

// OpeningRequirements bounds the openings a series can be manufactured for.
// All values are inches.
type OpeningRequirements struct {
	MinWidth          float64 `json:"min_width"`
	MaxWidth          float64 `json:"max_width"`
	MinHeight         float64 `json:"min_height"`
	MaxHeight         float64 `json:"max_height"`
	RequiredClearance float64 `json:"required_clearance"`
}

// Fits reports whether the dimensions fall inside the inclusive range.
func (r OpeningRequirements) Fits(d OpeningDimensions) bool {
	w, h := d.Inches()
	return w >= r.MinWidth && w <= r.MaxWidth && h >= r.MinHeight && h <= r.MaxHeight
}

// ClearanceContext captures the deployment surroundings of an opening.
// It is optional input; validation degrades to a warning without it.
type ClearanceContext struct {
	LeftOffset   float64 `json:"left_offset"`
	RightOffset  float64 `json:"right_offset"`
	Obstructions bool    `json:"obstructions"`
}

// Satisfies reports whether the recommended clearance is satisfiable.
func (c ClearanceContext) Satisfies(required float64) bool {
	if c.Obstructions {
		return false
	}
	return c.LeftOffset+c.RightOffset >= required
}

// MaterialOption is a selectable panel material for a series.
type MaterialOption struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Type         MaterialType `json:"type"`
	Modifier     Modifier     `json:"modifier"`
	Availability Availability `json:"availability"`
	LeadTimeDays int          `json:"lead_time_days,omitempty"`
	InStock      bool         `json:"in_stock"`
}

// FinishOption is a selectable surface finish for a series.
type FinishOption struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Modifier     Modifier     `json:"modifier"`
	Availability Availability `json:"availability"`
	LeadTimeDays int          `json:"lead_time_days,omitempty"`
	InStock      bool         `json:"in_stock"`
}

// GlassOption is a selectable glass or mirror insert.
type GlassOption struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Tempered     bool         `json:"tempered"`
	Mirror       bool         `json:"mirror"`
	Modifier     Modifier     `json:"modifier"`
	Availability Availability `json:"availability"`
	LeadTimeDays int          `json:"lead_time_days,omitempty"`
	InStock      bool         `json:"in_stock"`
}

// HardwareKind distinguishes the roles hardware can fill in a configuration.
type HardwareKind string

const (
	HardwareTrack     HardwareKind = "track"
	HardwareHandle    HardwareKind = "handle"
	HardwareSoftClose HardwareKind = "soft-close"
	HardwareOther     HardwareKind = "other"
)

// HardwareOption is a track, handle, or accessory compatible with a subset
// of door types.
type HardwareOption struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	Kind          HardwareKind `json:"kind"`
	Compatibility []DoorType   `json:"compatibility"`
	Included      bool         `json:"included"`
	Modifier      Modifier     `json:"modifier"`
	Availability  Availability `json:"availability"`
	LeadTimeDays  int          `json:"lead_time_days,omitempty"`
	InStock       bool         `json:"in_stock"`
}

// CompatibleWith reports whether the hardware supports the door type.
func (h HardwareOption) CompatibleWith(t DoorType) bool {
	if len(h.Compatibility) == 0 {
		return true
	}
	for _, dt := range h.Compatibility {
		if dt == t {
			return true
		}
	}
	return false
}

// AddOnOption is an installation or warranty add-on sold with a series.
type AddOnOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Labor      bool   `json:"labor"`
}

// ProductSeries is a sellable door line. Immutable after catalog load.
type ProductSeries struct {
	ID         string   `json:"id"`
	Code       string   `json:"code"`
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Brand      string   `json:"brand"`
	DoorType   DoorType `json:"door_type"`
	PanelCount int      `json:"panel_count,omitempty"`

	BasePriceCents int64               `json:"base_price_cents"`
	Requirements   OpeningRequirements `json:"opening_requirements"`

	Materials []MaterialOption `json:"materials"`
	Finishes  []FinishOption   `json:"finishes"`
	Glass     []GlassOption    `json:"glass,omitempty"`
	Hardware  []HardwareOption `json:"hardware"`
	AddOns    []AddOnOption    `json:"add_ons,omitempty"`

	Rules []PricingRule `json:"pricing_rules"`

	// Shipping profile for a single packaged door from this series.
	PackageWeightKg float64 `json:"package_weight_kg,omitempty"`
	PackageLengthCm float64 `json:"package_length_cm,omitempty"`
	PackageWidthCm  float64 `json:"package_width_cm,omitempty"`
	PackageHeightCm float64 `json:"package_height_cm,omitempty"`

	Keywords []string `json:"keywords,omitempty"`
}

// Material returns the material option with the given id.
func (s *ProductSeries) Material(id string) (*MaterialOption, bool) {
	for i := range s.Materials {
		if s.Materials[i].ID == id {
			return &s.Materials[i], true
		}
	}
	return nil, false
}

// Finish returns the finish option with the given id.
func (s *ProductSeries) Finish(id string) (*FinishOption, bool) {
	for i := range s.Finishes {
		if s.Finishes[i].ID == id {
			return &s.Finishes[i], true
		}
	}
	return nil, false
}

// GlassOption returns the glass option with the given id.
func (s *ProductSeries) GlassOption(id string) (*GlassOption, bool) {
	for i := range s.Glass {
		if s.Glass[i].ID == id {
			return &s.Glass[i], true
		}
	}
	return nil, false
}

// HardwareOption returns the hardware option with the given id.
func (s *ProductSeries) HardwareOption(id string) (*HardwareOption, bool) {
	for i := range s.Hardware {
		if s.Hardware[i].ID == id {
			return &s.Hardware[i], true
		}
	}
	return nil, false
}

// AddOn returns the add-on option with the given id.
func (s *ProductSeries) AddOn(id string) (*AddOnOption, bool) {
	for i := range s.AddOns {
		if s.AddOns[i].ID == id {
			return &s.AddOns[i], true
		}
	}
	return nil, false
}

// CompatibleHardware returns hardware of the given kind usable with the
// series' door type. Used to suggest alternatives in validation messages.
func (s *ProductSeries) CompatibleHardware(kind HardwareKind) []HardwareOption {
	var out []HardwareOption
	for _, h := range s.Hardware {
		if h.Kind == kind && h.CompatibleWith(s.DoorType) && h.Availability != AvailabilityDiscontinued {
			out = append(out, h)
		}
	}
	return out
}

// MinPriceCents is the lowest configured price the series can reach, used by
// catalog price-range filters. Base price plus the cheapest material/finish
// fixed modifiers.
func (s *ProductSeries) MinPriceCents() int64 {
	total := s.BasePriceCents
	total += cheapestFixed(modifiersOfMaterials(s.Materials))
	total += cheapestFixed(modifiersOfFinishes(s.Finishes))
	return total
}

// AnyInStock reports whether at least one material and finish is stocked.
func (s *ProductSeries) AnyInStock() bool {
	material := false
	for _, m := range s.Materials {
		if m.InStock {
			material = true
			break
		}
	}
	if !material {
		return false
	}
	for _, f := range s.Finishes {
		if f.InStock {
			return true
		}
	}
	return false
}

func modifiersOfMaterials(opts []MaterialOption) []Modifier {
	out := make([]Modifier, 0, len(opts))
	for _, o := range opts {
		if o.Availability != AvailabilityDiscontinued {
			out = append(out, o.Modifier)
		}
	}
	return out
}

func modifiersOfFinishes(opts []FinishOption) []Modifier {
	out := make([]Modifier, 0, len(opts))
	for _, o := range opts {
		if o.Availability != AvailabilityDiscontinued {
			out = append(out, o.Modifier)
		}
	}
	return out
}

func cheapestFixed(mods []Modifier) int64 {
	cheapest := int64(math.MaxInt64)
	for _, m := range mods {
		if m.IsPercent() {
			continue
		}
		if c := m.FixedCents(); c < cheapest {
			cheapest = c
		}
	}
	if cheapest == math.MaxInt64 {
		return 0
	}
	return cheapest
}
