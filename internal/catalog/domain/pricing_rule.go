package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// CalcMethod tags the calculation variant of a pricing rule.
type CalcMethod string

const (
	CalcFixed      CalcMethod = "fixed"
	CalcPercentage CalcMethod = "percentage"
	CalcPerSqFt    CalcMethod = "per-sqft"
	CalcTiered     CalcMethod = "tiered"
)

// Tier is one step of a tiered calculation. The highest tier whose
// Threshold is at or below the measured quantity applies.
type Tier struct {
	Threshold   float64 `json:"threshold"`
	AmountCents int64   `json:"amount_cents"`
}

// Calculation is the tagged calculation variant of a pricing rule. Values
// are only reachable through the constructor matching their method, so an
// "unknown calculation method" cannot survive past catalog load.
type Calculation struct {
	method      CalcMethod
	amountCents int64
	rate        float64
	perSqFt     int64
	tiers       []Tier
}

// FixedCalc adds a flat amount.
func FixedCalc(cents int64) Calculation {
	return Calculation{method: CalcFixed, amountCents: cents}
}

// PercentageCalc adds a fraction of the running subtotal (0.10 = +10%).
func PercentageCalc(rate float64) Calculation {
	return Calculation{method: CalcPercentage, rate: rate}
}

// PerSqFtCalc adds a rate per square foot of opening area.
func PerSqFtCalc(centsPerSqFt int64) Calculation {
	return Calculation{method: CalcPerSqFt, perSqFt: centsPerSqFt}
}

// TieredCalc adds the amount of the highest tier reached, or nothing when
// no tier threshold is met.
func TieredCalc(tiers []Tier) Calculation {
	return Calculation{method: CalcTiered, tiers: tiers}
}

// Method returns the variant tag.
func (c Calculation) Method() CalcMethod { return c.method }

// Delta returns the cent contribution of the calculation given the running
// subtotal, the opening area in square feet, and the tier quantity (area
// unless the rule carries an explicit quantity dimension).
func (c Calculation) Delta(subtotalCents int64, areaSqFt, tierQty float64) int64 {
	switch c.method {
	case CalcFixed:
		return c.amountCents
	case CalcPercentage:
		return RoundCents(float64(subtotalCents) * c.rate)
	case CalcPerSqFt:
		return RoundCents(float64(c.perSqFt) * areaSqFt)
	case CalcTiered:
		var amount int64
		for _, t := range c.tiers {
			if tierQty >= t.Threshold {
				amount = t.AmountCents
			}
		}
		return amount
	default:
		return 0
	}
}

type calculationJSON struct {
	Method      CalcMethod `json:"method"`
	AmountCents int64      `json:"amount_cents,omitempty"`
	Rate        float64    `json:"rate,omitempty"`
	PerSqFt     int64      `json:"per_sqft_cents,omitempty"`
	Tiers       []Tier     `json:"tiers,omitempty"`
}

func (c Calculation) MarshalJSON() ([]byte, error) {
	return json.Marshal(calculationJSON{
		Method:      c.method,
		AmountCents: c.amountCents,
		Rate:        c.rate,
		PerSqFt:     c.perSqFt,
		Tiers:       c.tiers,
	})
}

func (c *Calculation) UnmarshalJSON(data []byte) error {
	var raw calculationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Method {
	case CalcFixed:
		*c = FixedCalc(raw.AmountCents)
	case CalcPercentage:
		*c = PercentageCalc(raw.Rate)
	case CalcPerSqFt:
		*c = PerSqFtCalc(raw.PerSqFt)
	case CalcTiered:
		*c = TieredCalc(raw.Tiers)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCalcMethod, raw.Method)
	}
	return nil
}

// RuleScope is the applicability predicate of a pricing rule. Empty slices
// and zero bounds match everything.
type RuleScope struct {
	DoorTypes []DoorType `json:"door_types,omitempty"`
	Materials []string   `json:"materials,omitempty"`
	Finishes  []string   `json:"finishes,omitempty"`
	Glass     []string   `json:"glass,omitempty"`
	MinWidth  float64    `json:"min_width,omitempty"`
	MaxWidth  float64    `json:"max_width,omitempty"`
	MinHeight float64    `json:"min_height,omitempty"`
	MaxHeight float64    `json:"max_height,omitempty"`
}

// RuleWindow optionally bounds when and at what quantity a rule applies.
type RuleWindow struct {
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	MinQuantity int        `json:"min_quantity,omitempty"`
	MaxQuantity int        `json:"max_quantity,omitempty"`
}

// Active reports whether the window admits the given instant and quantity.
func (w RuleWindow) Active(now time.Time, quantity int) bool {
	if w.ValidFrom != nil && now.Before(*w.ValidFrom) {
		return false
	}
	if w.ValidUntil != nil && now.After(*w.ValidUntil) {
		return false
	}
	if w.MinQuantity > 0 && quantity < w.MinQuantity {
		return false
	}
	if w.MaxQuantity > 0 && quantity > w.MaxQuantity {
		return false
	}
	return true
}

// PricingRule is the atomic unit of price computation. Rules are evaluated
// in ascending Priority order; percentage rules apply to the running
// subtotal at the time they are evaluated. That ordering is part of the
// pricing contract and must not be reordered.
type PricingRule struct {
	ID          string      `json:"id"`
	Description string      `json:"description,omitempty"`
	Scope       RuleScope   `json:"scope"`
	Window      RuleWindow  `json:"window"`
	Calc        Calculation `json:"calculation"`
	Priority    int         `json:"priority"`
}
