package domain

import (
	"encoding/json"
	"math"
)

// Modifier is an option price adjustment: either a fixed amount in cents or
// a percentage of the running subtotal. The two variants are constructed
// through FixedModifier and PercentModifier so a raw number can never be
// interpreted the wrong way.
type Modifier struct {
	percent bool
	cents   int64
	rate    float64
}

// FixedModifier builds a flat adjustment in minor currency units.
func FixedModifier(cents int64) Modifier {
	return Modifier{cents: cents}
}

// PercentModifier builds a percentage adjustment. rate is fractional:
// 0.10 means +10%.
func PercentModifier(rate float64) Modifier {
	return Modifier{percent: true, rate: rate}
}

// IsPercent reports whether the modifier is percentage-based.
func (m Modifier) IsPercent() bool { return m.percent }

// FixedCents returns the flat amount; zero for percentage modifiers.
func (m Modifier) FixedCents() int64 {
	if m.percent {
		return 0
	}
	return m.cents
}

// Rate returns the fractional percentage; zero for fixed modifiers.
func (m Modifier) Rate() float64 {
	if !m.percent {
		return 0
	}
	return m.rate
}

// IsZero reports whether the modifier adjusts nothing.
func (m Modifier) IsZero() bool {
	return !m.percent && m.cents == 0 || m.percent && m.rate == 0
}

// ApplyCents returns the cent delta this modifier contributes against the
// given running subtotal. Percentage deltas round to the nearest cent.
func (m Modifier) ApplyCents(subtotalCents int64) int64 {
	if m.percent {
		return RoundCents(float64(subtotalCents) * m.rate)
	}
	return m.cents
}

// RoundCents rounds a fractional cent amount to the nearest whole cent.
// Rounding after every multiplication keeps repeated live-pricing calls
// from drifting.
func RoundCents(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}

type modifierJSON struct {
	Percent float64 `json:"percent,omitempty"`
	Cents   int64   `json:"cents,omitempty"`
}

// MarshalJSON encodes the modifier with explicit variant fields.
func (m Modifier) MarshalJSON() ([]byte, error) {
	if m.percent {
		return json.Marshal(modifierJSON{Percent: m.rate})
	}
	return json.Marshal(modifierJSON{Cents: m.cents})
}

// UnmarshalJSON decodes a modifier; a non-zero percent wins over cents.
func (m *Modifier) UnmarshalJSON(data []byte) error {
	var raw modifierJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Percent != 0 {
		*m = PercentModifier(raw.Percent)
		return nil
	}
	*m = FixedModifier(raw.Cents)
	return nil
}
