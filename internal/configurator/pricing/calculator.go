// Package pricing folds a series' ordered rule set and the selected option
// modifiers into an itemized price breakdown. All money is integer cents;
// every percentage multiplication rounds to the nearest cent before the
// next step so repeated live-pricing calls never drift.
package pricing

import (
	"time"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/configurator/domain"
)

// Calculate prices a configuration that has already passed validation.
// Pricing an invalid configuration is a caller contract violation and
// panics: a wrong price reaching checkout is worse than a crash.
func Calculate(
	series *catalogdomain.ProductSeries,
	req domain.ConfigureRequest,
	valid domain.ValidationResult,
	now time.Time,
) domain.PriceBreakdown {
	if !valid.IsValid {
		panic(domain.ErrPricedWhenInvalid)
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	area := req.Dimensions.AreaSqFt()

	breakdown := domain.PriceBreakdown{
		BaseCents:  series.BasePriceCents,
		Surcharges: []domain.Surcharge{},
	}
	subtotal := series.BasePriceCents

	// Rules are pre-sorted by ascending priority at catalog load.
	// Percentage rules apply to the running subtotal at evaluation time,
	// not the original base.
	for _, rule := range series.Rules {
		if !ruleMatches(rule, series, req) || !rule.Window.Active(now, quantity) {
			continue
		}
		delta := rule.Calc.Delta(subtotal, area, float64(quantity))
		if delta == 0 {
			continue
		}
		subtotal += delta
		breakdown.Surcharges = append(breakdown.Surcharges, domain.Surcharge{
			Name:        ruleLabel(rule),
			AmountCents: delta,
			Reason:      rule.Description,
		})
	}

	// Option modifiers fold after the rules, each percentage against the
	// subtotal as of that option's addition.
	if finish, ok := series.Finish(req.FinishID); ok {
		breakdown.FinishCents = finish.Modifier.ApplyCents(subtotal)
		subtotal += breakdown.FinishCents
	}
	if req.GlassID != "" {
		if glass, ok := series.GlassOption(req.GlassID); ok {
			breakdown.GlassCents = glass.Modifier.ApplyCents(subtotal)
			subtotal += breakdown.GlassCents
		}
	}
	if material, ok := series.Material(req.MaterialID); ok && !material.Modifier.IsZero() {
		delta := material.Modifier.ApplyCents(subtotal)
		subtotal += delta
		breakdown.Surcharges = append(breakdown.Surcharges, domain.Surcharge{
			Name:        material.Name,
			AmountCents: delta,
			Reason:      "material upgrade",
		})
	}
	for _, id := range req.HardwareIDs() {
		hw, ok := series.HardwareOption(id)
		if !ok || hw.Included {
			continue
		}
		delta := hw.Modifier.ApplyCents(subtotal)
		subtotal += delta
		breakdown.HardwareCents += delta
	}
	for _, id := range req.AddOnIDs {
		addOn, ok := series.AddOn(id)
		if !ok {
			continue
		}
		subtotal += addOn.PriceCents
		if addOn.Labor {
			breakdown.LaborCents += addOn.PriceCents
		} else {
			breakdown.HardwareCents += addOn.PriceCents
		}
	}

	breakdown.TotalCents = subtotal
	return breakdown
}

// VolumeDiscount returns the quantity break applied on top of unit pricing:
// 5% at 3 doors, 10% at 5, 15% at 10.
func VolumeDiscount(quantity int, unitCents int64) domain.VolumeDiscount {
	var rate float64
	switch {
	case quantity >= 10:
		rate = 0.15
	case quantity >= 5:
		rate = 0.10
	case quantity >= 3:
		rate = 0.05
	default:
		return domain.VolumeDiscount{}
	}
	return domain.VolumeDiscount{
		Rate:          rate,
		DiscountCents: catalogdomain.RoundCents(float64(unitCents) * rate * float64(quantity)),
	}
}

func ruleMatches(rule catalogdomain.PricingRule, series *catalogdomain.ProductSeries, req domain.ConfigureRequest) bool {
	scope := rule.Scope

	if len(scope.DoorTypes) > 0 && !containsDoorType(scope.DoorTypes, series.DoorType) {
		return false
	}
	if len(scope.Materials) > 0 && !containsString(scope.Materials, req.MaterialID) {
		return false
	}
	if len(scope.Finishes) > 0 && !containsString(scope.Finishes, req.FinishID) {
		return false
	}
	if len(scope.Glass) > 0 && !containsString(scope.Glass, req.GlassID) {
		return false
	}

	w, h := req.Dimensions.Inches()
	if scope.MinWidth > 0 && w < scope.MinWidth {
		return false
	}
	if scope.MaxWidth > 0 && w > scope.MaxWidth {
		return false
	}
	if scope.MinHeight > 0 && h < scope.MinHeight {
		return false
	}
	if scope.MaxHeight > 0 && h > scope.MaxHeight {
		return false
	}
	return true
}

func ruleLabel(rule catalogdomain.PricingRule) string {
	if rule.Description != "" {
		return rule.Description
	}
	return rule.ID
}

func containsDoorType(set []catalogdomain.DoorType, t catalogdomain.DoorType) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
