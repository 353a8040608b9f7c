// Package validator checks a proposed configuration against a series'
// opening limits and option compatibility rules. Validation is a pure
// function over its inputs and is safe to call on every keystroke.
package validator

import (
	"fmt"
	"strings"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/configurator/domain"
)

// Validate returns pass/fail plus human-readable diagnostics. Errors block
// pricing; warnings do not.
func Validate(series *catalogdomain.ProductSeries, req domain.ConfigureRequest) domain.ValidationResult {
	result := domain.ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	checkDimensions(series, req, &result)
	checkClearance(series, req, &result)
	checkMaterial(series, req, &result)
	checkFinish(series, req, &result)
	checkGlass(series, req, &result)
	checkHardware(series, req, &result)
	checkAddOns(series, req, &result)

	result.IsValid = len(result.Errors) == 0
	return result
}

func checkDimensions(series *catalogdomain.ProductSeries, req domain.ConfigureRequest, out *domain.ValidationResult) {
	w, h := req.Dimensions.Inches()
	r := series.Requirements

	if w <= 0 || h <= 0 {
		out.Errors = append(out.Errors, "opening width and height are required")
		return
	}
	if w < r.MinWidth || w > r.MaxWidth {
		out.Errors = append(out.Errors, fmt.Sprintf(
			"opening width %.2f\" is outside the %s range of %.0f\"-%.0f\"",
			w, series.Name, r.MinWidth, r.MaxWidth))
	}
	if h < r.MinHeight || h > r.MaxHeight {
		out.Errors = append(out.Errors, fmt.Sprintf(
			"opening height %.2f\" is outside the %s range of %.0f\"-%.0f\"",
			h, series.Name, r.MinHeight, r.MaxHeight))
	}
}

func checkClearance(series *catalogdomain.ProductSeries, req domain.ConfigureRequest, out *domain.ValidationResult) {
	if series.Requirements.RequiredClearance <= 0 {
		return
	}
	// No deployment context is a warning, not an error: a dimension-only
	// check still lets the customer get a price.
	if req.Clearance == nil {
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"clearance not verified: %s needs %.1f\" of wall clearance; measure before ordering",
			series.Name, series.Requirements.RequiredClearance))
		return
	}
	if !req.Clearance.Satisfies(series.Requirements.RequiredClearance) {
		out.Errors = append(out.Errors, fmt.Sprintf(
			"available wall clearance does not satisfy the required %.1f\"",
			series.Requirements.RequiredClearance))
	}
}

func checkMaterial(series *catalogdomain.ProductSeries, req domain.ConfigureRequest, out *domain.ValidationResult) {
	if req.MaterialID == "" {
		out.Errors = append(out.Errors, "material selection is required")
		return
	}
	m, ok := series.Material(req.MaterialID)
	if !ok {
		out.Errors = append(out.Errors, fmt.Sprintf("material %q is not offered for %s", req.MaterialID, series.Name))
		return
	}
	checkAvailability("material", m.Name, m.Availability, req.LeadTimeAcknowledged, out)
}

func checkFinish(series *catalogdomain.ProductSeries, req domain.ConfigureRequest, out *domain.ValidationResult) {
	if req.FinishID == "" {
		out.Errors = append(out.Errors, "finish selection is required")
		return
	}
	f, ok := series.Finish(req.FinishID)
	if !ok {
		out.Errors = append(out.Errors, fmt.Sprintf("finish %q is not offered for %s", req.FinishID, series.Name))
		return
	}
	checkAvailability("finish", f.Name, f.Availability, req.LeadTimeAcknowledged, out)
}

func checkGlass(series *catalogdomain.ProductSeries, req domain.ConfigureRequest, out *domain.ValidationResult) {
	if req.GlassID == "" {
		return
	}
	g, ok := series.GlassOption(req.GlassID)
	if !ok {
		out.Errors = append(out.Errors, fmt.Sprintf("glass %q is not offered for %s", req.GlassID, series.Name))
		return
	}
	checkAvailability("glass", g.Name, g.Availability, req.LeadTimeAcknowledged, out)
}

func checkHardware(series *catalogdomain.ProductSeries, req domain.ConfigureRequest, out *domain.ValidationResult) {
	for _, id := range req.HardwareIDs() {
		h, ok := series.HardwareOption(id)
		if !ok {
			out.Errors = append(out.Errors, fmt.Sprintf("hardware %q is not offered for %s", id, series.Name))
			continue
		}
		if !h.CompatibleWith(series.DoorType) {
			msg := fmt.Sprintf("%s is not compatible with %s doors", h.Name, series.DoorType)
			if alt := suggestAlternative(series, h.Kind); alt != "" {
				msg += "; consider " + alt
			}
			out.Errors = append(out.Errors, msg)
			continue
		}
		checkAvailability("hardware", h.Name, h.Availability, req.LeadTimeAcknowledged, out)
	}
}

func checkAddOns(series *catalogdomain.ProductSeries, req domain.ConfigureRequest, out *domain.ValidationResult) {
	for _, id := range req.AddOnIDs {
		if _, ok := series.AddOn(id); !ok {
			out.Errors = append(out.Errors, fmt.Sprintf("add-on %q is not offered for %s", id, series.Name))
		}
	}
}

func checkAvailability(kind, name string, availability catalogdomain.Availability, acknowledged bool, out *domain.ValidationResult) {
	switch availability {
	case catalogdomain.AvailabilityDiscontinued:
		out.Errors = append(out.Errors, fmt.Sprintf("%s %s has been discontinued", kind, name))
	case catalogdomain.AvailabilityCustom:
		if !acknowledged {
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"%s %s is made to order and extends the lead time", kind, name))
		}
	}
}

func suggestAlternative(series *catalogdomain.ProductSeries, kind catalogdomain.HardwareKind) string {
	alternatives := series.CompatibleHardware(kind)
	if len(alternatives) == 0 {
		return ""
	}
	names := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		names = append(names, alt.Name)
	}
	return strings.Join(names, " or ")
}
