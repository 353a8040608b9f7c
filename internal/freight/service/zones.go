package service

import (
	"fmt"
	"strings"

	"github.com/scaroll/pgclosets-core/internal/freight/domain"
)

// Delivery radiates out from the Ottawa warehouse. The zone tables are a
// flat prefix lookup, deliberately trading precision for zero network
// calls on the pricing-critical path.
var (
	localPrefixes  = []string{"K1", "K2", "K4"}
	nearbyPrefixes = []string{"J8", "J9", "K0", "K7"}

	regionalOntario = []string{"K6", "K8"}
	regionalQuebec  = []string{"J0", "J2", "J3", "J4", "J5", "J6", "J7"}
)

type zoneRates struct {
	baseCents        int64
	perKgCents       int64
	residentialCents int64
	liftgateCents    int64
	minChargeCents   int64
	parcelBaseCents  int64
	days             domain.DayRange
}

var zoneRateTable = map[domain.Zone]zoneRates{
	domain.ZoneLocal: {
		days:            domain.DayRange{Min: 1, Max: 2},
		parcelBaseCents: 1500,
	},
	domain.ZoneNearby: {
		baseCents:        7500,
		perKgCents:       50,
		residentialCents: 4500,
		liftgateCents:    7500,
		minChargeCents:   12500,
		parcelBaseCents:  2000,
		days:             domain.DayRange{Min: 2, Max: 4},
	},
	domain.ZoneRegional: {
		baseCents:        15000,
		perKgCents:       75,
		residentialCents: 6500,
		liftgateCents:    9500,
		minChargeCents:   22500,
		parcelBaseCents:  3000,
		days:             domain.DayRange{Min: 3, Max: 6},
	},
	domain.ZoneProvincial: {
		baseCents:        25000,
		perKgCents:       100,
		residentialCents: 8500,
		liftgateCents:    12500,
		minChargeCents:   37500,
		parcelBaseCents:  4500,
		days:             domain.DayRange{Min: 5, Max: 8},
	},
	domain.ZoneNational: {
		baseCents:        45000,
		perKgCents:       150,
		residentialCents: 12500,
		liftgateCents:    17500,
		minChargeCents:   62500,
		parcelBaseCents:  7500,
		days:             domain.DayRange{Min: 7, Max: 12},
	},
	domain.ZoneRemote: {
		baseCents:        75000,
		perKgCents:       250,
		residentialCents: 20000,
		liftgateCents:    25000,
		minChargeCents:   100000,
		parcelBaseCents:  15000,
		days:             domain.DayRange{Min: 10, Max: 20},
	},
}

var zoneNames = map[domain.Zone][2]string{
	domain.ZoneLocal:      {"Ottawa", "Within the Ottawa delivery area"},
	domain.ZoneNearby:     {"Gatineau & surroundings", "Within 100km of Ottawa"},
	domain.ZoneRegional:   {"Eastern Ontario & Western Quebec", "Within 500km of Ottawa"},
	domain.ZoneProvincial: {"Ontario & Quebec", "Rest of Ontario and Quebec"},
	domain.ZoneNational:   {"Canada-wide", "Other provinces"},
	domain.ZoneRemote:     {"Territories", "Northern territories and remote areas"},
}

// NormalizePostalCode validates a Canadian postal code and returns it in
// the canonical "A1A 1A1" form. Malformed input is a validation failure,
// never a crash.
func NormalizePostalCode(postalCode string) (string, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(postalCode), " ", ""))
	if len(cleaned) != 6 {
		return "", fmt.Errorf("%w: expected format A1A 1A1", domain.ErrInvalidPostalCode)
	}
	for i, r := range cleaned {
		if i%2 == 0 {
			if r < 'A' || r > 'Z' {
				return "", fmt.Errorf("%w: expected format A1A 1A1", domain.ErrInvalidPostalCode)
			}
		} else {
			if r < '0' || r > '9' {
				return "", fmt.Errorf("%w: expected format A1A 1A1", domain.ErrInvalidPostalCode)
			}
		}
	}
	return cleaned[:3] + " " + cleaned[3:], nil
}

func classifyZone(normalized string) domain.Zone {
	prefix := strings.ReplaceAll(normalized, " ", "")[:2]

	if containsPrefix(localPrefixes, prefix) {
		return domain.ZoneLocal
	}
	if containsPrefix(nearbyPrefixes, prefix) {
		return domain.ZoneNearby
	}

	switch prefix[0] {
	case 'K', 'L', 'M', 'N', 'P':
		if containsPrefix(regionalOntario, prefix) {
			return domain.ZoneRegional
		}
		return domain.ZoneProvincial
	case 'G', 'H', 'J':
		if containsPrefix(regionalQuebec, prefix) {
			return domain.ZoneRegional
		}
		return domain.ZoneProvincial
	case 'X', 'Y':
		return domain.ZoneRemote
	default:
		return domain.ZoneNational
	}
}

func containsPrefix(set []string, prefix string) bool {
	for _, p := range set {
		if p == prefix {
			return true
		}
	}
	return false
}
