package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/scaroll/pgclosets-core/internal/clock"
	"github.com/scaroll/pgclosets-core/internal/config"
	"github.com/scaroll/pgclosets-core/internal/freight/domain"
)

const (
	parcelMaxWeightKg       = 30
	parcelMaxCombinedCm     = 270 // length + girth
	parcelMaxDimensionCm    = 150
	parcelIncludedWeightKg  = 5
	parcelPerKgCents        = 250
	oversizedDimensionCm    = 240
	oversizedSurchargeCents = 12500
	fragileSurchargeCents   = 7500
	specialSurchargeCents   = 10000
	stairsSurchargeCents    = 10000
	insuredValueFloorCents  = 200000 // declared value over $2000 is insured
	insuranceRate           = 0.015
)

// Service produces zone-table shipping estimates. An optional RateProvider
// supplies live carrier rates; its failures degrade to the table, never to
// the user.
type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	provider domain.RateProvider
	timeout  time.Duration
	retries  int
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Cfg      config.Config
	Clock    clock.Clock
	Provider domain.RateProvider `optional:"true"`
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("freight.service"),
		clock:    p.Clock,
		provider: p.Provider,
		timeout:  p.Cfg.FreightRateTimeout,
		retries:  p.Cfg.FreightRateRetries,
	}
}

// ResolveZone classifies a postal code into a delivery zone.
func (s *Service) ResolveZone(postalCode string) (*domain.ZoneInfo, error) {
	normalized, err := NormalizePostalCode(postalCode)
	if err != nil {
		return nil, err
	}
	zone := classifyZone(normalized)
	names := zoneNames[zone]
	return &domain.ZoneInfo{
		Zone:        zone,
		Name:        names[0],
		Description: names[1],
		PostalCode:  normalized,
	}, nil
}

// Estimate returns one estimate per method available for the resolved
// zone, cheapest first. Methods unavailable for the zone are omitted, not
// returned with a zero price.
func (s *Service) Estimate(ctx context.Context, input domain.Input) ([]domain.Estimate, error) {
	info, err := s.ResolveZone(input.PostalCode)
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyManifest
	}

	if s.provider != nil {
		if estimates, ok := s.liveRates(ctx, input, info.Zone); ok {
			return estimates, nil
		}
	}

	estimates := s.tableEstimates(input, info.Zone)
	sort.SliceStable(estimates, func(i, j int) bool {
		return estimates[i].PriceCents < estimates[j].PriceCents
	})
	return estimates, nil
}

func (s *Service) liveRates(ctx context.Context, input domain.Input, zone domain.Zone) ([]domain.Estimate, bool) {
	for attempt := 0; attempt <= s.retries; attempt++ {
		rateCtx, cancel := context.WithTimeout(ctx, s.timeout)
		estimates, err := s.provider.Rates(rateCtx, input, zone)
		cancel()
		if err == nil && len(estimates) > 0 {
			return estimates, true
		}
		if ctx.Err() != nil {
			break
		}
		s.log.Warn("live rate lookup failed, will fall back to zone table",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return nil, false
}

func (s *Service) tableEstimates(input domain.Input, zone domain.Zone) []domain.Estimate {
	rates := zoneRateTable[zone]

	// Carriers price by shipment, not by line: aggregate the manifest
	// before estimating.
	manifest := aggregate(input.Items)

	var estimates []domain.Estimate

	if zone == domain.ZoneLocal {
		estimates = append(estimates, domain.Estimate{
			Method:     domain.MethodLocalPickup,
			Carrier:    "Customer Pickup",
			PriceCents: 0,
			Days:       domain.DayRange{Min: 1, Max: 1},
			Restrictions: []string{
				"Pickup at the Ottawa warehouse",
				"Valid ID required",
				"Bring a vehicle suitable for door panels",
			},
		})
	}

	if manifest.parcelEligible {
		estimates = append(estimates, domain.Estimate{
			Method:     domain.MethodParcel,
			Carrier:    "Canada Post",
			PriceCents: parcelPrice(manifest.totalWeightKg, rates),
			Days:       domain.DayRange{Min: 3, Max: 7},
			Restrictions: []string{
				"Signature required",
				"Fragile items double-boxed",
			},
		})
	}

	freight, surcharges := s.freightPrice(input, manifest, rates)
	estimates = append(estimates, domain.Estimate{
		Method:              domain.MethodLTLFreight,
		Carrier:             "Day & Ross / Purolator Freight",
		PriceCents:          freight,
		Days:                rates.days,
		RequiresLiftgate:    input.RequiresLiftgate,
		ResidentialDelivery: input.DeliveryType == domain.DeliveryResidential,
		Surcharges:          surcharges,
		Restrictions: []string{
			"Curbside delivery",
			"Call-ahead delivery with 24hr notice",
			"Inspect for damage before signing",
		},
	})

	if zone == domain.ZoneLocal || zone == domain.ZoneNearby {
		estimates = append(estimates, domain.Estimate{
			Method:     domain.MethodWhiteGlove,
			Carrier:    "Professional Delivery Service",
			PriceCents: whiteGlovePrice(freight),
			Days:       domain.DayRange{Min: 5, Max: 10},
			Restrictions: []string{
				"Inside delivery to room of choice",
				"Unpacking and debris removal",
				"Appointment scheduling required",
			},
		})
	}

	return estimates
}

// DeliveryPromise projects the arrival window. Out-of-stock lead time runs
// before the shipping clock starts, sequentially.
func (s *Service) DeliveryPromise(ctx context.Context, postalCode string, leadTimeDays int) (*domain.DeliveryPromise, error) {
	info, err := s.ResolveZone(postalCode)
	if err != nil {
		return nil, err
	}

	rates := zoneRateTable[info.Zone]
	processing := 1
	if leadTimeDays > 0 {
		processing = leadTimeDays
	}

	minDays := processing + rates.days.Min
	maxDays := processing + rates.days.Max

	now := s.clock.Now()
	promise := &domain.DeliveryPromise{
		Min: now.AddDate(0, 0, minDays),
		Max: now.AddDate(0, 0, maxDays),
	}

	if info.Zone == domain.ZoneLocal && leadTimeDays == 0 {
		promise.Text = "Available for pickup as early as tomorrow"
	} else {
		promise.Text = fmt.Sprintf("Estimated delivery in %d-%d business days", minDays, maxDays)
	}
	return promise, nil
}

// PickupLocations lists pickup sites reachable from the postal code.
// Outside local and nearby zones the list is empty.
func (s *Service) PickupLocations(postalCode string) ([]domain.PickupLocation, error) {
	info, err := s.ResolveZone(postalCode)
	if err != nil {
		return nil, err
	}
	if info.Zone != domain.ZoneLocal && info.Zone != domain.ZoneNearby {
		return []domain.PickupLocation{}, nil
	}

	distance := func(local, nearby float64) float64 {
		if info.Zone == domain.ZoneLocal {
			return local
		}
		return nearby
	}

	return []domain.PickupLocation{
		{
			Name:       "PG Closets Main Warehouse",
			Address:    "123 Industrial Road, Ottawa, ON K1B 3L4",
			Hours:      "Mon-Fri 9:00 AM - 5:00 PM, Sat 10:00 AM - 3:00 PM",
			DistanceKm: distance(5, 25),
			Warehouse:  true,
		},
		{
			Name:       "PG Closets Kanata Showroom",
			Address:    "456 Kanata Ave, Ottawa, ON K2K 2P5",
			Hours:      "Tue-Sat 10:00 AM - 6:00 PM, Sun 11:00 AM - 4:00 PM",
			DistanceKm: distance(8, 30),
		},
	}, nil
}

type aggregatedManifest struct {
	totalWeightKg   float64
	totalValueCents int64
	maxDimensionCm  float64
	parcelEligible  bool
	fragile         bool
	specialHandling bool
	oversized       bool
}

func aggregate(items []domain.Package) aggregatedManifest {
	m := aggregatedManifest{parcelEligible: true}
	for _, item := range items {
		m.totalWeightKg += item.WeightKg
		m.totalValueCents += item.ValueCents
		m.fragile = m.fragile || item.Fragile
		m.specialHandling = m.specialHandling || item.SpecialHandling

		maxDim := math.Max(item.LengthCm, math.Max(item.WidthCm, item.HeightCm))
		if maxDim > m.maxDimensionCm {
			m.maxDimensionCm = maxDim
		}
		if maxDim > oversizedDimensionCm {
			m.oversized = true
		}

		girth := 2 * (item.WidthCm + item.HeightCm)
		if item.LengthCm+girth > parcelMaxCombinedCm || maxDim > parcelMaxDimensionCm {
			m.parcelEligible = false
		}
	}
	if m.totalWeightKg > parcelMaxWeightKg {
		m.parcelEligible = false
	}
	return m
}

func parcelPrice(weightKg float64, rates zoneRates) int64 {
	price := rates.parcelBaseCents
	if extra := weightKg - parcelIncludedWeightKg; extra > 0 {
		price += int64(math.Floor(extra*parcelPerKgCents + 0.5))
	}
	return price
}

func (s *Service) freightPrice(input domain.Input, m aggregatedManifest, rates zoneRates) (int64, []domain.SurchargeAmount) {
	price := rates.baseCents + int64(math.Floor(m.totalWeightKg*float64(rates.perKgCents)+0.5))

	if m.oversized {
		price += oversizedSurchargeCents
	}
	if m.fragile {
		price += fragileSurchargeCents
	}
	if m.specialHandling {
		price += specialSurchargeCents
	}
	if m.totalValueCents > insuredValueFloorCents {
		price += int64(math.Floor(float64(m.totalValueCents-insuredValueFloorCents)*insuranceRate + 0.5))
	}

	var surcharges []domain.SurchargeAmount
	if input.DeliveryType == domain.DeliveryResidential && rates.residentialCents > 0 {
		surcharges = append(surcharges, domain.SurchargeAmount{Type: "Residential Delivery", AmountCents: rates.residentialCents})
	}
	if input.RequiresLiftgate && rates.liftgateCents > 0 {
		surcharges = append(surcharges, domain.SurchargeAmount{Type: "Liftgate Service", AmountCents: rates.liftgateCents})
	}
	if input.AccessType == domain.AccessStairs {
		surcharges = append(surcharges, domain.SurchargeAmount{Type: "Stairs Access Fee", AmountCents: stairsSurchargeCents})
	}

	for _, sc := range surcharges {
		price += sc.AmountCents
	}
	if price < rates.minChargeCents {
		price = rates.minChargeCents
	}
	return price, surcharges
}

func whiteGlovePrice(freightCents int64) int64 {
	return int64(math.Floor(float64(freightCents)*1.75+0.5)) + 15000
}
