package service

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/clock"
	"github.com/scaroll/pgclosets-core/internal/configurator/domain"
	"github.com/scaroll/pgclosets-core/internal/configurator/pricing"
	"github.com/scaroll/pgclosets-core/internal/configurator/sku"
	"github.com/scaroll/pgclosets-core/internal/configurator/validator"
)

// Service orchestrates validation, pricing, and SKU generation for a single
// configure call. It holds no per-session state: every call is a fresh
// computation over the snapshot passed in.
type Service struct {
	log     *zap.Logger
	catalog catalogdomain.Source
	clock   clock.Clock
}

type Params struct {
	fx.In

	Log     *zap.Logger
	Catalog catalogdomain.Source
	Clock   clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("configurator.service"),
		catalog: p.Catalog,
		clock:   p.Clock,
	}
}

// Configure validates the request against its series and, when valid,
// prices it and generates its SKU. An invalid configuration is not an
// error at this level: the result carries the diagnostics and no price.
func (s *Service) Configure(ctx context.Context, req domain.ConfigureRequest) (*domain.Configuration, error) {
	if req.SeriesID == "" {
		return nil, domain.ErrSeriesRequired
	}
	if req.Quantity < 0 {
		return nil, domain.ErrQuantityInvalid
	}

	series, ok := s.catalog.Catalog().SeriesByID(req.SeriesID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalogdomain.ErrSeriesNotFound, req.SeriesID)
	}

	result := validator.Validate(series, req)
	cfg := &domain.Configuration{
		SeriesID: series.ID,
		Request:  req,
		IsValid:  result.IsValid,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}

	if !result.IsValid {
		s.log.Debug("configuration rejected",
			zap.String("series_id", series.ID),
			zap.Strings("errors", result.Errors),
		)
		return cfg, nil
	}

	breakdown := pricing.Calculate(series, req, result, s.clock.Now())
	cfg.Breakdown = breakdown
	cfg.UnitPriceCents = breakdown.TotalCents

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	cfg.Discount = pricing.VolumeDiscount(quantity, breakdown.TotalCents)
	cfg.TotalCents = breakdown.TotalCents*int64(quantity) - cfg.Discount.DiscountCents

	cfg.SKU = sku.Generate(s.skuComponents(series, req))
	cfg.LeadTimeDays, cfg.InStock = leadTime(series, req)

	return cfg, nil
}

func (s *Service) skuComponents(series *catalogdomain.ProductSeries, req domain.ConfigureRequest) sku.Components {
	w, h := req.Dimensions.Inches()
	c := sku.Components{
		Brand:      series.Brand,
		SeriesCode: series.Code,
		DoorType:   series.DoorType,
		WidthIn:    w,
		HeightIn:   h,
		PanelCount: series.PanelCount,
	}
	if m, ok := series.Material(req.MaterialID); ok {
		c.Material = m.Code
	}
	if f, ok := series.Finish(req.FinishID); ok {
		c.Finish = f.Code
	}
	if g, ok := series.GlassOption(req.GlassID); ok {
		c.Glass = g.Code
	}
	for _, id := range req.HardwareIDs() {
		if hw, ok := series.HardwareOption(id); ok {
			c.Hardware = append(c.Hardware, hw.Code)
		}
	}
	return c
}

// leadTime is the longest manufacturing delay among out-of-stock selections.
// Delays are not overlapped with shipping; the freight estimator adds them
// before the transit clock starts.
func leadTime(series *catalogdomain.ProductSeries, req domain.ConfigureRequest) (days int, inStock bool) {
	inStock = true

	consider := func(optionInStock bool, leadDays int) {
		if optionInStock {
			return
		}
		inStock = false
		if leadDays > days {
			days = leadDays
		}
	}

	if m, ok := series.Material(req.MaterialID); ok {
		consider(m.InStock, m.LeadTimeDays)
	}
	if f, ok := series.Finish(req.FinishID); ok {
		consider(f.InStock, f.LeadTimeDays)
	}
	if g, ok := series.GlassOption(req.GlassID); ok {
		consider(g.InStock, g.LeadTimeDays)
	}
	for _, id := range req.HardwareIDs() {
		if hw, ok := series.HardwareOption(id); ok {
			consider(hw.InStock, hw.LeadTimeDays)
		}
	}
	return days, inStock
}
