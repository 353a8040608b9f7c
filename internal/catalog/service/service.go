package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/configurator/sku"
)

type Service struct {
	log     *zap.Logger
	catalog domain.Source
}

type Params struct {
	fx.In

	Log     *zap.Logger
	Catalog domain.Source
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("catalog.service"),
		catalog: p.Catalog,
	}
}

func (s *Service) ListSeries(ctx context.Context, req domain.ListRequest) ([]domain.SeriesSummary, error) {
	var out []domain.SeriesSummary
	for i := range s.catalog.Catalog().Series() {
		series := &s.catalog.Catalog().Series()[i]
		if !matches(series, req) {
			continue
		}
		out = append(out, summarize(series))
	}

	sortSummaries(out, req.SortBy, req.OrderBy)
	return out, nil
}

func (s *Service) GetSeries(ctx context.Context, id string) (*domain.ProductSeries, error) {
	series, ok := s.catalog.Catalog().SeriesByID(strings.TrimSpace(id))
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeriesNotFound, id)
	}
	return series, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.SeriesSummary, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.ListSeries(ctx, domain.ListRequest{})
	}

	var out []domain.SeriesSummary
	for i := range s.catalog.Catalog().Series() {
		series := &s.catalog.Catalog().Series()[i]
		if matchesKeyword(series, q) {
			out = append(out, summarize(series))
		}
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	catalog := s.catalog.Catalog()
	stats := &domain.Stats{
		Version:    catalog.Version(),
		ByDoorType: make(map[domain.DoorType]int),
	}

	for i := range catalog.Series() {
		series := &catalog.Series()[i]
		stats.TotalSeries++
		stats.ByDoorType[series.DoorType]++
		stats.TotalMaterials += len(series.Materials)
		stats.TotalFinishes += len(series.Finishes)
		if series.AnyInStock() {
			stats.InStockSeries++
		}

		price := series.MinPriceCents()
		if stats.MinPriceCents == 0 || price < stats.MinPriceCents {
			stats.MinPriceCents = price
		}
		if price > stats.MaxPriceCents {
			stats.MaxPriceCents = price
		}
	}

	return stats, nil
}

// ResolveSKU decodes a generated SKU and maps its option codes back to the
// owning series' option ids, so a saved cart can be re-priced later.
func (s *Service) ResolveSKU(ctx context.Context, rawSKU string) (*domain.SKUResolution, error) {
	components, err := sku.Decode(rawSKU)
	if err != nil {
		return nil, err
	}

	series, ok := s.catalog.Catalog().SeriesByCode(components.SeriesCode)
	if !ok {
		return nil, fmt.Errorf("%w: series code %s", domain.ErrSKUNotFound, components.SeriesCode)
	}

	resolution := &domain.SKUResolution{
		SeriesID:   series.ID,
		SeriesName: series.Name,
		Request: domain.ResolvedSelection{
			Dimensions: domain.OpeningDimensions{
				Width:  components.WidthIn,
				Height: components.HeightIn,
				Unit:   domain.UnitInches,
			},
		},
	}

	for _, m := range series.Materials {
		if strings.EqualFold(m.Code, components.Material) {
			resolution.Request.MaterialID = m.ID
		}
	}
	for _, f := range series.Finishes {
		if strings.EqualFold(f.Code, components.Finish) {
			resolution.Request.FinishID = f.ID
		}
	}
	if components.Glass != "" {
		for _, g := range series.Glass {
			if strings.EqualFold(g.Code, components.Glass) {
				resolution.Request.GlassID = g.ID
			}
		}
	}
	for _, code := range components.Hardware {
		for _, h := range series.Hardware {
			if strings.EqualFold(h.Code, code) {
				resolution.Request.HardwareIDs = append(resolution.Request.HardwareIDs, h.ID)
			}
		}
	}

	if resolution.Request.MaterialID == "" || resolution.Request.FinishID == "" {
		return nil, fmt.Errorf("%w: option codes no longer in catalog", domain.ErrSKUNotFound)
	}

	return resolution, nil
}

func matches(series *domain.ProductSeries, req domain.ListRequest) bool {
	if req.DoorType != "" && series.DoorType != req.DoorType {
		return false
	}
	if req.MaterialID != "" {
		if _, ok := series.Material(req.MaterialID); !ok {
			return false
		}
	}
	if req.FinishID != "" {
		if _, ok := series.Finish(req.FinishID); !ok {
			return false
		}
	}
	if req.InStockOnly && !series.AnyInStock() {
		return false
	}

	price := series.MinPriceCents()
	if req.MinPriceCents > 0 && price < req.MinPriceCents {
		return false
	}
	if req.MaxPriceCents > 0 && price > req.MaxPriceCents {
		return false
	}
	return true
}

func matchesKeyword(series *domain.ProductSeries, q string) bool {
	if strings.Contains(strings.ToLower(series.Name), q) ||
		strings.Contains(strings.ToLower(series.Brand), q) ||
		strings.Contains(strings.ToLower(string(series.DoorType)), q) {
		return true
	}
	for _, kw := range series.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	for _, f := range series.Finishes {
		if strings.Contains(strings.ToLower(f.Name), q) {
			return true
		}
	}
	for _, m := range series.Materials {
		if strings.Contains(strings.ToLower(m.Name), q) {
			return true
		}
	}
	return false
}

func summarize(series *domain.ProductSeries) domain.SeriesSummary {
	return domain.SeriesSummary{
		ID:            series.ID,
		Slug:          series.Slug,
		Name:          series.Name,
		Brand:         series.Brand,
		DoorType:      series.DoorType,
		FromCents:     series.MinPriceCents(),
		InStock:       series.AnyInStock(),
		MaterialCount: len(series.Materials),
		FinishCount:   len(series.Finishes),
	}
}

func sortSummaries(items []domain.SeriesSummary, sortBy, orderBy string) {
	desc := strings.EqualFold(orderBy, "desc")
	less := func(i, j int) bool { return items[i].Name < items[j].Name }

	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "price":
		less = func(i, j int) bool { return items[i].FromCents < items[j].FromCents }
	case "", "name":
	default:
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
