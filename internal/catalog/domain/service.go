package domain

import "context"

// Service is the read-only catalog query layer consumed by pages and by
// the configuration orchestrator.
type Service interface {
	ListSeries(ctx context.Context, req ListRequest) ([]SeriesSummary, error)
	GetSeries(ctx context.Context, id string) (*ProductSeries, error)
	Search(ctx context.Context, query string) ([]SeriesSummary, error)
	Stats(ctx context.Context) (*Stats, error)
	ResolveSKU(ctx context.Context, sku string) (*SKUResolution, error)
}

// ListRequest filters and orders the series list. Zero values match all.
type ListRequest struct {
	DoorType      DoorType
	MaterialID    string
	FinishID      string
	MinPriceCents int64
	MaxPriceCents int64
	InStockOnly   bool
	SortBy        string
	OrderBy       string
}

// SeriesSummary is the list/search projection of a series.
type SeriesSummary struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	DoorType      DoorType `json:"door_type"`
	FromCents     int64    `json:"from_cents"`
	InStock       bool     `json:"in_stock"`
	MaterialCount int      `json:"material_count"`
	FinishCount   int      `json:"finish_count"`
}

// Stats summarizes the loaded catalog.
type Stats struct {
	Version        string           `json:"version"`
	TotalSeries    int              `json:"total_series"`
	InStockSeries  int              `json:"in_stock_series"`
	MinPriceCents  int64            `json:"min_price_cents"`
	MaxPriceCents  int64            `json:"max_price_cents"`
	ByDoorType     map[DoorType]int `json:"by_door_type"`
	TotalMaterials int              `json:"total_materials"`
	TotalFinishes  int              `json:"total_finishes"`
}

// SKUResolution maps a previously generated SKU back to its series and a
// configure request that reproduces the same priced configuration.
type SKUResolution struct {
	SeriesID   string            `json:"series_id"`
	SeriesName string            `json:"series_name"`
	Request    ResolvedSelection `json:"request"`
}

// ResolvedSelection carries the option ids recovered from a SKU.
type ResolvedSelection struct {
	Dimensions  OpeningDimensions `json:"dimensions"`
	MaterialID  string            `json:"material_id"`
	FinishID    string            `json:"finish_id"`
	GlassID     string            `json:"glass_id,omitempty"`
	HardwareIDs []string          `json:"hardware_ids,omitempty"`
}
