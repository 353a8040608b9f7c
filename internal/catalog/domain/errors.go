package domain

import "errors"

var (
	ErrSeriesNotFound    = errors.New("series_not_found")
	ErrSKUNotFound       = errors.New("sku_not_found")
	ErrInvalidSKU        = errors.New("invalid_sku")
	ErrEmptyCatalog      = errors.New("empty_catalog")
	ErrDuplicateSeries   = errors.New("duplicate_series")
	ErrUnknownCalcMethod = errors.New("unknown_calculation_method")
	ErrInvalidSeries     = errors.New("invalid_series")
)
