package domain

import (
	"fmt"
	"sort"
)

// Catalog is the immutable, versioned product catalog loaded at startup.
// Services receive it by explicit injection; there is no package-level
// catalog state.
type Catalog struct {
	version string
	series  []ProductSeries
	byID    map[string]*ProductSeries
	byCode  map[string]*ProductSeries
}

// NewCatalog validates the series set and builds lookup indexes. Every
// option referenced by a series' pricing rule scope must exist in that
// series' option lists.
func NewCatalog(version string, series []ProductSeries) (*Catalog, error) {
	if len(series) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		version: version,
		series:  make([]ProductSeries, len(series)),
		byID:    make(map[string]*ProductSeries, len(series)),
		byCode:  make(map[string]*ProductSeries, len(series)),
	}
	copy(c.series, series)

	for i := range c.series {
		s := &c.series[i]
		if err := validateSeries(s); err != nil {
			return nil, err
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeries, s.ID)
		}
		c.byID[s.ID] = s
		c.byCode[s.Code] = s
	}

	return c, nil
}

// Version returns the catalog document version.
func (c *Catalog) Version() string { return c.version }

// Series returns all series in stable order. The slice is shared; callers
// must not mutate it.
func (c *Catalog) Series() []ProductSeries { return c.series }

// SeriesByID returns the series with the given id.
func (c *Catalog) SeriesByID(id string) (*ProductSeries, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// SeriesByCode returns the series with the given SKU series code.
func (c *Catalog) SeriesByCode(code string) (*ProductSeries, bool) {
	s, ok := c.byCode[code]
	return s, ok
}

func validateSeries(s *ProductSeries) error {
	if s.ID == "" || s.Code == "" || s.Name == "" {
		return fmt.Errorf("%w: missing identity on %q", ErrInvalidSeries, s.ID)
	}
	if s.BasePriceCents <= 0 {
		return fmt.Errorf("%w: %s has no base price", ErrInvalidSeries, s.ID)
	}
	r := s.Requirements
	if r.MinWidth <= 0 || r.MaxWidth < r.MinWidth || r.MinHeight <= 0 || r.MaxHeight < r.MinHeight {
		return fmt.Errorf("%w: %s has inverted opening requirements", ErrInvalidSeries, s.ID)
	}
	if len(s.Materials) == 0 || len(s.Finishes) == 0 {
		return fmt.Errorf("%w: %s needs at least one material and finish", ErrInvalidSeries, s.ID)
	}

	for _, rule := range s.Rules {
		for _, id := range rule.Scope.Materials {
			if _, ok := s.Material(id); !ok {
				return fmt.Errorf("%w: rule %s references unknown material %q", ErrInvalidSeries, rule.ID, id)
			}
		}
		for _, id := range rule.Scope.Finishes {
			if _, ok := s.Finish(id); !ok {
				return fmt.Errorf("%w: rule %s references unknown finish %q", ErrInvalidSeries, rule.ID, id)
			}
		}
		for _, id := range rule.Scope.Glass {
			if _, ok := s.GlassOption(id); !ok {
				return fmt.Errorf("%w: rule %s references unknown glass %q", ErrInvalidSeries, rule.ID, id)
			}
		}
	}

	// Priority ties get a stable order so pricing stays reproducible.
	sort.SliceStable(s.Rules, func(i, j int) bool {
		return s.Rules[i].Priority < s.Rules[j].Priority
	})

	return nil
}

// Source hands out the current catalog. The loader implements it with an
// atomically swapped document; tests use StaticSource.
type Source interface {
	Catalog() *Catalog
}

// StaticSource is a Source over a fixed catalog.
type StaticSource struct {
	catalog *Catalog
}

func NewStaticSource(c *Catalog) *StaticSource { return &StaticSource{catalog: c} }

func (s *StaticSource) Catalog() *Catalog { return s.catalog }
