package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/config"
)

const validDocument = `{
  "version": "2026-08-01",
  "series": [
    {
      "id": "renin-continental",
      "code": "CONT",
      "name": "Continental Barn Door",
      "brand": "Renin",
      "door_type": "barn",
      "panel_count": 1,
      "base_price_cents": 89900,
      "opening_requirements": {
        "min_width": 24, "max_width": 96,
        "min_height": 60, "max_height": 120,
        "required_clearance": 4
      },
      "materials": [
        {"id": "mdf-core", "code": "MDF", "name": "MDF Core", "availability": "standard", "in_stock": true}
      ],
      "finishes": [
        {"id": "matte-white", "code": "MWH", "name": "Matte White", "availability": "standard", "in_stock": true},
        {"id": "espresso", "code": "ESP", "name": "Espresso", "modifier": {"cents": 4500}, "availability": "standard", "in_stock": true}
      ],
      "pricing_rules": [
        {
          "id": "oversize-width",
          "scope": {"min_width": 72},
          "calculation": {"method": "per-sqft", "per_sqft_cents": 250},
          "priority": 3
        }
      ],
      "package": {"weight_kg": 38, "length_cm": 220, "width_cm": 95, "height_cm": 8}
    }
  ]
}`

func writeCatalogFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestNew_LoadsDocument(t *testing.T) {
	l, err := New(config.Config{CatalogPath: writeCatalogFile(t, validDocument)}, zap.NewNop())
	require.NoError(t, err)

	catalog := l.Catalog()
	require.NotNil(t, catalog)
	assert.Equal(t, "2026-08-01", catalog.Version())

	s, ok := catalog.SeriesByID("renin-continental")
	require.True(t, ok)
	assert.Equal(t, "CONT", s.Code)
	assert.Equal(t, domain.DoorTypeBarn, s.DoorType)
	assert.Equal(t, int64(89900), s.BasePriceCents)
	assert.Equal(t, 4.0, s.Requirements.RequiredClearance)
	assert.Equal(t, 38.0, s.PackageWeightKg)
	// Slug falls back to the name when the document omits it.
	assert.Equal(t, "continental-barn-door", s.Slug)

	require.Len(t, s.Rules, 1)
	assert.Equal(t, domain.CalcPerSqFt, s.Rules[0].Calc.Method())

	espresso, ok := s.Finish("espresso")
	require.True(t, ok)
	assert.Equal(t, int64(4500), espresso.Modifier.FixedCents())
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(config.Config{CatalogPath: filepath.Join(t.TempDir(), "absent.json")}, zap.NewNop())
	assert.Error(t, err)
}

func TestNew_RejectsInvalidDocument(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"malformed json", `{"version": "v1", "series": [`},
		{"no series", `{"version": "v1", "series": []}`},
		{"unknown calculation method", `{
			"version": "v1",
			"series": [{
				"id": "a", "code": "AAA", "name": "A", "door_type": "barn",
				"base_price_cents": 1000,
				"opening_requirements": {"min_width": 24, "max_width": 96, "min_height": 60, "max_height": 120},
				"materials": [{"id": "m", "code": "M", "name": "M", "in_stock": true}],
				"finishes": [{"id": "f", "code": "F", "name": "F", "in_stock": true}],
				"pricing_rules": [{"id": "r", "calculation": {"method": "lunar"}}]
			}]
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(config.Config{CatalogPath: writeCatalogFile(t, tt.contents)}, zap.NewNop())
			assert.Error(t, err)
		})
	}
}
