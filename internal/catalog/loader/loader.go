package loader

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/gosimple/slug"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/config"
)

// Loader reads the versioned catalog JSON document and holds the parsed,
// immutable catalog. With CatalogWatch enabled, file edits swap in a fresh
// catalog atomically; a document that fails validation keeps the previous
// catalog serving.
type Loader struct {
	log     *zap.Logger
	v       *viper.Viper
	current atomic.Pointer[domain.Catalog]
}

// New reads the catalog file once and optionally starts watching it.
func New(cfg config.Config, log *zap.Logger) (*Loader, error) {
	l := &Loader{
		log: log.Named("catalog.loader"),
		v:   viper.New(),
	}

	l.v.SetConfigFile(cfg.CatalogPath)
	l.v.SetConfigType(strings.TrimPrefix(filepath.Ext(cfg.CatalogPath), "."))

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", cfg.CatalogPath, err)
	}

	catalog, err := l.parse()
	if err != nil {
		return nil, err
	}
	l.current.Store(catalog)

	l.log.Info("catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.String("version", catalog.Version()),
		zap.Int("series", len(catalog.Series())),
	)

	if cfg.CatalogWatch {
		l.v.OnConfigChange(func(e fsnotify.Event) { l.reload(e) })
		l.v.WatchConfig()
	}

	return l, nil
}

// Catalog returns the current immutable catalog.
func (l *Loader) Catalog() *domain.Catalog {
	return l.current.Load()
}

func (l *Loader) parse() (*domain.Catalog, error) {
	var doc document
	if err := l.v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	series := make([]domain.ProductSeries, 0, len(doc.Series))
	for _, sd := range doc.Series {
		s, err := sd.toDomain()
		if err != nil {
			return nil, err
		}
		if s.Slug == "" {
			s.Slug = slug.Make(s.Name)
		}
		series = append(series, s)
	}

	return domain.NewCatalog(doc.Version, series)
}

func (l *Loader) reload(e fsnotify.Event) {
	if err := l.v.ReadInConfig(); err != nil {
		l.log.Error("catalog reread failed, keeping previous version", zap.Error(err))
		return
	}
	catalog, err := l.parse()
	if err != nil {
		l.log.Error("catalog reload rejected, keeping previous version",
			zap.String("event", e.Name),
			zap.Error(err),
		)
		return
	}
	l.current.Store(catalog)
	l.log.Info("catalog reloaded",
		zap.String("version", catalog.Version()),
		zap.Int("series", len(catalog.Series())),
	)
}
