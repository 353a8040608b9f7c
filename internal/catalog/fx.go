package catalog

import (
	"go.uber.org/fx"

	"github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/catalog/loader"
	"github.com/scaroll/pgclosets-core/internal/catalog/service"
)

var Module = fx.Module("catalog.service",
	fx.Provide(loader.New),
	fx.Provide(func(l *loader.Loader) domain.Source { return l }),
	fx.Provide(service.New),
)
