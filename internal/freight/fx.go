package freight

import (
	"go.uber.org/fx"

	"github.com/scaroll/pgclosets-core/internal/freight/service"
)

var Module = fx.Module("freight.service",
	fx.Provide(service.New),
)
