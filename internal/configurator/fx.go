package configurator

import (
	"github.com/scaroll/pgclosets-core/internal/configurator/service"
	"go.uber.org/fx"
)

var Module = fx.Module("configurator.service",
	fx.Provide(service.New),
)
