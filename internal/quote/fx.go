package quote

import (
	"go.uber.org/fx"

	"github.com/scaroll/pgclosets-core/internal/quote/repository"
	"github.com/scaroll/pgclosets-core/internal/quote/service"
)

var Module = fx.Module("quote.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
