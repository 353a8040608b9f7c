package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/scaroll/pgclosets-core/internal/catalog"
	"github.com/scaroll/pgclosets-core/internal/clock"
	"github.com/scaroll/pgclosets-core/internal/config"
	"github.com/scaroll/pgclosets-core/internal/configurator"
	"github.com/scaroll/pgclosets-core/internal/freight"
	"github.com/scaroll/pgclosets-core/internal/migration"
	"github.com/scaroll/pgclosets-core/internal/observability"
	"github.com/scaroll/pgclosets-core/internal/quote"
	"github.com/scaroll/pgclosets-core/internal/ratelimit"
	"github.com/scaroll/pgclosets-core/internal/scheduler"
	"github.com/scaroll/pgclosets-core/internal/server"
	"github.com/scaroll/pgclosets-core/pkg/db"
	"github.com/scaroll/pgclosets-core/pkg/log"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		ratelimit.Module,
		scheduler.Module,

		// Functional domains
		catalog.Module,
		configurator.Module,
		freight.Module,
		quote.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
