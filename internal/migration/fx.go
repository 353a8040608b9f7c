package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/scaroll/pgclosets-core/internal/config"
	quotedomain "github.com/scaroll/pgclosets-core/internal/quote/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// sqlite is the zero-setup path for local development; the SQL
		// migrations are written for postgres.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(&quotedomain.Quote{})
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
