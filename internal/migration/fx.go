package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/portal/internal/config"
	"github.com/smallbiznis/portal/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		// The embedded migrations are written for postgres. Other dialects
		// (sqlite in tests) create their schema through gorm AutoMigrate.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn, node)
		}
		return nil
	}),
)
