package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/portal/internal/client"
	"github.com/smallbiznis/portal/internal/clock"
	"github.com/smallbiznis/portal/internal/company"
	"github.com/smallbiznis/portal/internal/config"
	"github.com/smallbiznis/portal/internal/i18n"
	"github.com/smallbiznis/portal/internal/invoice"
	"github.com/smallbiznis/portal/internal/logger"
	"github.com/smallbiznis/portal/internal/migration"
	"github.com/smallbiznis/portal/internal/portal"
	"github.com/smallbiznis/portal/internal/server"
	"github.com/smallbiznis/portal/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		i18n.Module,
		migration.Module,

		// Functional domains
		company.Module,
		client.Module,
		invoice.Module,
		portal.Module,

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
