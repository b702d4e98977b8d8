package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/internal/config"
	"github.com/pitchfork-audio/pitchfork/internal/logger"
	"github.com/pitchfork-audio/pitchfork/internal/migration"
	"github.com/pitchfork-audio/pitchfork/internal/server"
	"github.com/pitchfork-audio/pitchfork/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
