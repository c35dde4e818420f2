package main

import (
	"context"
	"os"

	"catalog-service/internal/infrastructure"

	"github.com/urfave/cli/v3"
)

func main() {
	logger := infrastructure.NewLogger(os.Stderr, os.Getenv("LOG_LEVEL"))

	app := &cli.Command{
		Name:           "catalog",
		Usage:          "Artwork catalog REST service",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(logger),
			indexesCommand(logger),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("application error", "err", err)
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a TOML configuration file",
		Sources: cli.EnvVars("CONFIG"),
	}
}
