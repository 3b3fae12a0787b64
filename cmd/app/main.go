package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/plazahub/plazadir/internal"
	"github.com/plazahub/plazadir/internal/directory"
	"github.com/plazahub/plazadir/internal/hours"
	"github.com/plazahub/plazadir/internal/mcpserver"
	"github.com/plazahub/plazadir/internal/plaza"
	"github.com/plazahub/plazadir/internal/storage"
	pkgconfig "github.com/plazahub/plazadir/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// serveMCP exposes the directory tools over MCP stdio. Logs go to stderr
// because stdout carries the protocol.
func serveMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := storage.NewFS(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	plazaSvc := plaza.NewService(store, plaza.Layout{
		PlazaFile:   cfg.Data.PlazaFile,
		IndexFile:   cfg.Data.IndexFile,
		BusinessDir: cfg.Data.BusinessDir,
	}, logger)
	if err := plazaSvc.Load(); err != nil {
		return fmt.Errorf("load plaza data: %w", err)
	}

	loc, err := cfg.Hours.Location()
	if err != nil {
		return fmt.Errorf("init hours: %w", err)
	}
	eval := hours.NewEvaluator(loc, cfg.Hours.WrapOvernight)

	return mcpserver.New(plazaSvc, directory.NewEngine(eval), eval).ServeStdio()
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "plazadir",
		Usage:  "Plaza business directory with hours evaluation, live place lookups, and an MCP interface",
		Action: serve,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve directory tools over MCP stdio",
				Action: serveMCP,
				Flags:  []cli.Flag{configFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
