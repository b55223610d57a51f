package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/server"
)

func newCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:   "deskshell",
		Usage:  "Backend for the DeskShell narrative desktop",
		Action: action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "HTTP port, overrides PORT",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen address, overrides HOST",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Development mode (colored debug logs)",
			},
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Load environment variables from this file before reading config",
				Sources: cli.EnvVars("DESKSHELL_ENV_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Optional TOML config file keyed by environment variable names",
				Sources: cli.EnvVars("DESKSHELL_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "storage",
				Usage: "Storage driver (memory or sqlite), overrides STORAGE_DRIVER",
			},
			&cli.StringFlag{
				Name:  "storage-path",
				Usage: "SQLite database file, overrides STORAGE_PATH",
			},
		},
	}
}

// loadConfig reads .env, the config file and the environment, then applies
// the flags that were given explicitly
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("env-file"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("port") {
		cfg.Server.Port = cmd.String("port")
	}
	if cmd.IsSet("host") {
		cfg.Server.Host = cmd.String("host")
	}
	if cmd.Bool("dev") {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if cmd.IsSet("storage") {
		cfg.Storage.Driver = cmd.String("storage")
	}
	if cmd.IsSet("storage-path") {
		cfg.Storage.Path = cmd.String("storage-path")
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := newCommand(run).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "deskshell:", err)
		os.Exit(1)
	}
}
