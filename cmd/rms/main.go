package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/TONNY-TED/Results-Management-System/internal/bootstrap"
	"github.com/TONNY-TED/Results-Management-System/internal/config"
	"github.com/TONNY-TED/Results-Management-System/internal/console"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
	"github.com/TONNY-TED/Results-Management-System/internal/server"
)

func main() {
	app := &cli.App{
		Name:  "rms",
		Usage: "student results, scheduling and fees",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"RMS_CONFIG"},
			},
		},
		Action: runMenu,
		Commands: []*cli.Command{
			{
				Name:   "menu",
				Usage:  "run the interactive menu (default)",
				Action: runMenu,
			},
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: runServer,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Action: runMigrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// runMenu logs to stderr so stdout stays with the menu
func runMenu(c *cli.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"), os.Stderr)
	if err != nil {
		return err
	}

	pool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer pool.Close()

	deps := bootstrap.BuildDependencies(cfg, pool, lgr)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return console.New(deps.Services, os.Stdin, os.Stdout).Run(ctx)
}

func runServer(c *cli.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"), os.Stdout)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize server")
		return err
	}
	if err := srv.Run(); err != nil {
		return err
	}

	lgr.Info().Msg("Application finished gracefully.")
	return nil
}

func runMigrate(c *cli.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"), os.Stdout)
	if err != nil {
		return err
	}

	pool, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer pool.Close()

	return bootstrap.RunMigrations(c.Context, cfg, pool, lgr)
}
