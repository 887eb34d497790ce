package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	matrix "github.com/dora-dhcp/compat-matrix"
	"github.com/dora-dhcp/compat-matrix/exitcodes"
	"github.com/dora-dhcp/compat-matrix/flags"
)

var (
	Version   = "v0.3.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	// Optional .env file; absence is fine.
	_ = godotenv.Load()

	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "matrix-report"
	app.Usage = "Dora DHCP client compatibility matrix formatter"
	app.Description = "matrix-report merges per-backend client test results, renders reports and detects regressions against a baseline"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			// Input problems and test failures both exit 1; the exit
			// status tracks the absolute failure count, not the
			// regression delta.
			cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.Failure))
		}
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}

func run(ctx *cli.Context) error {
	log := newLogger(ctx.String(flags.LogLevel.Name))

	cfg, err := matrix.NewConfig(ctx, log)
	if err != nil {
		return matrix.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	return matrix.Run(cfg)
}

func newLogger(level string) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger.WithField("run_id", uuid.New().String())
}
