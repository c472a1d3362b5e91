package main

import (
	"context"
	"fmt"
	"os"

	"github.com/delaneyj/crosslink/internal/config"
	"github.com/delaneyj/crosslink/internal/logging"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	logLevelKey   = "log-level"
	logFormatKey  = "log-format"
	dotKey        = "dot"
	iterationsKey = "iterations"
	repeatsKey    = "repeats"
	quickKey      = "quick"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd := &cli.Command{
		Name:  "crosslink",
		Usage: "Run and measure push based cell graphs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  logLevelKey,
				Usage: "debug, info, warn or error",
				Value: cfg.LogLevel,
			},
			&cli.StringFlag{
				Name:  logFormatKey,
				Usage: "console or json",
				Value: cfg.LogFormat,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Wire an HCL graph file and perform its writes",
				ArgsUsage: "<graph.hcl>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  dotKey,
						Usage: "Write the wired graph as Graphviz to this file, - for stdout",
					},
				},
				Action: runCommand,
			},
			{
				Name:  "bench",
				Usage: "Time single writes through width x height chains",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  iterationsKey,
						Usage: "Writes per graph shape, 0 uses CROSSLINK_BENCH_ITERATIONS",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return benchCommand(ctx, cmd, cfg)
				},
			},
			{
				Name:  "layers",
				Usage: "Run the layered graph suite and report update rates",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  repeatsKey,
						Usage: "Timed runs per configuration, the best one is reported",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  quickKey,
						Usage: "Divide every iteration count by 100",
					},
				},
				Action: layersCommand,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	return logging.New(cmd.String(logLevelKey), cmd.String(logFormatKey))
}
