package main

import (
	"context"
	"fmt"
	"go/format"
	"os"
	"time"

	"github.com/delaneyj/crosslink/cmd/codegen/templates"
	"github.com/delaneyj/crosslink/internal/logging"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	genericParamCountKey = "count"
	outputKey            = "out"
	logLevelKey          = "log-level"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate typed cell constructors",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Number of generic parameters to generate",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write the generated code to",
				Value: "cells.go",
			},
			&cli.StringFlag{
				Name:  logLevelKey,
				Usage: "debug, info, warn or error",
				Value: "info",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	log, err := logging.New(cmd.String(logLevelKey), "console")
	if err != nil {
		return err
	}
	defer log.Sync()

	start := time.Now()
	count := int(cmd.Uint(genericParamCountKey))
	if count < 1 || count > 32 {
		return fmt.Errorf("count must be between 1 and 32, got %d", count)
	}
	log.Info("codegen started", zap.Int("count", count))

	src, err := format.Source([]byte(templates.TypedGen(count)))
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}

	out := cmd.String(outputKey)
	if err := os.WriteFile(out, src, 0644); err != nil {
		return err
	}
	log.Info("codegen finished", zap.String("out", out), zap.Duration("took", time.Since(start)))
	return nil
}
