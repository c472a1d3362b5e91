package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/delaneyj/crosslink/cell"
	"github.com/delaneyj/crosslink/internal/config"
	"github.com/delaneyj/crosslink/typed"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func benchCommand(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	iters := int(cmd.Uint(iterationsKey))
	if iters == 0 {
		iters = cfg.Bench.Iterations
	}
	log.Info("warming up")
	if _, err := benchmarkChains(io.Discard, cfg.Bench.Widths, cfg.Bench.Heights, iters); err != nil {
		return err
	}
	rows, err := benchmarkChains(os.Stdout, cfg.Bench.Widths, cfg.Bench.Heights, iters)
	if err != nil {
		return err
	}
	log.Info("bench finished", zap.Int("shapes", rows))
	return nil
}

func addOne(v int) (int, error) {
	return v + 1, nil
}

func pass(int) error {
	return nil
}

// chain builds w parallel chains of h computed cells hanging off src, each
// ending in an effect.
func chain(sys *cell.System, src *cell.Cell, w, h int) error {
	for i := 0; i < w; i++ {
		last := src
		for j := 0; j < h; j++ {
			next, err := typed.Computed1(sys, "", last, addOne)
			if err != nil {
				return err
			}
			last = next
		}
		if _, err := typed.Effect1(sys, "", last, pass); err != nil {
			return err
		}
	}
	return nil
}

func benchmarkChains(out io.Writer, ww, hh []int, iters int) (int, error) {
	tbl := table.NewWriter()
	tbl.SetTitle("crosslink cells")
	tbl.SetOutputMirror(out)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			sys := cell.NewSystem()
			src, err := typed.Source(sys, "src", 1)
			if err != nil {
				return 0, err
			}
			if err := chain(sys, src, w, h); err != nil {
				return 0, err
			}

			for i := 0; i < iters; i++ {
				next := src.Value().(int) + 1
				start := time.Now()
				if err := sys.Put(src, next); err != nil {
					return 0, err
				}
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	return len(ww) * len(hh), nil
}
