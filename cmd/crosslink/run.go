package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/crosslink/cell"
	"github.com/delaneyj/crosslink/eventloop"
	"github.com/delaneyj/crosslink/hclgraph"
	"github.com/urfave/cli/v3"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func runCommand(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	path := cmd.Args().First()
	if path == "" {
		return errors.New("usage: crosslink run <graph.hcl>")
	}
	g, err := hclgraph.Load(path)
	if err != nil {
		return err
	}
	return runGraph(ctx, log, g, os.Stdout, cmd.String(dotKey))
}

// runGraph wires g on an event loop, performs its writes and keeps the loop
// alive until every delay block has had a chance to fire.
func runGraph(ctx context.Context, log *zap.Logger, g *hclgraph.Graph, out io.Writer, dot string) error {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := eventloop.New(log)
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return loop.Run(egctx)
	})

	sys := cell.NewSystem(cell.WithLogger(log))
	var built *hclgraph.Built
	err := loop.Do(egctx, func() error {
		var err error
		built, err = hclgraph.Build(sys, g,
			hclgraph.WithSink(printSink(out)),
			hclgraph.WithScheduler(loop),
		)
		if err != nil {
			return err
		}
		log.Info("graph wired", zap.Int("cells", len(built.Cells())))
		return built.Apply()
	})
	if err != nil {
		cancel()
		eg.Wait()
		return err
	}

	settle := settleTime(g)
	eg.Go(func() error {
		defer cancel()
		select {
		case <-time.After(settle):
		case <-egctx.Done():
			return nil
		}
		if dot == "" {
			return nil
		}
		return loop.Do(egctx, func() error {
			return writeDOT(dot, out, built.Cells())
		})
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("graph settled",
		zap.Uint64("constructed", sys.Stats().TotalConstructed),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// settleTime bounds how long delayed writes can keep arriving: the worst case
// is every delay chained behind the previous one.
func settleTime(g *hclgraph.Graph) time.Duration {
	var total time.Duration
	for _, d := range g.Delays {
		after, err := time.ParseDuration(d.After)
		if err == nil {
			total += after
		}
	}
	if total > 0 {
		total += 10 * time.Millisecond
	}
	return total
}

func printSink(out io.Writer) hclgraph.OnSink {
	return func(name string, values []cty.Value) error {
		parts := make([]string, len(values))
		for i, v := range values {
			s, err := formatValue(v)
			if err != nil {
				return fmt.Errorf("sink %q: %w", name, err)
			}
			parts[i] = s
		}
		_, err := fmt.Fprintf(out, "%s: %s\n", name, strings.Join(parts, " "))
		return err
	}
}

func formatValue(v cty.Value) (string, error) {
	if v.IsNull() {
		return "null", nil
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeDOT(path string, stdout io.Writer, cells []*cell.Cell) error {
	if path == "-" {
		return cell.WriteDOT(stdout, cells...)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cell.WriteDOT(f, cells...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
