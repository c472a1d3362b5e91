package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/crosslink/cell"
	"github.com/delaneyj/crosslink/typed"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

type layersConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int     // width of dependency graph to construct
	totalLayers    int     // depth of dependency graph to construct, sources included
	staticFraction float64 // fraction of nodes that always sum every input
	nSources       int     // number of inputs of each node
	readFraction   float64 // fraction of the last layer read after each write
	iterations     int64
}

var layerConfigs = []layersConfig{
	{
		name:           "simple component",
		width:          10,
		staticFraction: 1,
		nSources:       2,
		totalLayers:    5,
		readFraction:   0.2,
		iterations:     600000,
	},
	{
		name:           "dynamic component",
		width:          10,
		totalLayers:    10,
		staticFraction: 0.75,
		nSources:       6,
		readFraction:   0.2,
		iterations:     15000,
	},
	{
		name:           "large web app",
		width:          1000,
		totalLayers:    12,
		staticFraction: 0.95,
		nSources:       4,
		readFraction:   1,
		iterations:     7000,
	},
	{
		name:           "wide dense",
		width:          1000,
		totalLayers:    5,
		staticFraction: 1,
		nSources:       25,
		readFraction:   1,
		iterations:     3000,
	},
	{
		name:           "deep",
		width:          5,
		totalLayers:    500,
		staticFraction: 1,
		nSources:       3,
		readFraction:   1,
		iterations:     500,
	},
	{
		name:           "very dynamic",
		width:          100,
		totalLayers:    15,
		staticFraction: 0.5,
		nSources:       6,
		readFraction:   1,
		iterations:     2000,
	},
}

func layersCommand(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	repeats := int(cmd.Uint(repeatsKey))
	if repeats < 1 {
		repeats = 1
	}
	cfgs := layerConfigs
	if cmd.Bool(quickKey) {
		cfgs = make([]layersConfig, len(layerConfigs))
		for i, cfg := range layerConfigs {
			cfg.iterations = max(cfg.iterations/100, 1)
			cfgs[i] = cfg
		}
	}
	return benchmarkLayers(os.Stdout, log, cfgs, repeats)
}

type layersResult struct {
	sum      int
	count    int64
	duration time.Duration
}

func benchmarkLayers(out io.Writer, log *zap.Logger, cfgs []layersConfig, repeats int) error {
	table := tablewriter.NewWriter(out)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{
		"framework", "size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "title",
	})

	for _, cfg := range cfgs {
		log.Info("running config", zap.String("name", cfg.name))
		counter := new(int64)
		graph, err := makeLayeredGraph(cfg, counter)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.name, err)
		}

		// warm up
		if _, err := runLayeredGraph(graph, cfg); err != nil {
			return fmt.Errorf("%s: %w", cfg.name, err)
		}

		best := layersResult{duration: time.Hour}
		for i := 0; i < repeats; i++ {
			log.Debug("timed run", zap.String("name", cfg.name), zap.Int("run", i+1), zap.Int("of", repeats))
			*counter = 0
			start := time.Now()
			sum, err := runLayeredGraph(graph, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.name, err)
			}
			duration := time.Since(start)
			if duration < best.duration {
				best = layersResult{sum: sum, count: *counter, duration: duration}
			}
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		log.Debug("config finished",
			zap.String("name", cfg.name),
			zap.Int("sum", best.sum),
			zap.Int64("count", best.count),
		)

		table.Append([]string{
			"crosslink",
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(updateRate)),
			layersTitle(cfg),
		})
	}
	table.Render()
	return nil
}

func layersTitle(cfg layersConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type layeredGraph struct {
	sys     *cell.System
	sources []*cell.Cell
	layers  [][]*cell.Cell
}

func (g *layeredGraph) leaves() []*cell.Cell {
	if len(g.layers) == 0 {
		return g.sources
	}
	return g.layers[len(g.layers)-1]
}

func makeLayeredGraph(cfg layersConfig, counter *int64) (*layeredGraph, error) {
	if cfg.nSources > cell.MaxInputs {
		return nil, cell.ErrTooManyInputs
	}
	sys := cell.NewSystem()
	sources := make([]*cell.Cell, cfg.width)
	for i := range sources {
		src, err := typed.Source(sys, fmt.Sprintf("source %d", i), i)
		if err != nil {
			return nil, err
		}
		sources[i] = src
	}

	g := &layeredGraph{sys: sys, sources: sources}
	random := rand.New(rand.NewSource(0))
	prev := sources
	for l := 0; l < cfg.totalLayers-1; l++ {
		row, err := makeLayer(sys, prev, cfg, counter, random)
		if err != nil {
			return nil, err
		}
		g.layers = append(g.layers, row)
		prev = row
	}
	return g, nil
}

func makeLayer(sys *cell.System, prev []*cell.Cell, cfg layersConfig, counter *int64, random *rand.Rand) ([]*cell.Cell, error) {
	row := make([]*cell.Cell, len(prev))
	for myDex := range prev {
		inputs := make([]*cell.Cell, 0, cfg.nSources)
		for sourceDex := 0; sourceDex < cfg.nSources; sourceDex++ {
			inputs = append(inputs, prev[(myDex+sourceDex)%len(prev)])
		}

		calc := staticSum(counter)
		if random.Float64() >= cfg.staticFraction {
			calc = dynamicSum(counter)
		}
		c, err := sys.New("", inputs, calc, false)
		if err != nil {
			return nil, err
		}
		row[myDex] = c
	}
	return row, nil
}

func staticSum(counter *int64) cell.CalcFunc {
	return func(_ *cell.Cell, args []any) (any, error) {
		*counter++
		sum := 0
		for _, a := range args {
			sum += a.(int)
		}
		return sum, nil
	}
}

// dynamicSum skips one of its tail inputs whenever the first one is odd.
func dynamicSum(counter *int64) cell.CalcFunc {
	return func(_ *cell.Cell, args []any) (any, error) {
		*counter++
		sum := args[0].(int)
		tail := args[1:]
		if len(tail) == 0 {
			return sum, nil
		}
		shouldDrop := sum&0x1 > 0
		dropDex := sum % len(tail)
		for i, a := range tail {
			if shouldDrop && i == dropDex {
				continue
			}
			sum += a.(int)
		}
		return sum, nil
	}
}

// runLayeredGraph writes one source per iteration and returns the sum of the
// leaves that were read.
func runLayeredGraph(g *layeredGraph, cfg layersConfig) (int, error) {
	random := rand.New(rand.NewSource(0))
	leaves := g.leaves()
	skipCount := int(math.Round(float64(len(leaves)) * (1 - cfg.readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < int(cfg.iterations); i++ {
		sourceDex := i % len(g.sources)
		if err := g.sys.Put(g.sources[sourceDex], i+sourceDex); err != nil {
			return 0, err
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		v, _ := typed.Value[int](leaf)
		sum += v
	}
	return sum, nil
}

func removeElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}
