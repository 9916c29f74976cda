// Command headless runs the farm without a window, with a seeded random
// source and a recording surface, and logs a summary. Two runs with the same
// seed and flags produce the same summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"go-tile-sandbox/internal/app"
	"go-tile-sandbox/internal/config"
	"go-tile-sandbox/internal/content/farm"
	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/event"
	"go-tile-sandbox/internal/grid"
	"go-tile-sandbox/pkg/render"
)

type options struct {
	configPath string
	frames     int
	seed       int64
	frameMs    int
	clickEvery int
}

type summary struct {
	Frames    int
	Virtual   time.Duration
	Resources map[string]float64
	Items     map[string]int
	Placed    int
	Destroyed int
	Bonuses   []string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML config file (default: built-in farm)")
	flag.IntVar(&o.frames, "frames", 3600, "frames to simulate")
	flag.Int64Var(&o.seed, "seed", 42, "random seed")
	flag.IntVar(&o.frameMs, "frame-ms", 16, "virtual milliseconds per frame")
	flag.IntVar(&o.clickEvery, "click-every", 60, "click the first wheat every N frames, 0 disables")
	flag.Parse()

	if o.frames <= 0 || o.frameMs <= 0 {
		fmt.Fprintln(os.Stderr, "error: -frames and -frame-ms must be > 0")
		os.Exit(2)
	}

	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := run(ctx, cfg, o, logger)
	if err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
	printSummary(os.Stdout, s, cfg)
}

func run(ctx context.Context, cfg config.Config, o options, logger *slog.Logger) (summary, error) {
	g, err := app.New(cfg, &render.RecorderBackend{}, nil, app.WithLogger(logger), app.WithSeed(o.seed))
	if err != nil {
		return summary{}, err
	}
	f, err := farm.Setup(g)
	if err != nil {
		return summary{}, err
	}

	s := summary{Items: map[string]int{}}
	g.Events.Subscribe(event.ItemPlaced, event.ListenerFunc(func(event.Event) { s.Placed++ }))
	g.Events.Subscribe(event.ItemDestroyed, event.ListenerFunc(func(event.Event) { s.Destroyed++ }))

	screen := render.NewRecorder(cfg.Screen.Width, cfg.Screen.Height)
	dt := time.Duration(o.frameMs) * time.Millisecond
	for i := 0; i < o.frames; i++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("run interrupted", "frame", i)
			break
		}
		var in app.Input
		if o.clickEvery > 0 && i%o.clickEvery == 0 {
			if x, y, ok := firstWheat(g.Grid); ok {
				in.MouseX, in.MouseY = g.Grid.CellCenter(x, y)
				in.Clicked = true
			}
		}
		screen.Reset()
		g.Frame(dt, in, screen)
	}

	s.Frames = g.Frames()
	s.Virtual = g.Now()
	s.Resources = g.Econ.Ledger().Snapshot()
	s.Bonuses = g.Econ.Bonuses()
	g.Grid.Each(func(c *grid.Cell) {
		if it := c.Item(); it != nil {
			s.Items[it.Kind()]++
		}
	})
	logger.Info("run finished",
		"frames", s.Frames,
		"virtual", s.Virtual,
		"wheats", f.Wheats,
		"aqueducts", f.Aqueducts)
	return s, nil
}

func firstWheat(gr *grid.Grid) (int, int, bool) {
	x, y, found := 0, 0, false
	gr.Each(func(c *grid.Cell) {
		if found || c.Item() == nil {
			return
		}
		if _, ok := c.Item().(*farm.Wheat); ok {
			x, y, found = c.X, c.Y, true
		}
	})
	return x, y, found
}

func printSummary(w io.Writer, s summary, cfg config.Config) {
	order := make([]string, 0, len(cfg.Resources))
	for _, r := range cfg.Resources {
		order = append(order, r.Name)
	}
	fmt.Fprintf(w, "=== Headless Farm Report ===\n")
	fmt.Fprintf(w, "frames=%d virtual=%s\n", s.Frames, s.Virtual)
	fmt.Fprintf(w, "resources: %s\n", economy.FormatCost(economy.Cost(s.Resources), order, nil, ""))

	kinds := make([]string, 0, len(s.Items))
	for k := range s.Items {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", k, s.Items[k])
	}
	fmt.Fprintf(w, "items: %s\n", strings.Join(parts, " "))
	fmt.Fprintf(w, "placed=%d destroyed=%d\n", s.Placed, s.Destroyed)
	if len(s.Bonuses) > 0 {
		fmt.Fprintf(w, "bonuses: %s\n", strings.Join(s.Bonuses, ", "))
	}
}
