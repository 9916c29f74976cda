// cmd/game/main.go
package main

import (
	"flag"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-tile-sandbox/internal/app"
	"go-tile-sandbox/internal/config"
	"go-tile-sandbox/internal/content/farm"
	"go-tile-sandbox/internal/state"
	"go-tile-sandbox/pkg/render"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
	maxDelta       float64
	width, height  int
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > a.maxDelta {
		deltaTime = a.maxDelta
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

func main() {
	configPath := flag.String("config", "", "YAML config file (default: built-in farm)")
	seed := flag.Int64("seed", 0, "random seed, 0 keeps the configured one")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	tr, err := render.NewTextRenderer(cfg.Font.Path, cfg.Font.Size)
	if err != nil {
		logger.Error("font", "err", err)
		os.Exit(1)
	}

	assets, err := render.LoadEbitenAssets(cfg.Images)
	if err != nil {
		logger.Warn("images missing, using placeholders", "err", err)
		names := make([]string, 0, len(cfg.Images))
		for name := range cfg.Images {
			names = append(names, name)
		}
		sort.Strings(names)
		assets = render.PlaceholderAssets(names, int(cfg.Grid.CellSize))
	}

	opts := []app.Option{app.WithLogger(logger)}
	if *seed != 0 {
		opts = append(opts, app.WithSeed(*seed))
	}
	game, err := app.New(cfg, &render.EbitenBackend{Text: tr}, assets, opts...)
	if err != nil {
		logger.Error("create game", "err", err)
		os.Exit(1)
	}
	if _, err := farm.Setup(game); err != nil {
		logger.Error("farm setup", "err", err)
		os.Exit(1)
	}

	sm := state.NewStateMachine()
	sm.SetState(state.NewGameState(sm, game, render.NewEbitenSurface(nil, tr)))

	a := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
		maxDelta:       cfg.Simulation.MaxDeltaTime,
		width:          cfg.Screen.Width,
		height:         cfg.Screen.Height,
	}
	if a.maxDelta <= 0 {
		a.maxDelta = config.MaxDeltaTime
	}
	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(a); err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
