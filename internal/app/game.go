// internal/app/game.go
package app

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"go-tile-sandbox/internal/config"
	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/event"
	"go-tile-sandbox/internal/grid"
	"go-tile-sandbox/internal/timer"
	"go-tile-sandbox/internal/ui"
	"go-tile-sandbox/internal/utils"
	"go-tile-sandbox/pkg/render"
)

// Option configures a Game at construction.
type Option func(*Game)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithSeed overrides the configured random seed.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.Rng = utils.NewPRNGService(seed) }
}

// Game holds one simulation session: the grid, the economy, the virtual clock
// and the overlay. It replaces any global state; content receives the Game it
// belongs to.
type Game struct {
	log    *slog.Logger
	cfg    config.Config
	clock  *timer.ManualClock
	Timers *timer.Service
	Events *event.Dispatcher
	Econ   *economy.Economy
	Grid   *grid.Grid
	Rng    *utils.PRNGService

	overlay    *ui.Overlay
	assets     render.Assets
	background color.RGBA
	glyphs     map[string]string

	menu       *ui.Menu
	menuOpen   bool
	menuPaused bool // the menu paused the game and must resume it
	selected   *grid.Blueprint

	mouseX, mouseY   float64
	screenW, screenH float64
	frames           int
}

// New builds a session from cfg. backend creates the grid canvas, assets
// resolves image names.
func New(cfg config.Config, backend render.Backend, assets render.Assets, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:        cfg,
		clock:      timer.NewManualClock(),
		Events:     event.NewDispatcher(),
		assets:     assets,
		background: render.RGB(cfg.Background),
		glyphs:     cfg.Glyphs(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	if g.Rng == nil {
		g.Rng = utils.NewPRNGService(cfg.Simulation.Seed)
	}
	if g.assets == nil {
		g.assets = render.StaticAssets{}
	}

	g.Timers = timer.NewService(g.clock, g.log.With("component", "timer"))

	resources := make([]economy.Resource, len(cfg.Resources))
	for i, r := range cfg.Resources {
		resources[i] = economy.Resource{Name: r.Name, Amount: r.Initial}
	}
	ledger, err := economy.NewLedger(resources, g.Events)
	if err != nil {
		return nil, fmt.Errorf("economy: %w", err)
	}
	g.Econ = economy.New(ledger, g.Timers, g.Events, g.log.With("component", "economy"))

	topo, ok := grid.TopologyByName(cfg.Grid.Topology)
	if !ok {
		return nil, fmt.Errorf("grid: unknown topology %q", cfg.Grid.Topology)
	}
	g.Grid, err = grid.New(grid.Config{
		Rows:     cfg.Grid.Rows,
		Cols:     cfg.Grid.Cols,
		CellSize: cfg.Grid.CellSize,
		MinScale: cfg.Grid.MinScale,
		MaxScale: cfg.Grid.MaxScale,
		Topology: topo,
		Terrain:  grid.Plain{Fill: render.RGB(cfg.Grid.Empty)},
	}, backend, g.assets, g.Events)
	if err != nil {
		return nil, err
	}
	g.screenW, g.screenH = float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	g.Grid.SetViewport(g.screenW, g.screenH)

	g.overlay = ui.NewOverlay(g.Timers, ledger, g.glyphs, cfg.MessageTimeout())

	g.log.Info("game created",
		"topology", topo.Name(),
		"cols", cfg.Grid.Cols,
		"rows", cfg.Grid.Rows,
		"seed", g.Rng.Seed())
	return g, nil
}

// Logger returns the session logger.
func (g *Game) Logger() *slog.Logger { return g.log }

// Config returns the configuration the session was built from.
func (g *Game) Config() config.Config { return g.cfg }

// Now returns the virtual time elapsed in the session.
func (g *Game) Now() time.Duration { return g.clock.Now() }

// Frames returns how many frames have run.
func (g *Game) Frames() int { return g.frames }

func (g *Game) Overlay() *ui.Overlay { return g.overlay }

// ShowMessage posts a timed message to the overlay.
func (g *Game) ShowMessage(text string) {
	g.overlay.ShowMessage(text)
	g.Events.Dispatch(event.Event{Type: event.MessagePosted, Data: event.Message{Text: text}})
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.Timers.Paused() }

// Pause freezes the timers and stops grid updates.
func (g *Game) Pause() {
	if g.Paused() {
		return
	}
	g.Timers.Pause()
	g.log.Info("paused", "at", g.clock.Now())
	g.Events.Dispatch(event.Event{Type: event.GamePaused})
}

// Resume undoes Pause.
func (g *Game) Resume() {
	if !g.Paused() {
		return
	}
	g.Timers.Resume()
	g.log.Info("resumed", "at", g.clock.Now())
	g.Events.Dispatch(event.Event{Type: event.GameResumed})
}

// TogglePause flips between paused and running.
func (g *Game) TogglePause() {
	if g.Paused() {
		g.Resume()
	} else {
		g.Pause()
	}
}
