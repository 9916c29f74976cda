// Command viewer-raylib runs the farm in a raylib window instead of ebiten.
package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"go-tile-sandbox/internal/app"
	"go-tile-sandbox/internal/config"
	"go-tile-sandbox/internal/content/farm"
	"go-tile-sandbox/pkg/render"
	"go-tile-sandbox/pkg/render/rlrender"
)

const dragThreshold = 5

func main() {
	configPath := flag.String("config", "", "YAML config file (default: built-in farm)")
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

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	font := rl.GetFontDefault()
	if cfg.Font.Path != "" {
		font = rl.LoadFontEx(cfg.Font.Path, int32(cfg.Font.Size), nil)
	}
	fontSize := float32(cfg.Font.Size)

	var assets render.Assets
	if loaded, err := rlrender.LoadAssets(cfg.Images); err != nil {
		logger.Warn("images missing, drawing flat cells", "err", err)
	} else {
		assets = loaded
	}

	game, err := app.New(cfg, &rlrender.Backend{Font: font, FontSize: fontSize}, assets, app.WithLogger(logger))
	if err != nil {
		logger.Error("create game", "err", err)
		os.Exit(1)
	}
	if _, err := farm.Setup(game); err != nil {
		logger.Error("farm setup", "err", err)
		os.Exit(1)
	}

	maxDelta := cfg.Simulation.MaxDeltaTime
	if maxDelta <= 0 {
		maxDelta = config.MaxDeltaTime
	}
	var (
		pressX, pressY float32
		dragging       bool
		last           rl.Vector2
	)
	for !rl.WindowShouldClose() {
		dt := math.Min(float64(rl.GetFrameTime()), maxDelta)

		switch {
		case rl.IsKeyPressed(rl.KeyP):
			if !game.MenuOpen() {
				game.TogglePause()
			}
		case rl.IsKeyPressed(rl.KeyM):
			if game.MenuOpen() {
				game.CloseMenu()
			} else {
				game.OpenMenu()
			}
		case rl.IsKeyPressed(rl.KeyEscape):
			game.CloseMenu()
			game.ClearSelection()
		}

		mouse := rl.GetMousePosition()
		in := app.Input{
			MouseX: float64(mouse.X),
			MouseY: float64(mouse.Y),
			Moved:  mouse != last,
			Wheel:  float64(rl.GetMouseWheelMove()),
		}
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			pressX, pressY, dragging = mouse.X, mouse.Y, false
		}
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			if !dragging && math.Hypot(float64(mouse.X-pressX), float64(mouse.Y-pressY)) > dragThreshold {
				dragging = true
				in.DragDX, in.DragDY = float64(mouse.X-pressX), float64(mouse.Y-pressY)
			} else if dragging {
				in.DragDX, in.DragDY = float64(mouse.X-last.X), float64(mouse.Y-last.Y)
			}
		}
		if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
			in.Clicked = !dragging
			dragging = false
		}
		last = mouse

		rl.BeginDrawing()
		screen := rlrender.NewScreen(font, fontSize)
		game.Frame(time.Duration(dt*float64(time.Second)), in, screen)
		if game.Paused() && !game.MenuOpen() {
			w, h := screen.Size()
			screen.FillRect(0, 0, float64(w), float64(h), rl.NewColor(0, 0, 0, 128))
			tw, th := screen.MeasureText("PAUSED")
			screen.DrawText("PAUSED", (float64(w)-tw)/2, (float64(h)-th)/2, rl.White)
		}
		rl.EndDrawing()
	}
}
