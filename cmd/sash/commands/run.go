package commands

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bryanchriswhite/sash/internal/app"
	"github.com/bryanchriswhite/sash/internal/config"
	"github.com/bryanchriswhite/sash/internal/drawing"
	"github.com/bryanchriswhite/sash/internal/event"
	"github.com/bryanchriswhite/sash/internal/logger"
	"github.com/bryanchriswhite/sash/internal/window"
	"github.com/bryanchriswhite/sash/internal/window/sdl"
	"github.com/bryanchriswhite/sash/internal/window/x11"
)

const (
	frameInterval = 16 * time.Millisecond
	maxClickMarks = 8
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a window and run the interactive demo loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		logger.Init(cfg.LogLevel, cfg.LogPretty)
		return runDemo(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func initBackend(name string) (app.System, error) {
	switch name {
	case "x11":
		return x11.Init()
	case "sdl":
		return sdl.Init()
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// clickMark is one recent click, drawn as a fading ring.
type clickMark struct {
	pos    event.Point
	button event.MouseButton
	at     time.Time
}

// demoState is everything the scene renders from.
type demoState struct {
	cursor  event.Point
	inside  bool
	clicks  []clickMark
	lastKey uint32
	status  string
}

func runDemo(cfg *config.Config) error {
	log := logger.WithComponent("demo")

	sys, err := initBackend(cfg.Backend)
	if err != nil {
		return err
	}
	defer func() {
		if err := sys.Shutdown(); err != nil {
			log.Warn().Err(err).Msg("Backend shutdown failed")
		}
	}()

	font := drawing.FontConfig{Size: cfg.Font.Size}
	if cfg.Font.Path != "" {
		ttf, err := os.ReadFile(cfg.Font.Path)
		if err != nil {
			return fmt.Errorf("read font %s: %w", cfg.Font.Path, err)
		}
		font.TTF = ttf
	}

	a, err := app.New(sys, cfg.Window.Title, window.Dims{
		X:      cfg.Window.X,
		Y:      cfg.Window.Y,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	}, font)
	if err != nil {
		return err
	}

	var (
		state     demoState
		running   = true
		destroyed bool
	)
	state.status = "move the mouse, click, press keys"

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for running {
		err := a.PollEvents(func(ev event.WindowEvent) {
			switch ev := ev.(type) {
			case event.CloseRequested:
				log.Info().Msg("Close requested")
				running = false
			case event.CloseHappened:
				log.Info().Msg("Window destroyed")
				running = false
				destroyed = true
			case event.MouseMove:
				state.cursor = ev.Pos
			case event.MouseClick:
				if ev.State == event.Pressed {
					state.clicks = append(state.clicks, clickMark{
						pos:    ev.Pos,
						button: ev.Button,
						at:     time.Now(),
					})
					if len(state.clicks) > maxClickMarks {
						state.clicks = state.clicks[len(state.clicks)-maxClickMarks:]
					}
				}
				state.status = fmt.Sprintf("%s %s at (%.0f, %.0f)",
					ev.Button, ev.State, ev.Pos.X, ev.Pos.Y)
			case event.MouseEnter:
				state.inside = true
			case event.MouseExit:
				state.inside = false
			case event.Keyboard:
				if ev.State == event.Pressed {
					state.lastKey = ev.Keycode
					state.status = fmt.Sprintf("key %d pressed", ev.Keycode)
				}
			case event.ResizeHappened:
				state.status = fmt.Sprintf("resized to %.0fx%.0f", ev.Width, ev.Height)
			case event.Expose:
				// Redrawn every frame anyway.
			}
		})
		if err != nil {
			log.Error().Err(err).Msg("Event poll failed")
			running = false
		}

		if running {
			drawScene(a, &state)
			a.Present()
		}
		<-ticker.C
	}

	if destroyed {
		// The native window is already gone; only the drawer's own
		// resources are left to release.
		return a.Drawer().Close()
	}
	return a.Close()
}

func drawScene(a *app.App, state *demoState) {
	d := a.Drawer()
	w, h := a.FrameDims()

	d.SetSourceRGBA(0.10, 0.10, 0.12, 1)
	d.Clear()

	// Click rings, older marks thinner.
	now := time.Now()
	for _, mark := range state.clicks {
		age := now.Sub(mark.at).Seconds()
		alpha := math.Max(0.15, 1-age/4)
		switch mark.button {
		case event.Left:
			d.SetSourceRGBA(0.36, 0.68, 0.89, alpha)
		case event.Right:
			d.SetSourceRGBA(0.89, 0.47, 0.36, alpha)
		case event.Middle:
			d.SetSourceRGBA(0.56, 0.85, 0.49, alpha)
		}
		d.NewPath()
		d.Arc(mark.pos.X, mark.pos.Y, 12, 0, 2*math.Pi)
		d.SetLineWidth(2.5)
		d.Stroke()
	}

	// Crosshair following the cursor while it is inside the window.
	if state.inside {
		d.SetSourceRGBA(0.85, 0.85, 0.88, 0.9)
		d.SetLineWidth(1)
		d.NewPath()
		d.MoveTo(0, state.cursor.Y)
		d.LineTo(w, state.cursor.Y)
		d.NewSubPath()
		d.MoveTo(state.cursor.X, 0)
		d.LineTo(state.cursor.X, h)
		d.Stroke()
	}

	// HUD panel.
	ext := d.FontExtents()
	pad := 8.0
	lines := []string{
		fmt.Sprintf("cursor (%.0f, %.0f)", state.cursor.X, state.cursor.Y),
		state.status,
	}
	if state.lastKey != 0 {
		lines = append(lines, fmt.Sprintf("last key %d", state.lastKey))
	}
	panelH := float64(len(lines))*ext.Height + 2*pad

	d.NewPath()
	d.SetSourceRGBA(0, 0, 0, 0.55)
	d.Rect(0, 0, w, panelH)
	d.Fill()

	d.SetSourceRGBA(0.92, 0.92, 0.95, 1)
	for i, line := range lines {
		d.NewPath()
		d.MoveTo(pad, pad+ext.Ascent+float64(i)*ext.Height)
		d.DrawText(line)
	}

	d.Present()
}
