package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"chosenoffset.com/fabricof/internal/audio"
	"chosenoffset.com/fabricof/internal/config"
	"chosenoffset.com/fabricof/internal/core/viewport"
	"chosenoffset.com/fabricof/internal/game"
	"chosenoffset.com/fabricof/internal/glyph"
	"chosenoffset.com/fabricof/internal/render"
	ebitenrender "chosenoffset.com/fabricof/internal/render/ebiten"
	"chosenoffset.com/fabricof/internal/render/terminal"
	"chosenoffset.com/fabricof/internal/scene"
	"chosenoffset.com/fabricof/internal/settings"
)

// backend bundles the collaborators one presentation layer provides.
type backend struct {
	window render.Window
	input  render.InputSource
	engine render.Engine
	glyphs render.GlyphRasterizer
	close  func()
}

func main() {
	// Command-line flags
	configPath := flag.String("config", "fabricof.yaml", "Config file (missing file uses defaults)")
	scenePath := flag.String("scene", "", "Scene file (default: built-in scene)")
	backendName := flag.String("backend", "", "Presentation backend: ebiten or terminal")
	logPath := flag.String("log", "", "Log file (terminal backend discards logs when empty)")
	flag.Parse()

	if err := run(*configPath, *scenePath, *backendName, *logPath); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

// run owns every resource opened for the session and releases them before
// returning, so main can exit non-zero without skipping cleanup.
func run(configPath, scenePath, backendName, logPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if backendName != "" {
		cfg.Backend = backendName
	}
	if scenePath != "" {
		cfg.ScenePath = scenePath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			log.SetOutput(os.Stderr)
			f.Close()
		}()
		log.SetOutput(f)
	} else if cfg.Backend == config.BackendTerminal {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	sc, err := scene.Load(cfg.ScenePath)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}
	log.Printf("Loaded scene: %s (%d landscape rows, %d dialogue entries)",
		sc.Name, sc.Landscape.Height(), len(sc.Dialogue))

	prefs := settings.Open(cfg.SettingsApp, settings.Display{SizeIndex: cfg.Window.SizeIndex})

	b, err := newBackend(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend, err)
	}

	chime := newChime(cfg)
	defer chime.Close()

	g := game.New(game.Options{
		Config:    cfg,
		Scene:     sc,
		Display:   prefs.Display(),
		Window:    b.window,
		Input:     b.input,
		Glyphs:    b.glyphs,
		Chime:     chime,
		Clipboard: game.SystemClipboard{},
	})

	log.Println("Starting game...")
	runErr := b.engine.RunGame(g)
	b.close()

	prefs.SetDisplay(g.Display())
	if err := prefs.Save(); err != nil {
		log.Printf("Warning: failed to save settings: %v", err)
	}

	return runErr
}

func newBackend(cfg *config.Config) (*backend, error) {
	if cfg.Backend == config.BackendTerminal {
		term, err := terminal.Open()
		if err != nil {
			return nil, err
		}
		return &backend{
			window: term,
			input:  term,
			engine: term,
			glyphs: terminal.GlyphRasterizer{},
			close:  term.Close,
		}, nil
	}

	face, err := glyph.Load(cfg.Font.Path, cfg.Font.Size, viewport.CellWidth, viewport.CellHeight)
	if err != nil {
		return nil, err
	}
	return &backend{
		window: ebitenrender.NewWindow(),
		input:  ebitenrender.NewInputSource(),
		engine: ebitenrender.NewEngine(60),
		glyphs: ebitenrender.NewGlyphRasterizer(face),
		close:  func() { face.Close() },
	}, nil
}

// newChime falls back to silence when audio is disabled or unavailable.
func newChime(cfg *config.Config) audio.Player {
	if !cfg.Audio.Enabled {
		return audio.Silent{}
	}
	chime, err := audio.NewChime(cfg.Audio.ToneHz, time.Duration(cfg.Audio.DurationMs)*time.Millisecond)
	if err != nil {
		log.Printf("Warning: audio unavailable: %v", err)
		return audio.Silent{}
	}
	return chime
}
