package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agiangrant/veneer"
	"github.com/agiangrant/veneer/retained"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Script is a scripted session: events and frames at fixed times.
type Script struct {
	Width  float32 `toml:"width" yaml:"width"`
	Height float32 `toml:"height" yaml:"height"`
	Theme  string  `toml:"theme" yaml:"theme"`
	Rows   int     `toml:"rows" yaml:"rows"`
	Steps  []Step  `toml:"steps" yaml:"steps"`
}

// Step is one scripted action. Do is one of frame, move, down, up, click,
// key, text, scroll or resize.
type Step struct {
	AtMS  int      `toml:"at_ms" yaml:"at_ms"`
	Do    string   `toml:"do" yaml:"do"`
	X     float32  `toml:"x" yaml:"x"`
	Y     float32  `toml:"y" yaml:"y"`
	Delta float32  `toml:"delta" yaml:"delta"`
	Key   string   `toml:"key" yaml:"key"`
	Mods  []string `toml:"mods" yaml:"mods"`
	Text  string   `toml:"text" yaml:"text"`
	Print bool     `toml:"print" yaml:"print"`
}

// ParseScript decodes a script by format ("toml", "yaml" or "yml").
func ParseScript(data []byte, format string) (Script, error) {
	s := Script{Width: 480, Height: 360, Theme: "light", Rows: 100}
	var err error
	switch strings.ToLower(format) {
	case "toml":
		err = toml.Unmarshal(data, &s)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &s)
	default:
		return Script{}, fmt.Errorf("unknown script format %q", format)
	}
	if err != nil {
		return Script{}, fmt.Errorf("failed to parse script: %w", err)
	}
	for i := 1; i < len(s.Steps); i++ {
		if s.Steps[i].AtMS < s.Steps[i-1].AtMS {
			return Script{}, fmt.Errorf("step %d: at_ms goes backwards", i)
		}
	}
	return s, nil
}

// Replay implements the 'veneer replay' command
func Replay(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	allFrames := fs.Bool("frames", false, "Print the commands of every frame")
	verbose := fs.Bool("v", false, "Log at debug level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: veneer replay [-frames] [-v] <script.yaml|script.toml>")
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	script, err := ParseScript(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return RunScript(script, out, *allFrames, logger, filepath.Dir(path))
}

// RunScript plays script against the demo app with a scripted clock.
func RunScript(script Script, out io.Writer, allFrames bool, logger *slog.Logger, themeDir string) error {
	cfg := veneer.DefaultAppConfig()
	cfg.Window.Width, cfg.Window.Height = script.Width, script.Height
	if script.Theme != "" {
		cfg.Theme = script.Theme
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	state := &demoState{Flavor: -1, Rows: script.Rows}
	app, err := veneer.NewApp(context.Background(), cfg, state, demoView,
		veneer.WithClock(func() time.Time { return now }),
		veneer.WithLogger(logger),
		veneer.WithPlatform(veneer.PlatformLinux),
		veneer.WithThemeDir(themeDir),
	)
	if err != nil {
		return err
	}
	defer app.Close()

	for i, step := range script.Steps {
		now = start.Add(time.Duration(step.AtMS) * time.Millisecond)
		if step.Do == "frame" {
			res := app.Frame()
			fmt.Fprintf(out, "frame %d t=%dms commands=%d animating=%t\n",
				app.Loop().Stats().FrameCount, step.AtMS, res.Commands.Len(), res.RequestRedraw)
			if allFrames || step.Print {
				io.WriteString(out, res.Commands.String())
			}
			res.Commands.Release()
			continue
		}
		events, err := step.events()
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		for _, e := range events {
			app.HandleEvent(e)
		}
	}

	fmt.Fprintf(out, "state count=%d on=%t volume=%g name=%q mode=%s flavor=%d clicked=%v\n",
		state.Count, state.On, state.Volume, state.Name, demoModes[state.Mode], state.Flavor, state.Clicked)
	return nil
}

func (s Step) events() ([]retained.Event, error) {
	switch s.Do {
	case "move":
		return []retained.Event{retained.PointerMoved(s.X, s.Y)}, nil
	case "down":
		return []retained.Event{retained.PointerDown(s.X, s.Y)}, nil
	case "up":
		return []retained.Event{retained.PointerUp(s.X, s.Y)}, nil
	case "click":
		return []retained.Event{retained.PointerDown(s.X, s.Y), retained.PointerUp(s.X, s.Y)}, nil
	case "scroll":
		return []retained.Event{retained.ScrollBy(s.X, s.Y, s.Delta)}, nil
	case "resize":
		return []retained.Event{retained.Resized(s.X, s.Y)}, nil
	case "text":
		return []retained.Event{retained.TextInput(s.Text)}, nil
	case "key":
		k, ok := retained.KeyByName(strings.ToLower(s.Key))
		if !ok {
			return nil, fmt.Errorf("unknown key %q", s.Key)
		}
		mods, err := parseMods(s.Mods)
		if err != nil {
			return nil, err
		}
		return []retained.Event{retained.KeyPressed(k, mods)}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", s.Do)
	}
}

func parseMods(names []string) (retained.Modifiers, error) {
	var m retained.Modifiers
	for _, n := range names {
		switch strings.ToLower(n) {
		case "shift":
			m |= retained.ModShift
		case "ctrl", "control":
			m |= retained.ModCtrl
		case "alt", "option":
			m |= retained.ModAlt
		case "super", "cmd", "command":
			m |= retained.ModSuper
		default:
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
	}
	return m, nil
}
