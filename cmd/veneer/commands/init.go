package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agiangrant/veneer"
)

// Init implements the 'veneer init' command
func Init(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	format := fs.String("format", "toml", "Config format: toml or yaml")
	title := fs.String("title", "", "Window title (default: directory name)")
	force := fs.Bool("force", false, "Overwrite an existing config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var name string
	switch *format {
	case "toml":
		name = "veneer.toml"
	case "yaml", "yml":
		name = "veneer.yaml"
	default:
		return fmt.Errorf("unknown format %q (want toml or yaml)", *format)
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}

	cfg := veneer.DefaultAppConfig()
	cfg.Window.Title = *title
	if cfg.Window.Title == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		cfg.Window.Title = filepath.Base(abs)
	}
	if err := veneer.SaveConfig(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s\n", path)
	return nil
}
