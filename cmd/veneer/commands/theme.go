package commands

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/agiangrant/veneer/retained"
	"github.com/agiangrant/veneer/theme"
)

// Theme implements the 'veneer theme' command. With no file it prints the
// built-in theme named by -builtin.
func Theme(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("theme", flag.ContinueOnError)
	builtin := fs.String("builtin", "light", "Built-in theme to print when no file is given")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		th  theme.Theme
		err error
	)
	if fs.NArg() > 0 {
		th, err = theme.Load(fs.Arg(0))
		if err != nil {
			return err
		}
	} else {
		var ok bool
		if th, ok = theme.Builtin(*builtin); !ok {
			return fmt.Errorf("unknown built-in theme %q", *builtin)
		}
	}

	style, err := th.Style()
	if err != nil {
		return err
	}
	timing, err := th.Timing()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "theme\t%s\n", th.Name)
	for _, c := range []struct {
		name  string
		color retained.Color
	}{
		{"background", style.Background},
		{"surface", style.Surface},
		{"surface_hover", style.SurfaceHover},
		{"surface_pressed", style.SurfacePressed},
		{"accent", style.Accent},
		{"accent_hover", style.AccentHover},
		{"on_accent", style.OnAccent},
		{"text", style.Text},
		{"text_muted", style.TextMuted},
		{"border", style.Border},
		{"caret", style.Caret},
		{"selection", style.Selection},
	} {
		fmt.Fprintf(tw, "%s\t#%08x\n", c.name, uint32(c.color))
	}
	fmt.Fprintf(tw, "font_size\t%g\n", style.FontSize)
	fmt.Fprintf(tw, "radius\t%g\n", style.Radius)
	fmt.Fprintf(tw, "control_height\t%g\n", style.ControlHeight)
	fmt.Fprintf(tw, "transition\t%v delay %v\n", timing.Duration, timing.Delay)
	return tw.Flush()
}
