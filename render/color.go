package render

import (
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"
)

// ColorMode controls when ANSI colors are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // colors on terminals unless NO_COLOR is set
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode converts "auto", "always" or "never" into ColorMode.
func ParseColorMode(s string) (ColorMode, bool) {
	switch s {
	case "auto", "":
		return ColorAuto, true
	case "always":
		return ColorAlways, true
	case "never":
		return ColorNever, true
	default:
		return ColorAuto, false
	}
}

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

func newAurora(mode ColorMode, w io.Writer) aurora.Aurora {
	switch mode {
	case ColorAlways:
		return aurora.NewAurora(true)
	case ColorNever:
		return aurora.NewAurora(false)
	}
	if os.Getenv("NO_COLOR") != "" {
		return aurora.NewAurora(false)
	}
	f, ok := w.(*os.File)
	if !ok {
		return aurora.NewAurora(false)
	}
	fd := f.Fd()
	return aurora.NewAurora(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}
