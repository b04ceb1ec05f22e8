package diag

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorTokenizer  = lipgloss.Color("39")  // blue
	colorTree       = lipgloss.Color("214") // amber
	colorCSS        = lipgloss.Color("141") // violet
	colorPosition   = lipgloss.Color("244") // grey
)

var kindStyles = map[Kind]lipgloss.Style{
	TokenizerError:        lipgloss.NewStyle().Foreground(colorTokenizer).Bold(true),
	TreeConstructionError: lipgloss.NewStyle().Foreground(colorTree).Bold(true),
	CSSSyntaxError:        lipgloss.NewStyle().Foreground(colorCSS).Bold(true),
}

var positionStyle = lipgloss.NewStyle().Foreground(colorPosition)

// stderrSink writes ANSI-colored diagnostics to an io-like target,
// gated by an on/off switch so a disabled logging env var produces no
// output at all rather than merely suppressing color.
type stderrSink struct {
	enabled bool
}

// NewStderr returns a Sink that writes colored diagnostics to os.Stderr
// when enabled is true, and does nothing when it is false. Callers
// typically compute enabled from an environment variable
// (TOKENIZER_LOGGING or CSS_TOKENIZER_LOGGING) at startup.
func NewStderr(enabled bool) Sink {
	return &stderrSink{enabled: enabled}
}

func (s *stderrSink) Report(e Error) {
	if !s.enabled {
		return
	}
	style, ok := kindStyles[e.Kind]
	if !ok {
		style = lipgloss.NewStyle()
	}
	label := style.Render(fmt.Sprintf("[%s]", e.Kind))
	if e.Line == 0 {
		fmt.Fprintf(os.Stderr, "%s %s\n", label, e.Message)
		return
	}
	pos := positionStyle.Render(fmt.Sprintf("%d:%d", e.Line, e.Col))
	fmt.Fprintf(os.Stderr, "%s %s %s\n", label, pos, e.Message)
}
