package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/mcxross/sui/pkg/config"
	"github.com/mcxross/sui/pkg/tree"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - package and module names
	colorGreen  = lipgloss.Color("35")  // Green - success, function names
	colorYellow = lipgloss.Color("220") // Amber - type parameters, shared
	colorBlue   = lipgloss.Color("75")  // Light blue - keywords
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Tree Styling
// =============================================================================

// palette colors tree text by role.
type palette map[tree.Role]lipgloss.Style

// newPalette returns the tree palette bound to renderer r.
func newPalette(r *lipgloss.Renderer) palette {
	return palette{
		tree.RolePackageKeyword: r.NewStyle().Bold(true).Foreground(colorBlue),
		tree.RolePackageName:    r.NewStyle().Bold(true).Foreground(colorCyan),
		tree.RolePath:           r.NewStyle().Foreground(colorDim),
		tree.RoleModuleKeyword:  r.NewStyle().Foreground(colorBlue),
		tree.RoleModuleName:     r.NewStyle().Foreground(colorCyan),
		tree.RoleFunKeyword:     r.NewStyle().Foreground(colorBlue),
		tree.RoleFunctionName:   r.NewStyle().Foreground(colorGreen),
		tree.RoleTypeParam:      r.NewStyle().Foreground(colorYellow),
		tree.RoleParam:          r.NewStyle().Foreground(colorWhite),
		tree.RoleReturn:         r.NewStyle().Foreground(colorGray),
		tree.RoleDependency:     r.NewStyle().Foreground(colorCyan),
		tree.RoleAnnotation:     r.NewStyle().Foreground(colorGray),
		tree.RoleShared:         r.NewStyle().Italic(true).Foreground(colorYellow),
		tree.RolePlaceholder:    r.NewStyle().Italic(true).Foreground(colorDim),
	}
}

// Style implements tree.Styler.
func (p palette) Style(role tree.Role, text string) string {
	s, ok := p[role]
	if !ok || text == "" {
		return text
	}
	return s.Render(text)
}

// newStyler returns the palette with 256-color output forced on, or
// plain text when color is disabled.
func newStyler(color bool) tree.Styler {
	if !color {
		return tree.Plain{}
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	return newPalette(r)
}

// colorEnabled resolves a color mode. In auto mode color is used only when
// w is a terminal and NO_COLOR is unset.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// Status Output
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
)

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}
