package report

import "github.com/charmbracelet/lipgloss"

// Terminal styles shared by the change line and the build summary.
// Lipgloss degrades colors based on terminal capabilities.
var (
	// StyleCyan is used for source paths and section headers.
	StyleCyan = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	// StyleMagenta is used for the stylesheet path.
	StyleMagenta = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	// StyleGreen is used for additions.
	StyleGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	// StyleRed is used for removals and failures.
	StyleRed = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	// StyleYellow is used for timings and warnings.
	StyleYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	// StyleGray is used for separators and hints.
	StyleGray = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	// StyleBold is used for headings.
	StyleBold = lipgloss.NewStyle().Bold(true)
)

// RenderStyle applies a lipgloss style to text when colors are enabled.
// When useColors is false, the text is returned unmodified.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
