package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorRed      lipgloss.Color = "#f38ba8"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorCrust    lipgloss.Color = "#11111b"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorBrand     = colorPeach
	colorBrandAlt  = colorYellow
	colorUserBg    = colorBlue
	colorBotBg     = colorSurface0
	colorFocus     = colorLavender
	colorMuted     = colorOverlay0
	colorError     = colorRed
	colorPanelEdge = colorSurface1
)

// AllPaletteColors returns every palette color the widget uses.
func AllPaletteColors() []lipgloss.Color {
	return []lipgloss.Color{
		colorPeach, colorYellow, colorRed, colorBlue, colorLavender,
		colorText, colorSubtext0, colorOverlay0,
		colorSurface1, colorSurface0, colorBase, colorCrust,
	}
}

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

var (
	launcherStyle = lipgloss.NewStyle().
			Foreground(colorCrust).
			Background(colorBrand).
			Bold(true).
			Padding(0, 2)

	launcherHintStyle = lipgloss.NewStyle().Foreground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPanelEdge).
			Background(colorBase)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorCrust).
			Background(colorBrand).
			Bold(true).
			Padding(0, 1)

	headerCloseStyle = lipgloss.NewStyle().
				Foreground(colorCrust).
				Background(colorBrandAlt).
				Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(colorCrust).
			Background(colorUserBg).
			Padding(0, 1)

	botBubbleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBotBg).
			Padding(0, 1)

	errorBubbleStyle = botBubbleStyle.Foreground(colorError)

	typingStyle = lipgloss.NewStyle().Foreground(colorSubtext0).Italic(true)

	inputRowStyle = lipgloss.NewStyle().
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorPanelEdge)

	sendActiveStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	sendDisabledStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
