package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, trimmed to what the panel draws with.
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorCrust    lipgloss.Color = "#11111b"
)

const (
	colorAccent  = colorMauve
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

const sidebarWidth = 22

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(1, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorSurface1)
	menuItemStyle   = lipgloss.NewStyle().Foreground(colorText).PaddingLeft(1)
	menuActiveStyle = lipgloss.NewStyle().Foreground(colorCrust).Background(colorAccent).Bold(true).PaddingLeft(1)
	menuHeaderStyle = lipgloss.NewStyle().Foreground(colorOverlay0).MarginTop(1)

	mainStyle = lipgloss.NewStyle().Padding(1, 2)

	statValueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	statCardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 2).
			MarginRight(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1).
			MarginRight(1).
			Width(26)
	priceStyle    = lipgloss.NewStyle().Foreground(colorPeach)
	inStockStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	noStockStyle  = lipgloss.NewStyle().Foreground(colorCrust).Background(colorError).Padding(0, 1)
	orderRefStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	fieldErrStyle = lipgloss.NewStyle().Foreground(colorError)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	toastSuccessStyle = lipgloss.NewStyle().Foreground(colorCrust).Background(colorSuccess).Padding(0, 1)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(colorCrust).Background(colorError).Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().Foreground(colorWarning)
	searchStyle  = lipgloss.NewStyle().Foreground(colorFocus)
	barStyle     = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorText).Padding(0, 1)
)
