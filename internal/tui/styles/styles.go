package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	InkRed     = lipgloss.Color("#E5484D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
	Amber      = lipgloss.Color("#F59E0B")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(InkRed)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Bold(true)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(InkRed).
			Padding(0, 1)
)

// Panels
var (
	PanelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	TimerBarStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateDark).
			Padding(0, 1)
)

// Reading status indicator characters (unstyled)
const (
	ReadingChar   = "◐"
	CompletedChar = "✓"
	OnHoldChar    = "◌"
	DroppedChar   = "✗"
	PlannedChar   = "●"
)

// Reading status indicator styles
var (
	ReadingStyle   = lipgloss.NewStyle().Foreground(Blue)
	CompletedStyle = lipgloss.NewStyle().Foreground(Green)
	OnHoldStyle    = lipgloss.NewStyle().Foreground(Amber)
	DroppedStyle   = lipgloss.NewStyle().Foreground(Red)
	PlannedStyle   = lipgloss.NewStyle().Foreground(DimGray)
)
