package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/mahjong-cli/internal/tiles"
)

// Styles contains all styling for the TUI
type Styles struct {
	// Pane styles
	LogPane     lipgloss.Style
	SidebarPane lipgloss.Style
	ActionPane  lipgloss.Style

	// Content styles
	Header   lipgloss.Style
	HandInfo lipgloss.Style
	Actions  lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Border accents
	Focused   lipgloss.Color
	Unfocused lipgloss.Color

	wan    lipgloss.Style
	tong   lipgloss.Style
	tiao   lipgloss.Style
	wind   lipgloss.Style
	dragon [3]lipgloss.Style
}

// NewStyles builds the style set, picking ink colors to suit the terminal
// background reported by termenv.
func NewStyles() *Styles {
	return newStyles(termenv.HasDarkBackground())
}

func newStyles(darkBackground bool) *Styles {
	ink := lipgloss.Color("#1A1A2E")
	white := lipgloss.Color("#FAFAFA")
	if darkBackground {
		ink = white
	}

	s := &Styles{
		Focused:   lipgloss.Color("#04B575"),
		Unfocused: lipgloss.Color("#626262"),

		Header: lipgloss.NewStyle().
			Foreground(white).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		HandInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Actions: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),

		wan: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		tong: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true),
		tiao: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		wind: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81ECEC")).
			Bold(true),
	}

	s.dragon = [3]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true), // Red
		lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894")).Bold(true), // Green
		lipgloss.NewStyle().Foreground(ink).Bold(true),                       // White
	}

	s.LogPane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Unfocused)
	s.SidebarPane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Unfocused)
	s.ActionPane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Focused)

	return s
}

// Tile returns the style for one tile label, colored by suit
func (s *Styles) Tile(k tiles.Kind) lipgloss.Style {
	switch k.Suit {
	case tiles.Wan:
		return s.wan
	case tiles.Tong:
		return s.tong
	case tiles.Tiao:
		return s.tiao
	case tiles.Wind:
		return s.wind
	case tiles.Dragon:
		if k.Value >= 1 && k.Value <= 3 {
			return s.dragon[k.Value-1]
		}
	}
	return s.Info
}
