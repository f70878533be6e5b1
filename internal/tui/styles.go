package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(1, 3)

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	monsterStyle = lipgloss.NewStyle().Foreground(colorRed)
	timerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	breakStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	statusStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	helpStyle    = lipgloss.NewStyle().Foreground(colorDim)
)
