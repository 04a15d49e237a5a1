package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(storyCount int, panel string, width int, refreshing bool, hints string) string {
	left := fmt.Sprintf(" %d stories", storyCount)
	if panel != "" {
		left += " · " + panel
	}
	if refreshing {
		left += " (loading...)"
	}

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
