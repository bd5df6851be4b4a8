package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(shown, total int, filterLabel string, width int, searching bool) string {
	left := fmt.Sprintf(" %d links", shown)
	if shown != total {
		left = fmt.Sprintf(" %d of %d links", shown, total)
	}
	if filterLabel != "All" {
		left += " · " + filterLabel
	}

	right := " / search  f hosts  ? help  q quit "
	if searching {
		right = " esc cancel  enter search "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right
	return statusBarStyle.Width(width).Render(bar)
}
