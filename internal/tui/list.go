package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/capalinks/internal/links"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// parseTimestamp reads the ISO timestamps Capacities stores on components.
func parseTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func renderListItem(l links.Link, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(l.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(l.Title, width-4))
	}

	host := l.Host
	if host == "" {
		host = "—"
	}
	meta := "  " + itemHostStyle.Render(truncateStr(host, width-12))
	if t, ok := parseTimestamp(l.CreatedAt); ok {
		meta += " " + itemTimeStyle.Render("· "+relativeTime(t))
	}

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// visibleRange returns the window [start, end) of items that keeps cursor on
// screen when only `visible` items fit.
func visibleRange(total, cursor, visible int) (int, int) {
	if visible < 1 {
		visible = 1
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > total {
		end = total
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func renderList(ls []links.Link, cursor int, height int, width int) string {
	if len(ls) == 0 {
		return lipglossCenter("No links found", width, height)
	}

	// Each item is 2 lines + 1 blank line
	start, end := visibleRange(len(ls), cursor, height/3)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(ls[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
