package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/capalinks/internal/links"
)

func renderPreview(l *links.Link, width, height, scroll int) string {
	if l == nil {
		return lipglossCenter("Select a link", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(l.Title)

	meta := []string{}
	if l.Host != "" {
		meta = append(meta, previewHostStyle.Render(l.Host))
	}
	if t, ok := parseTimestamp(l.CreatedAt); ok {
		meta = append(meta, itemTimeStyle.Render("saved "+t.Format("Jan 2, 2006")))
	}
	if t, ok := parseTimestamp(l.LastUpdated); ok {
		meta = append(meta, itemTimeStyle.Render("updated "+t.Format("Jan 2, 2006")))
	}

	desc := l.Description
	if desc == "" {
		desc = "(No description available)"
	}
	body := previewBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))

	sections := []string{title, strings.Join(meta, itemTimeStyle.Render(" · ")), "", body, ""}
	if len(l.Tags) > 0 {
		sections = append(sections, tagStyle.Render("tags: "+strings.Join(l.Tags, ", ")))
	}
	if l.URL != "" {
		sections = append(sections, previewLinkStyle.Width(contentWidth).Render("Open: "+l.URL))
	}
	if l.Image != "" {
		sections = append(sections, previewLinkStyle.Width(contentWidth).Render("Image: "+l.Image))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
