package build

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/capalinks/internal/links"
)

const descriptionExcerpt = 100

type reporter struct {
	w      io.Writer
	banner lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
	ok     lipgloss.Style
	dim    lipgloss.Style
}

func newReporter(w io.Writer) *reporter {
	r := lipgloss.NewRenderer(w)
	return &reporter{
		w:      w,
		banner: r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}),
		title:  r.NewStyle().Bold(true),
		label:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}),
		ok:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}),
		dim:    r.NewStyle().Faint(true),
	}
}

func (r *reporter) entriesCount(n int) {
	fmt.Fprintf(r.w, "Database has %d cached entries\n\n", n)
}

func (r *reporter) noEntries() {
	fmt.Fprintln(r.w, "No entries found in database")
}

func (r *reporter) links(ls []links.Link, quiet bool) {
	rule := strings.Repeat("═", 63)
	fmt.Fprintln(r.w, r.banner.Render(rule))
	fmt.Fprintln(r.w, r.banner.Render(fmt.Sprintf("EXTRACTED LINKS (%d total)", len(ls))))
	fmt.Fprintln(r.w, r.banner.Render(rule))
	fmt.Fprintln(r.w)
	if quiet {
		return
	}

	for i, l := range ls {
		fmt.Fprintf(r.w, "%d. %s\n", i+1, r.title.Render(l.Title))
		r.field("URL", l.URL)
		r.field("Host", l.Host)
		if l.Description != "" {
			r.field("Description", excerpt(l.Description, descriptionExcerpt))
		}
		if l.Image != "" {
			r.field("Image", l.Image)
		}
		if l.Logo != "" {
			r.field("Logo", l.Logo)
		}
		r.field("Created", displayDate(l.CreatedAt))
		r.field("Updated", displayDate(l.LastUpdated))
		fmt.Fprintln(r.w)
	}
}

func (r *reporter) field(name, value string) {
	fmt.Fprintf(r.w, "   %s %s\n", r.label.Render(name+":"), value)
}

func (r *reporter) saved(count int, path string, at time.Time) {
	fmt.Fprintf(r.w, "\n%s\n", r.ok.Render(fmt.Sprintf("✓ Successfully saved %d links to %s", count, path)))
	fmt.Fprintf(r.w, "%s\n", r.ok.Render("✓ Generated at: "+at.Local().Format("Jan 2, 2006 15:04:05")))
}

// excerpt keeps the first n runes of s, marking the cut with "...".
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func displayDate(raw string) string {
	if raw == "" {
		return "unknown"
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Local().Format("Jan 2, 2006")
}
