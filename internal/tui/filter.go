package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/capalinks/internal/links"
)

const maxHostTabs = 9

type filterBar struct {
	hosts        []string
	active       map[string]bool
	filterMode   bool
	filterCursor int
}

func newFilterBar(hosts []string) filterBar {
	return filterBar{
		hosts:  hosts,
		active: make(map[string]bool),
	}
}

// topHosts returns the most frequent hosts, ties broken alphabetically.
func topHosts(ls []links.Link, n int) []string {
	counts := map[string]int{}
	for _, l := range ls {
		if l.Host != "" {
			counts[l.Host]++
		}
	}
	hosts := make([]string, 0, len(counts))
	for h := range counts {
		hosts = append(hosts, h)
	}
	sort.Slice(hosts, func(i, j int) bool {
		if counts[hosts[i]] != counts[hosts[j]] {
			return counts[hosts[i]] > counts[hosts[j]]
		}
		return hosts[i] < hosts[j]
	})
	if len(hosts) > n {
		hosts = hosts[:n]
	}
	return hosts
}

func (f *filterBar) toggle(host string) {
	if f.active[host] {
		delete(f.active, host)
	} else {
		f.active[host] = true
	}
}

func (f *filterBar) toggleCurrent() {
	if f.filterCursor < len(f.hosts) {
		f.toggle(f.hosts[f.filterCursor])
	}
}

func (f *filterBar) activeHosts() []string {
	if len(f.active) == 0 {
		return nil // nil = all hosts
	}
	var out []string
	for _, h := range f.hosts {
		if f.active[h] {
			out = append(out, h)
		}
	}
	return out
}

func (f *filterBar) activeLabel() string {
	active := f.activeHosts()
	if active == nil {
		return "All"
	}
	return strings.Join(active, ", ")
}

func (f *filterBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	if len(f.active) == 0 {
		parts = append(parts, tabActiveStyle.Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	for i, h := range f.hosts {
		style := tabInactiveStyle
		if f.active[h] {
			style = tabActiveStyle
		}
		label := h
		if f.filterMode && i == f.filterCursor {
			label = "[" + h + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Stop adding tabs once the row would overflow
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}

// filterLinks keeps links whose host is in hosts (nil = any) and that match
// every whitespace-separated term of query, case-insensitively.
func filterLinks(ls []links.Link, hosts []string, query string) []links.Link {
	terms := strings.Fields(strings.ToLower(query))
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		allowed[h] = true
	}

	out := make([]links.Link, 0, len(ls))
	for _, l := range ls {
		if len(allowed) > 0 && !allowed[l.Host] {
			continue
		}
		if matchesAll(l, terms) {
			out = append(out, l)
		}
	}
	return out
}

func matchesAll(l links.Link, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		l.Title, l.Host, l.URL, l.Description, strings.Join(l.Tags, " "),
	}, "\n"))
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
