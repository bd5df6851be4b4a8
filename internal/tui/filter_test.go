package tui

import (
	"testing"

	"github.com/matheuskafuri/capalinks/internal/links"
)

func sampleLinks() []links.Link {
	return []links.Link{
		{ID: "1", Title: "Go memory model", Host: "go.dev", URL: "https://go.dev/ref/mem", Tags: []string{"golang"}},
		{ID: "2", Title: "Rust book", Host: "doc.rust-lang.org", Description: "The Rust programming language"},
		{ID: "3", Title: "Go blog", Host: "go.dev", URL: "https://go.dev/blog"},
		{ID: "4", Title: "Untitled", Host: ""},
	}
}

func ids(ls []links.Link) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterLinks(t *testing.T) {
	tests := []struct {
		name  string
		hosts []string
		query string
		want  []string
	}{
		{"no filters", nil, "", []string{"1", "2", "3", "4"}},
		{"host filter", []string{"go.dev"}, "", []string{"1", "3"}},
		{"search title", nil, "rust", []string{"2"}},
		{"search is case-insensitive", nil, "GO BLOG", []string{"3"}},
		{"search matches tags", nil, "golang", []string{"1"}},
		{"search matches description", nil, "programming", []string{"2"}},
		{"host and search", []string{"go.dev"}, "memory", []string{"1"}},
		{"no match", nil, "python", []string{}},
	}
	for _, tt := range tests {
		got := ids(filterLinks(sampleLinks(), tt.hosts, tt.query))
		if !equal(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTopHosts(t *testing.T) {
	got := topHosts(sampleLinks(), 5)
	want := []string{"go.dev", "doc.rust-lang.org"}
	if !equal(got, want) {
		t.Errorf("topHosts = %v, want %v", got, want)
	}

	if got := topHosts(sampleLinks(), 1); !equal(got, []string{"go.dev"}) {
		t.Errorf("topHosts limit = %v", got)
	}
}

func TestFilterBarToggle(t *testing.T) {
	f := newFilterBar([]string{"a.com", "b.com"})
	if f.activeHosts() != nil || f.activeLabel() != "All" {
		t.Fatalf("expected no active hosts initially")
	}

	f.toggle("b.com")
	if got := f.activeHosts(); !equal(got, []string{"b.com"}) {
		t.Errorf("active = %v, want [b.com]", got)
	}

	f.filterCursor = 0
	f.toggleCurrent()
	if got := f.activeHosts(); !equal(got, []string{"a.com", "b.com"}) {
		t.Errorf("active = %v, want [a.com b.com]", got)
	}

	f.toggle("a.com")
	f.toggle("b.com")
	if f.activeHosts() != nil {
		t.Errorf("expected all hosts after toggling off")
	}
}
