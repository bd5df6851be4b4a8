package build

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matheuskafuri/capalinks/internal/links"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a long string", 7, "this is..."},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := excerpt(tt.input, tt.n); got != tt.want {
			t.Errorf("excerpt(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestExcerptUTF8(t *testing.T) {
	got := excerpt("こんにちは世界", 5)
	if got != "こんにちは..." {
		t.Errorf("excerpt = %q", got)
	}
}

func TestDisplayDate(t *testing.T) {
	if got := displayDate(""); got != "unknown" {
		t.Errorf("empty: got %q", got)
	}
	if got := displayDate("not a date"); got != "not a date" {
		t.Errorf("unparseable: got %q", got)
	}
	got := displayDate("2024-06-15T12:00:00.000Z")
	if !strings.Contains(got, "2024") || !strings.Contains(got, "Jun") {
		t.Errorf("parsed: got %q", got)
	}
}

func TestReporterOptionalFields(t *testing.T) {
	var buf bytes.Buffer
	r := newReporter(&buf)
	r.links([]links.Link{
		{Title: "With extras", URL: "https://a", Description: strings.Repeat("x", 150), Image: "img.png", Logo: "logo.png"},
		{Title: "Bare", URL: "https://b"},
	}, false)

	s := buf.String()
	if strings.Count(s, "Image:") != 1 || strings.Count(s, "Logo:") != 1 {
		t.Errorf("image/logo should only print when present:\n%s", s)
	}
	if strings.Count(s, "Description:") != 1 {
		t.Errorf("description should only print when present:\n%s", s)
	}
	if !strings.Contains(s, strings.Repeat("x", 100)+"...") {
		t.Errorf("description should be cut at 100 characters:\n%s", s)
	}
	if strings.Count(s, "URL:") != 2 || strings.Count(s, "Host:") != 2 {
		t.Errorf("url and host always print:\n%s", s)
	}
}
