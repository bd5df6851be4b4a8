package links

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewEnvelopeCount(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 890_000_000, time.UTC)
	env := NewEnvelope(ts, []Link{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	if env.Count != len(env.Links) || env.Count != 3 {
		t.Errorf("count = %d, links = %d, want 3/3", env.Count, len(env.Links))
	}
	if env.GeneratedAt != "2026-03-04T05:06:07.890Z" {
		t.Errorf("generatedAt = %q", env.GeneratedAt)
	}
	for _, l := range env.Links {
		if l.Tags == nil {
			t.Errorf("link %s: tags should default to empty slice", l.ID)
		}
	}
}

func TestNewEnvelopeEmpty(t *testing.T) {
	env := NewEnvelope(time.Now(), nil)
	if env.Count != 0 {
		t.Errorf("count = %d, want 0", env.Count)
	}

	data, err := env.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"links": []`) {
		t.Errorf("expected empty links array, got:\n%s", data)
	}
}

func TestMarshalFormatting(t *testing.T) {
	env := NewEnvelope(time.Now(), []Link{{ID: "a", Title: "Q&A <live>", URL: "https://example.com/?a=1&b=2"}})
	data, err := env.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)

	if !strings.Contains(s, "\n  \"count\": 1,") {
		t.Errorf("expected two-space indentation, got:\n%s", s)
	}
	if !strings.Contains(s, `"Q&A <live>"`) || !strings.Contains(s, "a=1&b=2") {
		t.Errorf("expected HTML characters to be left unescaped, got:\n%s", s)
	}
	if !strings.Contains(s, `"tags": []`) {
		t.Errorf("expected empty tags array, got:\n%s", s)
	}
	if !strings.HasSuffix(s, "}\n") {
		t.Errorf("expected trailing newline")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "public", "links.json")

	env := NewEnvelope(time.Now(), []Link{
		{ID: "1", Title: "One", URL: "https://one.example", Tags: []string{"x"}},
		{ID: "2", Title: "Two", URL: "https://two.example"},
	})
	if err := Save(path, env); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Count != 2 || len(got.Links) != 2 {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	if got.Links[0].Tags[0] != "x" || got.Links[1].Title != "Two" {
		t.Errorf("unexpected links: %+v", got.Links)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only links.json in output dir, got %d entries", len(entries))
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.json")

	if err := Save(path, NewEnvelope(time.Now(), []Link{{ID: "old"}, {ID: "older"}})); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := Save(path, NewEnvelope(time.Now(), []Link{{ID: "new"}})); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Count != 1 || got.Links[0].ID != "new" {
		t.Errorf("expected overwritten file, got %+v", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
