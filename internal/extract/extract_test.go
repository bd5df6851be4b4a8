package extract

import (
	"encoding/json"
	"testing"

	"github.com/matheuskafuri/capalinks/internal/capacities"
)

func component(t *testing.T, raw string) capacities.Component {
	t.Helper()
	var c capacities.Component
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal component: %v", err)
	}
	return c
}

func TestLinksSkipsOtherTypes(t *testing.T) {
	comps := []capacities.Component{
		{ID: "1", Type: "RootDatabase"},
		{ID: "2", Type: "MediaImage"},
		{ID: "3", Type: "mediawebresource"},
	}
	if got := Links(comps); len(got) != 0 {
		t.Errorf("expected no links, got %d", len(got))
	}
}

func TestLinksPreservesOrder(t *testing.T) {
	comps := []capacities.Component{
		{ID: "X", Type: capacities.WebResourceType},
		{ID: "Y", Type: "RootPage"},
		{ID: "Z", Type: capacities.WebResourceType},
	}
	got := Links(comps)
	if len(got) != 2 {
		t.Fatalf("expected 2 links, got %d", len(got))
	}
	if got[0].ID != "X" || got[1].ID != "Z" {
		t.Errorf("order = [%s %s], want [X Z]", got[0].ID, got[1].ID)
	}
	if got[0].Title != Link(comps[0]).Title {
		t.Errorf("Links and Link disagree for X")
	}
}

func TestLinksEmptyInput(t *testing.T) {
	got := Links(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestLinkOwnPropertiesWin(t *testing.T) {
	c := component(t, `{
		"id": "c1",
		"type": "MediaWebResource",
		"createdAt": "2024-01-02T03:04:05.000Z",
		"lastUpdated": "2024-02-03T04:05:06.000Z",
		"properties": {
			"title": {"val": "Own title"},
			"media_URLReference": {"val": "https://own.example/post"},
			"media_host": {"val": "own.example"},
			"description": {"val": "Own description"},
			"tags": {"val": [{"id": "a"}, {"id": "b"}]}
		},
		"data": {
			"urlMetadata": {
				"href": "https://meta.example/post",
				"host": "meta.example",
				"description": "Meta description",
				"image": "https://meta.example/img.png",
				"logo": "https://meta.example/logo.png"
			}
		}
	}`)

	got := Link(c)
	want := map[string]string{
		"id":          "c1",
		"title":       "Own title",
		"url":         "https://own.example/post",
		"host":        "own.example",
		"description": "Own description",
		"image":       "https://meta.example/img.png",
		"logo":        "https://meta.example/logo.png",
		"createdAt":   "2024-01-02T03:04:05.000Z",
		"lastUpdated": "2024-02-03T04:05:06.000Z",
	}
	fields := map[string]string{
		"id":          got.ID,
		"title":       got.Title,
		"url":         got.URL,
		"host":        got.Host,
		"description": got.Description,
		"image":       got.Image,
		"logo":        got.Logo,
		"createdAt":   got.CreatedAt,
		"lastUpdated": got.LastUpdated,
	}
	for k, w := range want {
		if fields[k] != w {
			t.Errorf("%s = %q, want %q", k, fields[k], w)
		}
	}
	if len(got.Tags) != 2 || got.Tags[0] != "a" || got.Tags[1] != "b" {
		t.Errorf("tags = %v, want [a b]", got.Tags)
	}
}

func TestLinkFallsBackToMetadata(t *testing.T) {
	c := component(t, `{
		"id": "c2",
		"type": "MediaWebResource",
		"properties": {
			"media_URLReference": {"val": ""}
		},
		"data": {
			"urlMetadata": {
				"href": "https://meta.example/post",
				"host": "meta.example",
				"description": "Meta description"
			}
		}
	}`)

	got := Link(c)
	if got.Title != "Untitled" {
		t.Errorf("title = %q, want Untitled", got.Title)
	}
	if got.URL != "https://meta.example/post" {
		t.Errorf("url = %q, want metadata href", got.URL)
	}
	if got.Host != "meta.example" {
		t.Errorf("host = %q, want metadata host", got.Host)
	}
	if got.Description != "Meta description" {
		t.Errorf("description = %q, want metadata description", got.Description)
	}
}

func TestLinkDefaults(t *testing.T) {
	got := Link(capacities.Component{ID: "bare", Type: capacities.WebResourceType})

	if got.Title != "Untitled" {
		t.Errorf("title = %q, want Untitled", got.Title)
	}
	for name, v := range map[string]string{
		"url": got.URL, "host": got.Host, "description": got.Description,
		"image": got.Image, "logo": got.Logo,
	} {
		if v != "" {
			t.Errorf("%s = %q, want empty", name, v)
		}
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("tags = %#v, want empty slice", got.Tags)
	}
}

func TestLinkDoesNotMutateInput(t *testing.T) {
	c := component(t, `{"id":"c3","type":"MediaWebResource","properties":{"tags":{"val":[{"id":"t"}]}}}`)
	before := string(c.Properties["tags"].Val)

	l := Link(c)
	l.Tags[0] = "changed"

	if after := string(c.Properties["tags"].Val); after != before {
		t.Errorf("input mutated: %s -> %s", before, after)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"a", "b"}, "a"},
		{[]string{"", "b"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", ""}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := firstNonEmpty(tt.in...); got != tt.want {
			t.Errorf("firstNonEmpty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
