package capacities

import (
	"encoding/json"
	"testing"
)

func TestQueryPayloadShape(t *testing.T) {
	b, err := json.Marshal(QueryPayload("db-1"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got["spaceId"] != "local_userPersonal_id" {
		t.Errorf("spaceId = %v", got["spaceId"])
	}
	if got["inUpdate"] != true || got["isPriority"] != true {
		t.Errorf("expected inUpdate and isPriority true, got %v / %v", got["inUpdate"], got["isPriority"])
	}

	op := got["definition"].(map[string]any)
	if op["operation"] != "general" {
		t.Errorf("operation = %v, want general", op["operation"])
	}
	def := op["definition"].(map[string]any)
	if def["scope"] != "structures" {
		t.Errorf("scope = %v, want structures", def["scope"])
	}

	structures := def["structures"].([]any)
	if len(structures) != 1 {
		t.Fatalf("expected 1 structure, got %d", len(structures))
	}
	s := structures[0].(map[string]any)
	if s["id"] != WebResourceType {
		t.Errorf("structure id = %v, want %s", s["id"], WebResourceType)
	}
	tree := s["databaseTreeInfo"].(map[string]any)
	if tree["defaultDatabaseId"] != "db-1" {
		t.Errorf("defaultDatabaseId = %v, want db-1", tree["defaultDatabaseId"])
	}

	all := def["allDatabaseIds"].([]any)
	if len(all) != 2 || all[0] != "db-1" || all[1] != "db-1" {
		t.Errorf("allDatabaseIds = %v", all)
	}
	if tags := def["tagNames"].([]any); len(tags) != 0 {
		t.Errorf("tagNames = %v, want empty", tags)
	}

	scope := got["permissionScope"].(map[string]any)
	if scope["type"] != "database" || scope["databaseId"] != "db-1" {
		t.Errorf("permissionScope = %v", scope)
	}
}

func TestComponentPropertyAccessors(t *testing.T) {
	var c Component
	raw := `{
		"id": "c1",
		"type": "MediaWebResource",
		"properties": {
			"title": {"val": "Hello"},
			"tags": {"val": [{"id": "a"}, {"id": "b"}]},
			"weird": {"val": 12}
		}
	}`
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := c.Text("title"); got != "Hello" {
		t.Errorf("Text(title) = %q, want Hello", got)
	}
	if got := c.Text("missing"); got != "" {
		t.Errorf("Text(missing) = %q, want empty", got)
	}
	if got := c.Text("weird"); got != "" {
		t.Errorf("Text(weird) = %q, want empty for non-string value", got)
	}

	tags := c.RefIDs("tags")
	if len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("RefIDs(tags) = %v, want [a b]", tags)
	}
	if got := c.RefIDs("missing"); got == nil || len(got) != 0 {
		t.Errorf("RefIDs(missing) = %#v, want empty slice", got)
	}
	if got := c.Metadata(); got != (URLMetadata{}) {
		t.Errorf("Metadata() = %+v, want zero value", got)
	}
}

func TestEntriesCountCachedEmpty(t *testing.T) {
	var r *ComponentsResponse
	if got := r.EntriesCountCached(); got != 0 {
		t.Errorf("nil response: got %d, want 0", got)
	}
	if got := (&ComponentsResponse{}).EntriesCountCached(); got != 0 {
		t.Errorf("empty response: got %d, want 0", got)
	}
}
