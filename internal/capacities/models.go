package capacities

import "encoding/json"

// WebResourceType is the component type Capacities uses for saved web links.
const WebResourceType = "MediaWebResource"

// Component is a single record returned by the id-list endpoint. Only the
// fields this tool reads are modeled; everything else is ignored.
//
// Decoding never fails on a field of unexpected shape: such fields read as
// zero values. Records other than web resources keep only their id, type and
// cached entry count.
type Component struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Properties  map[string]Property `json:"properties"`
	Data        ComponentData       `json:"data"`
	CreatedAt   string              `json:"createdAt"`
	LastUpdated string              `json:"lastUpdated"`
}

// Property wraps a typed property value. The shape of Val depends on the
// property, so it is decoded lazily.
type Property struct {
	Val json.RawMessage `json:"val"`
}

type ComponentData struct {
	URLMetadata        *URLMetadata `json:"urlMetadata"`
	EntriesCountCached int          `json:"entriesCountCached"`
}

type URLMetadata struct {
	Href        string `json:"href"`
	Host        string `json:"host"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Logo        string `json:"logo"`
}

// Reference points at another object, e.g. a tag.
type Reference struct {
	ID string `json:"id"`
}

type ComponentsResponse struct {
	Components []Component `json:"components"`
}

type queryResponse struct {
	EntryObjects []struct {
		ID string `json:"id"`
	} `json:"entryObjects"`
}

// EntriesCountCached returns the cached entry count of the first component,
// which is the database itself when the response came from a database lookup.
func (r *ComponentsResponse) EntriesCountCached() int {
	if r == nil || len(r.Components) == 0 {
		return 0
	}
	return r.Components[0].Data.EntriesCountCached
}

// Text returns the property value as a string. Missing properties and
// non-string values read as "".
func (c Component) Text(name string) string {
	p, ok := c.Properties[name]
	if !ok || len(p.Val) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(p.Val, &s); err != nil {
		return ""
	}
	return s
}

// RefIDs returns the ids of a reference-list property in order. Missing or
// malformed values read as an empty slice.
func (c Component) RefIDs(name string) []string {
	ids := []string{}
	p, ok := c.Properties[name]
	if !ok || len(p.Val) == 0 {
		return ids
	}
	var refs []Reference
	if err := json.Unmarshal(p.Val, &refs); err != nil {
		return ids
	}
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

// Metadata returns the link metadata scraped by Capacities, or a zero value
// when the component has none.
func (c Component) Metadata() URLMetadata {
	if c.Data.URLMetadata == nil {
		return URLMetadata{}
	}
	return *c.Data.URLMetadata
}

func (c *Component) UnmarshalJSON(b []byte) error {
	*c = Component{}
	raw := looseObject(b)
	if raw == nil {
		return nil
	}

	c.ID = looseString(raw["id"])
	c.Type = looseString(raw["type"])
	data := looseObject(raw["data"])
	c.Data.EntriesCountCached = looseInt(data["entriesCountCached"])
	if c.Type != WebResourceType {
		return nil
	}

	c.CreatedAt = looseString(raw["createdAt"])
	c.LastUpdated = looseString(raw["lastUpdated"])

	props := looseObject(raw["properties"])
	c.Properties = make(map[string]Property, len(props))
	for name, v := range props {
		if val, ok := looseObject(v)["val"]; ok {
			c.Properties[name] = Property{Val: val}
		}
	}

	if meta := looseObject(data["urlMetadata"]); meta != nil {
		c.Data.URLMetadata = &URLMetadata{
			Href:        looseString(meta["href"]),
			Host:        looseString(meta["host"]),
			Description: looseString(meta["description"]),
			Image:       looseString(meta["image"]),
			Logo:        looseString(meta["logo"]),
		}
	}
	return nil
}

func looseObject(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func looseString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// looseInt reads any JSON number, including "3.0", truncated to an int.
func looseInt(raw json.RawMessage) int {
	var f float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return 0
	}
	return int(f)
}
