package extract

import (
	"github.com/matheuskafuri/capalinks/internal/capacities"
	"github.com/matheuskafuri/capalinks/internal/links"
)

const untitled = "Untitled"

// Property names used by Capacities web resources.
const (
	propTitle       = "title"
	propURL         = "media_URLReference"
	propHost        = "media_host"
	propDescription = "description"
	propTags        = "tags"
)

// Links flattens every web resource in components into a Link, in input
// order. Components of any other type are skipped.
func Links(components []capacities.Component) []links.Link {
	out := []links.Link{}
	for _, c := range components {
		if c.Type != capacities.WebResourceType {
			continue
		}
		out = append(out, Link(c))
	}
	return out
}

// Link maps a single component. Each field takes the first non-empty value
// from its candidate list.
func Link(c capacities.Component) links.Link {
	meta := c.Metadata()
	return links.Link{
		ID:          c.ID,
		Title:       firstNonEmpty(c.Text(propTitle), untitled),
		URL:         firstNonEmpty(c.Text(propURL), meta.Href),
		Host:        firstNonEmpty(c.Text(propHost), meta.Host),
		Description: firstNonEmpty(c.Text(propDescription), meta.Description),
		Image:       meta.Image,
		Logo:        meta.Logo,
		Tags:        c.RefIDs(propTags),
		CreatedAt:   c.CreatedAt,
		LastUpdated: c.LastUpdated,
	}
}

func firstNonEmpty(candidates ...string) string {
	for _, s := range candidates {
		if s != "" {
			return s
		}
	}
	return ""
}
