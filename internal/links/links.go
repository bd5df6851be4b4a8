package links

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TimeLayout matches JavaScript's Date.toISOString so published files stay
// byte-compatible with earlier builds.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Link is a flattened web resource ready for publication.
type Link struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Host        string   `json:"host"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Logo        string   `json:"logo"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt"`
	LastUpdated string   `json:"lastUpdated"`
}

// Envelope is the top-level object written to links.json.
type Envelope struct {
	GeneratedAt string `json:"generatedAt"`
	Count       int    `json:"count"`
	Links       []Link `json:"links"`
}

// NewEnvelope wraps links with run metadata. Count always equals len(Links).
func NewEnvelope(generatedAt time.Time, links []Link) *Envelope {
	if links == nil {
		links = []Link{}
	}
	for i := range links {
		if links[i].Tags == nil {
			links[i].Tags = []string{}
		}
	}
	return &Envelope{
		GeneratedAt: generatedAt.UTC().Format(TimeLayout),
		Count:       len(links),
		Links:       links,
	}
}

// Marshal renders the envelope as indented JSON with a trailing newline.
func (e *Envelope) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the envelope to path, replacing any previous file. The data is
// written to a temporary file in the same directory and renamed into place,
// so readers never see a partial file.
func Save(path string, env *Envelope) error {
	data, err := env.Marshal()
	if err != nil {
		return fmt.Errorf("encoding links: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Load reads a previously published envelope.
func Load(path string) (*Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if env.Links == nil {
		env.Links = []Link{}
	}
	return &env, nil
}
