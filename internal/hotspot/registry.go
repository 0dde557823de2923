package hotspot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyContent is returned when a content descriptor holds no mapping.
var ErrEmptyContent = errors.New("content descriptor is empty")

// Content is what the info panel shows for one hotspot.
type Content struct {
	Name string `yaml:"name" json:"name"`
	Info string `yaml:"info" json:"info"`
}

// Entry is one registered hotspot. Key is the scene-graph name of its anchor.
type Entry struct {
	Key     string
	Content Content
}

// Registry is the ordered set of hotspots. It is read-only once loaded.
type Registry struct {
	entries []Entry
}

// NewRegistry returns a registry over entries, in the given order.
func NewRegistry(entries ...Entry) *Registry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return &Registry{entries: out}
}

// Load reads a content descriptor (YAML or JSON) from path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes a name -> {name, info} mapping. Document order is kept, since
// it decides which hotspot wins when several are in range. JSON parses as YAML.
// Entries whose value is not a mapping are skipped.
func Parse(data []byte) (*Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyContent
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at top level, got %s", kindName(root.Kind))
	}

	reg := &Registry{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]
		var c Content
		if err := val.Decode(&c); err != nil {
			slog.Warn("skipping hotspot content", "hotspot", key, "line", val.Line, "error", err)
			continue
		}
		reg.entries = append(reg.entries, Entry{Key: key, Content: c})
	}
	return reg, nil
}

// Len returns the number of hotspots.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns the hotspots in registry order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the content registered under key.
func (r *Registry) Lookup(key string) (Content, bool) {
	for _, e := range r.entries {
		if e.Key == key {
			return e.Content, true
		}
	}
	return Content{}, false
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
