package builder

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-cfb/internal/directory"
)

// Manifest assigns properties to entries by path. Paths are relative to the
// root entry; "/" names the root itself.
//
//	entries:
//	  /:
//	    clsid: 00020906-0000-0000-C000-000000000046
//	  Macros/VBA:
//	    modified: 2023-01-09T14:07:51Z
//	    user_flags: 3
type Manifest struct {
	Entries map[string]map[string]any `yaml:"entries"`
}

// LoadManifest reads and parses a manifest file
func LoadManifest(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Apply sets every listed property on the entry at its path
func (m *Manifest) Apply(h *directory.Hierarchy) error {
	paths := make([]string, 0, len(m.Entries))
	for p := range m.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		e, err := h.Lookup(p)
		if err != nil {
			return fmt.Errorf("manifest entry %q: %w", p, err)
		}

		props := m.Entries[p]
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if err := e.Set(directory.Property(k), props[k]); err != nil {
				return fmt.Errorf("manifest entry %q: %w", p, err)
			}
		}
	}
	return nil
}
