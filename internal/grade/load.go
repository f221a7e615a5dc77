package grade

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dotcommander/gradegate/internal/schema"
)

// LoadScheme reads a grading scheme from a YAML file (JSON also parses,
// being a YAML subset). The raw document is checked against the embedded
// CUE schema before decoding, then semantically validated.
func LoadScheme(path string) (*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scheme file: %w", err)
	}
	s, err := parseScheme(path, data)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scheme file %s: %w", path, err)
	}
	return s, nil
}

func parseScheme(path string, data []byte) (*Scheme, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing scheme file %s: %w", path, err)
	}
	if err := schema.ValidateScheme(raw); err != nil {
		return nil, fmt.Errorf("scheme file %s: %w", path, err)
	}
	var s Scheme
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding scheme file %s: %w", path, err)
	}
	s.applyDefaults()
	return &s, nil
}

// applyDefaults fills the valid range of components that declare none.
func (s *Scheme) applyDefaults() {
	for i := range s.Components {
		c := &s.Components[i]
		if c.Min == 0 && c.Max == 0 {
			c.Max = 100
		}
	}
}
