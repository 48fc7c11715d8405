package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogueFile struct {
	Sections map[string]Section `yaml:"sections"`
}

// LoadFile reads a YAML catalogue from disk. See configs/sections.yaml for
// the authoring shape.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read catalogue: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Store from raw YAML catalogue bytes.
func Parse(raw []byte) (*Store, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("store: parse catalogue: %w", err)
	}
	if len(file.Sections) == 0 {
		return nil, fmt.Errorf("store: catalogue has no sections")
	}
	return New(file.Sections)
}
