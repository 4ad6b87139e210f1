package menu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a menu definition from YAML and validates it.
func FromYAML(data []byte) (*Menu, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("menu: failed to parse yaml: %w", err)
	}
	return New(def)
}

// FromFile reads and parses a menu definition file.
func FromFile(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("menu: failed to read %s: %w", path, err)
	}
	return FromYAML(data)
}
