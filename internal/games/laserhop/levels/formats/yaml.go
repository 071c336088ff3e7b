// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
//
// Each entry in Rows is one grid row, written either as cell characters
// (".GG+X.") or as whitespace-separated colour names ("blue green gray ...").
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Level is a parsed level file. Rows are not validated here.
type Level struct {
	ID       string
	Name     string
	Rows     []string
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Rows:     yl.Rows,
		Metadata: yl.Metadata,
	}, nil
}

// MarshalYAML encodes a level back into its file form.
func MarshalYAML(l Level) ([]byte, error) {
	data, err := yaml.Marshal(YAMLLevel{
		ID:       l.ID,
		Name:     l.Name,
		Rows:     l.Rows,
		Metadata: l.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
