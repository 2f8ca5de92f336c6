// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Size        int               `yaml:"size,omitempty"`
	ArrowColumn *int              `yaml:"arrow_column,omitempty"`
	Par         int               `yaml:"par,omitempty"`
	Rows        []string          `yaml:"rows"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for validation.
type Level struct {
	ID          string
	Name        string
	Size        int
	ArrowColumn int
	Par         int
	Rows        []string
	Metadata    map[string]string
}

// ParseYAML parses a YAML level file. A missing size is taken from the row
// count and a missing arrow column defaults to the middle column.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	size := yl.Size
	if size <= 0 {
		size = len(yl.Rows)
	}

	col := size / 2
	if yl.ArrowColumn != nil {
		col = *yl.ArrowColumn
	}

	return Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Size:        size,
		ArrowColumn: col,
		Par:         yl.Par,
		Rows:        yl.Rows,
		Metadata:    yl.Metadata,
	}, nil
}

// MarshalYAML renders a level back to the file format.
func MarshalYAML(l Level) ([]byte, error) {
	col := l.ArrowColumn
	out, err := yaml.Marshal(YAMLLevel{
		ID:          l.ID,
		Name:        l.Name,
		Size:        l.Size,
		ArrowColumn: &col,
		Par:         l.Par,
		Rows:        l.Rows,
		Metadata:    l.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
