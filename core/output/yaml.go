package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders the report as a YAML document
type YAMLFormatter struct{}

// Format returns FormatYAML
func (f *YAMLFormatter) Format() Format {
	return FormatYAML
}

// Render writes the report with two-space indentation
func (f *YAMLFormatter) Render(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
