package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders the report as JSON
type JSONFormatter struct {
	// Indent is applied per nesting level; empty means compact
	Indent string
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the report as a single JSON document
func (f *JSONFormatter) Render(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(r)
}
