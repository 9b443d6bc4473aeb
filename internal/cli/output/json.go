package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats data as JSON. A Table becomes an array of objects
// keyed by its headers.
type JSONFormatter struct {
	// Compact disables indentation.
	Compact bool
}

// Format writes data as one JSON document. URLs and option strings are
// written as-is, without HTML escaping of &, < and >.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !f.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(records(data))
}
