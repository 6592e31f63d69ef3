package output

import (
	"encoding/json"
	"io"
	"reflect"
)

// JSONFormatter formats data as indented JSON. HTML characters are kept
// literal so URLs and post titles print as written.
type JSONFormatter struct{}

// Format formats data as JSON.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	if t, ok := data.(reflect.Type); ok {
		data = t.String()
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
