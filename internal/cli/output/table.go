package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

// TableFormatter formats data as an aligned text table.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
}

var (
	timeType        = reflect.TypeOf(time.Time{})
	reflectTypeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()
)

// Format formats data as a table.
// Supports: Table, []T (slice of structs/maps/scalars), map[K]V, structs
// and scalars. Structs without exported fields print as an opaque handle.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	switch t := data.(type) {
	case *Table:
		return t.RenderWithOptions(w, f.NoHeaders)
	case Table:
		return t.RenderWithOptions(w, f.NoHeaders)
	case reflect.Type:
		_, err := fmt.Fprintln(w, t.String())
		return err
	case fmt.Stringer:
		if isOpaque(reflect.ValueOf(data)) {
			_, err := fmt.Fprintln(w, t.String())
			return err
		}
	}

	v := indirect(reflect.ValueOf(data))
	if !v.IsValid() {
		return nil
	}
	if isScalar(v) {
		_, err := fmt.Fprintln(w, formatValue(v))
		return err
	}
	if isOpaque(v) {
		_, err := fmt.Fprintf(w, "<%T>\n", data)
		return err
	}

	table, err := toTable(v, f.Wide)
	if err != nil {
		// Fallback to JSON for complex types
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}

	return table.RenderWithOptions(w, f.NoHeaders)
}

// indirect dereferences pointers and interfaces.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isScalar(v reflect.Value) bool {
	if v.Type() == timeType {
		return true
	}
	switch v.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// isOpaque reports whether v is a struct with no exported fields.
func isOpaque(v reflect.Value) bool {
	v = indirect(v)
	if !v.IsValid() || v.Kind() != reflect.Struct || v.Type() == timeType {
		return false
	}
	for i := 0; i < v.NumField(); i++ {
		if v.Type().Field(i).IsExported() {
			return false
		}
	}
	return true
}

// toTable converts various data types to a Table.
func toTable(v reflect.Value, wide bool) (*Table, error) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return sliceToTable(v, wide)
	case reflect.Map:
		return mapToTable(v), nil
	case reflect.Struct:
		return structToTable(v), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", v.Kind())
	}
}

// fieldName returns the display name of a struct field, preferring its
// json tag, then its yaml tag.
func fieldName(field reflect.StructField) string {
	for _, key := range []string{"json", "yaml"} {
		tag := field.Tag.Get(key)
		if tag == "" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

// visibleFields returns the indices of fields shown for t.
func visibleFields(t reflect.Type, wide bool) []int {
	var out []int
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("table")
		if tag == "-" {
			continue
		}
		if strings.Contains(tag, "wide") && !wide {
			continue
		}
		out = append(out, i)
	}
	return out
}

// sliceToTable converts a slice to a table.
func sliceToTable(v reflect.Value, wide bool) (*Table, error) {
	if v.Len() == 0 {
		return &Table{}, nil
	}

	first := indirect(v.Index(0))
	table := &Table{}

	switch {
	case first.IsValid() && first.Kind() == reflect.Struct && first.Type() != timeType:
		indices := visibleFields(first.Type(), wide)
		for _, idx := range indices {
			name := fieldName(first.Type().Field(idx))
			table.Headers = append(table.Headers, strings.ToUpper(toSnakeCase(name)))
		}
		for i := 0; i < v.Len(); i++ {
			elem := indirect(v.Index(i))
			if !elem.IsValid() {
				continue
			}
			row := make([]string, 0, len(indices))
			for _, idx := range indices {
				row = append(row, formatValue(elem.Field(idx)))
			}
			table.Rows = append(table.Rows, row)
		}
	case first.IsValid() && first.Kind() == reflect.Map:
		table.Headers = []string{"KEY", "VALUE"}
		for i := 0; i < v.Len(); i++ {
			elem := indirect(v.Index(i))
			if elem.IsValid() {
				table.Rows = append(table.Rows, mapToTable(elem).Rows...)
			}
		}
	default:
		table.Headers = []string{"VALUE"}
		for i := 0; i < v.Len(); i++ {
			table.Rows = append(table.Rows, []string{formatValue(v.Index(i))})
		}
	}

	return table, nil
}

// mapToTable converts a map to a key-value table, sorted by key.
func mapToTable(v reflect.Value) *Table {
	table := &Table{
		Headers: []string{"KEY", "VALUE"},
	}

	iter := v.MapRange()
	for iter.Next() {
		table.Rows = append(table.Rows, []string{formatValue(iter.Key()), formatValue(iter.Value())})
	}
	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i][0] < table.Rows[j][0]
	})

	return table
}

// structToTable converts a single struct to a field-value table.
func structToTable(v reflect.Value) *Table {
	table := &Table{
		Headers: []string{"FIELD", "VALUE"},
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("table") == "-" {
			continue
		}
		table.Rows = append(table.Rows, []string{fieldName(field), formatValue(v.Field(i))})
	}

	return table
}

// formatValue formats a reflect.Value for display in a cell.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}

	if v.Type().Implements(reflectTypeType) && v.Kind() != reflect.Interface {
		return v.Interface().(reflect.Type).String()
	}

	if v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		return formatValue(v.Elem())
	}

	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	}

	switch v.Kind() {
	case reflect.String:
		s := v.String()
		if s == "" {
			return "-"
		}
		return s
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	case reflect.Bool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	case reflect.Struct:
		if isOpaque(v) {
			return "<" + v.Type().String() + ">"
		}
		return fmt.Sprintf("{%s}", v.Type().Name())
	case reflect.Func:
		return "<func>"
	default:
		if v.CanInterface() {
			return fmt.Sprintf("%v", v.Interface())
		}
		return v.Kind().String()
	}
}

// toSnakeCase converts CamelCase to SNAKE_CASE.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteByte('_')
		}
		result.WriteRune(r)
	}
	return result.String()
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}
