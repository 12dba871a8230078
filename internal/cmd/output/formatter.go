// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/icdmap/pkg/errors"
)

// Format names an output encoding.
type Format string

// Supported formats. Wide is a table that keeps empty sections.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatWide  Format = "wide"
)

// Align is a table column alignment.
type Align int

// Column alignments. AlignDefault leaves the column to tablewriter.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Formatter writes data in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter returns the formatter for format, a table for anything
// unrecognized.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{Wide: format == FormatWide}
	}
}

// JSONFormatter writes indented JSON.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(data)
}

// YAMLFormatter writes YAML with two-space indentation.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct {
	Wide bool
}

// Format renders Data as is and slices of structs through TableOf. Anything
// else is written as JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	table, ok := data.(Data)
	if !ok {
		var err error
		if table, err = TableOf(data); err != nil {
			return (&JSONFormatter{Indent: "  "}).Format(w, data)
		}
	}
	return f.render(w, table)
}

func (f *TableFormatter) render(w io.Writer, data Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			align[i] = a.tw()
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		table.Header(cells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := table.Append(cells(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func (a Align) tw() tw.Align {
	switch a {
	case AlignLeft:
		return tw.AlignLeft
	case AlignCenter:
		return tw.AlignCenter
	case AlignRight:
		return tw.AlignRight
	default:
		return tw.Skip
	}
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// TableOf converts a slice of structs into Data. Headers come from the
// element type, so an empty slice still yields a header row. Column names
// are the title-cased json tags with underscores as spaces; fields tagged
// "-" and unexported fields are left out.
func TableOf(rows any) (Data, error) {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		return Data{}, errors.NewValidationError("rows", rows, "must be a slice of structs")
	}
	elem := v.Type().Elem()
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return Data{}, errors.NewValidationError("rows", rows, "must be a slice of structs")
	}

	caser := cases.Title(language.English)
	var data Data
	var fields []int
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		name, ok := columnName(field)
		if !ok {
			continue
		}
		fields = append(fields, i)
		data.Headers = append(data.Headers, caser.String(name))
	}

	for i := 0; i < v.Len(); i++ {
		item := reflect.Indirect(v.Index(i))
		row := make([]string, len(fields))
		if item.IsValid() {
			for j, idx := range fields {
				row[j] = fmt.Sprint(item.Field(idx).Interface())
			}
		}
		data.Rows = append(data.Rows, row)
	}
	return data, nil
}

func columnName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch tag {
	case "-":
		return "", false
	case "":
		return field.Name, true
	}
	return strings.ReplaceAll(tag, "_", " "), true
}

// DetectFormat returns explicit when set. Otherwise it picks a table for a
// terminal and JSON for pipes, redirects and in-memory writers.
func DetectFormat(explicit string, w io.Writer) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return FormatTable
		}
	}
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	default:
		return "", errors.NewValidationError("format", s, "must be one of: table, json, yaml, wide")
	}
}
