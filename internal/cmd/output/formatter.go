// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is an output format name.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Align is the alignment of a table column.
type Align int

// Column alignments. AlignDefault leaves the choice to the table renderer.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

var twAlign = map[Align]tw.Align{
	AlignDefault: tw.Skip,
	AlignLeft:    tw.AlignLeft,
	AlignCenter:  tw.AlignCenter,
	AlignRight:   tw.AlignRight,
}

// Data is a rendered table: headers, string cells and optional
// per-column alignment.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// Formatter writes data to w.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(w io.Writer, data any) error

// Format implements Formatter.
func (f FormatterFunc) Format(w io.Writer, data any) error { return f(w, data) }

// NewFormatter returns the formatter for format. Unknown formats get the
// table formatter.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return FormatterFunc(writeJSON)
	case FormatYAML:
		return FormatterFunc(writeYAML)
	}
	return FormatterFunc(writeTable)
}

// ParseFormat validates a --format value. The empty string is allowed and
// means "detect".
func ParseFormat(s string) (Format, error) {
	switch format := Format(strings.ToLower(s)); format {
	case "", FormatTable, FormatJSON, FormatYAML:
		return format, nil
	}
	return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
}

// DetectFormat returns explicit if set. Otherwise it picks a table for a
// terminal and JSON for pipes and redirects.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if fd := os.Stdout.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// writeJSON keeps non-ASCII labels readable.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// writeTable renders Data. Anything else is written as JSON.
func writeTable(w io.Writer, data any) error {
	var table Data
	switch v := data.(type) {
	case Data:
		table = v
	case *Data:
		table = *v
	default:
		return writeJSON(w, data)
	}

	var config tablewriter.Config
	if len(table.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(table.ColumnAlignment))
		for i, a := range table.ColumnAlignment {
			align[i] = twAlign[a]
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(table.Headers) > 0 {
		t.Header(toAny(table.Headers)...)
	}
	for _, row := range table.Rows {
		if err := t.Append(toAny(row)...); err != nil {
			return err
		}
	}
	return t.Render()
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// titleCase turns a snake_case key into a column header.
func titleCase(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
