package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/os2iot/iotconsole/internal/cli/pagination"
	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/internal/tui"
)

// listOutput is the structured form of a list command result.
type listOutput[T any] struct {
	Items      []T                       `json:"items"      yaml:"items"`
	Pagination pagination.PaginationMeta `json:"pagination" yaml:"pagination"`
}

// newTableWriter returns a go-pretty writer rendering to w.
func newTableWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	// Headers are translated text; keep their casing.
	t.Style().Format.Header = text.FormatDefault
	return t
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, format)
	}
}

// renderRows writes rows as a table using the column titles and values.
func renderRows[T any](w io.Writer, tr i18n.Translator, columns []tui.Column[T], rows []T) table.Writer {
	t := newTableWriter(w)
	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = tr.T(c.TitleKey)
	}
	t.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i, c := range columns {
			r[i] = c.Value(row, tr)
		}
		t.AppendRow(r)
	}
	return t
}

// paginationFooter describes the page shown by a list command.
func paginationFooter(tr i18n.Translator, meta pagination.PaginationMeta) string {
	pages := max(meta.TotalPages, 1)
	return fmt.Sprintf("%s · %s",
		tr.T(i18n.KeyPageOf, meta.CurrentPage, pages),
		tr.T(i18n.KeyTotal, meta.TotalItems))
}
