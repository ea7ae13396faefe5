package output

import (
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/yndnr/simple-redis/internal/resp"
)

// TableFormatter renders maps as FIELD/VALUE rows, arrays and sets as
// INDEX/VALUE rows and anything else as a single VALUE cell. Nested
// aggregates are shown inline in their text form.
type TableFormatter struct {
	NoHeaders bool
}

func (f *TableFormatter) Format(w io.Writer, fr resp.Frame) error {
	return ToTable(fr).RenderWithOptions(w, f.NoHeaders)
}

// ToTable converts a reply frame into a Table.
func ToTable(fr resp.Frame) *Table {
	t := &Table{}
	switch v := fr.(type) {
	case *resp.Map:
		t.SetHeaders("FIELD", "VALUE")
		v.Ascend(func(key string, value resp.Frame) bool {
			t.AddRow(key, cell(value))
			return true
		})
	case resp.Array:
		t.SetHeaders("INDEX", "VALUE")
		for i, item := range v {
			t.AddRow(strconv.Itoa(i+1), cell(item))
		}
	case resp.Set:
		t.SetHeaders("INDEX", "MEMBER")
		for i, item := range v {
			t.AddRow(strconv.Itoa(i+1), cell(item))
		}
	default:
		t.SetHeaders("VALUE")
		t.AddRow(cell(fr))
	}
	return t
}

// cell renders a frame on one line. Bulk strings are shown raw.
func cell(fr resp.Frame) string {
	if b, ok := fr.(resp.BulkString); ok {
		return string(b)
	}
	return strings.Join(textLines(fr), " ")
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
		if _, err := io.WriteString(tw, strings.Join(t.Headers, "\t")+"\n"); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := io.WriteString(tw, strings.Join(row, "\t")+"\n"); err != nil {
			return err
		}
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
