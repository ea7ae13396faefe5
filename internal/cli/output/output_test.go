package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/yndnr/simple-redis/internal/resp"
)

// ============================================================================
// Formatter factory
// ============================================================================

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "*output.TextFormatter"},
		{FormatTable, "*output.TableFormatter"},
		{FormatJSON, "*output.JSONFormatter"},
		{FormatYAML, "*output.YAMLFormatter"},
		{Format("bogus"), "*output.TextFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format)
			var got string
			switch f.(type) {
			case *TextFormatter:
				got = "*output.TextFormatter"
			case *TableFormatter:
				got = "*output.TableFormatter"
			case *JSONFormatter:
				got = "*output.JSONFormatter"
			case *YAMLFormatter:
				got = "*output.YAMLFormatter"
			}
			if got != tt.want {
				t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"table", FormatTable, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Text
// ============================================================================

func TestText(t *testing.T) {
	hash := resp.NewMap(
		resp.MapEntry{Key: "name", Value: resp.BulkString("alice")},
		resp.MapEntry{Key: "age", Value: resp.BulkString("30")},
	)

	tests := []struct {
		name  string
		frame resp.Frame
		want  string
	}{
		{"simple string", resp.OK, "OK"},
		{"simple error", resp.SimpleError("ERR boom"), "(error) ERR boom"},
		{"bulk error", resp.BulkError("SYNTAX bad"), "(error) SYNTAX bad"},
		{"integer", resp.Integer(-3), "(integer) -3"},
		{"bulk string", resp.BulkString("hi\nthere"), `"hi\nthere"`},
		{"empty bulk string", resp.BulkString(""), `""`},
		{"null", resp.Null{}, "(nil)"},
		{"null bulk", resp.NullBulkString{}, "(nil)"},
		{"null array", resp.NullArray{}, "(nil)"},
		{"nil frame", nil, "(nil)"},
		{"true", resp.Boolean(true), "(true)"},
		{"double", resp.Double(1.5), "(double) 1.5"},
		{"big number", resp.BigNumber("12345678901234567890"), "(big number) 12345678901234567890"},
		{"empty array", resp.Array{}, "(empty array)"},
		{"empty set", resp.Set{}, "(empty set)"},
		{"empty map", resp.NewMap(), "(empty hash)"},
		{
			"flat array",
			resp.Array{resp.BulkString("a"), resp.Integer(2)},
			"1) \"a\"\n2) (integer) 2",
		},
		{
			"nested array",
			resp.Array{resp.BulkString("a"), resp.Array{resp.Integer(1), resp.BulkString("b")}},
			"1) \"a\"\n2) 1) (integer) 1\n   2) \"b\"",
		},
		{
			"set",
			resp.Set{resp.BulkString("x"), resp.BulkString("y")},
			"1) \"x\"\n2) \"y\"",
		},
		{
			"map sorted by key",
			hash,
			"1# \"age\" => \"30\"\n2# \"name\" => \"alice\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.frame); got != tt.want {
				t.Errorf("Text() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestText_WideIndexAligned(t *testing.T) {
	arr := make(resp.Array, 10)
	for i := range arr {
		arr[i] = resp.Integer(i)
	}

	lines := strings.Split(Text(arr), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if lines[0] != " 1) (integer) 0" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[9] != "10) (integer) 9" {
		t.Errorf("last line = %q", lines[9])
	}
}

func TestTextFormatter_TrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, resp.Integer(1)); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "(integer) 1\n" {
		t.Errorf("output = %q", buf.String())
	}
}

// ============================================================================
// Value / JSON / YAML
// ============================================================================

func TestValue(t *testing.T) {
	hash := resp.NewMap(resp.MapEntry{Key: "f", Value: resp.Integer(1)})

	tests := []struct {
		name  string
		frame resp.Frame
		want  string
	}{
		{"bulk", resp.BulkString("v"), `"v"`},
		{"integer", resp.Integer(7), `7`},
		{"null", resp.Null{}, `null`},
		{"error", resp.SimpleError("ERR x"), `{"error":"ERR x"}`},
		{"bool", resp.Boolean(false), `false`},
		{"nan", resp.Double(math.NaN()), `"NaN"`},
		{"inf", resp.Double(math.Inf(1)), `"+Inf"`},
		{"big number", resp.BigNumber("99"), `"99"`},
		{"array", resp.Array{resp.BulkString("a"), resp.NullBulkString{}}, `["a",null]`},
		{"map", hash, `{"f":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(Value(tt.frame))
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("Value() JSON = %s, want %s", b, tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	hash := resp.NewMap(resp.MapEntry{Key: "f", Value: resp.BulkString("v")})
	if err := (&JSONFormatter{}).Format(&buf, hash); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "{\n  \"f\": \"v\"\n}\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestYAMLFormatter(t *testing.T) {
	tests := []struct {
		name  string
		frame resp.Frame
		want  string
	}{
		{"string", resp.BulkString("hello"), "hello\n"},
		{"integer", resp.Integer(5), "5\n"},
		{"list", resp.Array{resp.BulkString("a"), resp.BulkString("b")}, "- a\n- b\n"},
		{"map", resp.NewMap(resp.MapEntry{Key: "k", Value: resp.BulkString("v")}), "k: v\n"},
		{"null", resp.Null{}, "null\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&YAMLFormatter{}).Format(&buf, tt.frame); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

// ============================================================================
// Table
// ============================================================================

func TestToTable(t *testing.T) {
	tests := []struct {
		name    string
		frame   resp.Frame
		headers []string
		rows    [][]string
	}{
		{
			"map",
			resp.NewMap(
				resp.MapEntry{Key: "b", Value: resp.BulkString("2")},
				resp.MapEntry{Key: "a", Value: resp.BulkString("1")},
			),
			[]string{"FIELD", "VALUE"},
			[][]string{{"a", "1"}, {"b", "2"}},
		},
		{
			"array",
			resp.Array{resp.BulkString("x"), resp.NullBulkString{}},
			[]string{"INDEX", "VALUE"},
			[][]string{{"1", "x"}, {"2", "(nil)"}},
		},
		{
			"set",
			resp.Set{resp.BulkString("m")},
			[]string{"INDEX", "MEMBER"},
			[][]string{{"1", "m"}},
		},
		{
			"scalar",
			resp.Integer(4),
			[]string{"VALUE"},
			[][]string{{"(integer) 4"}},
		},
		{
			"nested inline",
			resp.Array{resp.Array{resp.Integer(1), resp.Integer(2)}},
			[]string{"INDEX", "VALUE"},
			[][]string{{"1", "1) (integer) 1 2) (integer) 2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := ToTable(tt.frame)
			if strings.Join(tbl.Headers, ",") != strings.Join(tt.headers, ",") {
				t.Errorf("Headers = %v, want %v", tbl.Headers, tt.headers)
			}
			if len(tbl.Rows) != len(tt.rows) {
				t.Fatalf("len(Rows) = %d, want %d", len(tbl.Rows), len(tt.rows))
			}
			for i := range tt.rows {
				if strings.Join(tbl.Rows[i], "|") != strings.Join(tt.rows[i], "|") {
					t.Errorf("Rows[%d] = %v, want %v", i, tbl.Rows[i], tt.rows[i])
				}
			}
		})
	}
}

func TestTableFormatter(t *testing.T) {
	hash := resp.NewMap(resp.MapEntry{Key: "f1", Value: resp.BulkString("v1")})

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, hash); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "FIELD  VALUE\nf1     v1\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, hash); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "f1  v1\n" {
		t.Errorf("no-headers output = %q", buf.String())
	}
}
