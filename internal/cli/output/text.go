package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yndnr/simple-redis/internal/resp"
)

// TextFormatter renders replies the way redis-cli does in a terminal.
type TextFormatter struct{}

func (f *TextFormatter) Format(w io.Writer, fr resp.Frame) error {
	for _, line := range textLines(fr) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Text returns the text rendering of fr without a trailing newline.
func Text(fr resp.Frame) string {
	return strings.Join(textLines(fr), "\n")
}

func textLines(fr resp.Frame) []string {
	switch v := fr.(type) {
	case nil, resp.Null, resp.NullBulkString, resp.NullArray:
		return []string{"(nil)"}
	case resp.SimpleString:
		return []string{string(v)}
	case resp.SimpleError:
		return []string{"(error) " + string(v)}
	case resp.BulkError:
		return []string{"(error) " + string(v)}
	case resp.Integer:
		return []string{"(integer) " + strconv.FormatInt(int64(v), 10)}
	case resp.BulkString:
		return []string{strconv.Quote(string(v))}
	case resp.Boolean:
		return []string{fmt.Sprintf("(%t)", bool(v))}
	case resp.Double:
		return []string{"(double) " + strconv.FormatFloat(float64(v), 'g', -1, 64)}
	case resp.BigNumber:
		return []string{"(big number) " + string(v)}
	case resp.Array:
		return listLines(v, "(empty array)")
	case resp.Set:
		return listLines(v, "(empty set)")
	case *resp.Map:
		return mapLines(v)
	default:
		return []string{fmt.Sprintf("(unknown) %v", fr)}
	}
}

func listLines(items []resp.Frame, empty string) []string {
	if len(items) == 0 {
		return []string{empty}
	}
	width := len(strconv.Itoa(len(items)))
	var out []string
	for i, item := range items {
		prefix := fmt.Sprintf("%*d) ", width, i+1)
		out = append(out, indent(prefix, textLines(item))...)
	}
	return out
}

func mapLines(m *resp.Map) []string {
	if m.Len() == 0 {
		return []string{"(empty hash)"}
	}
	width := len(strconv.Itoa(m.Len()))
	var out []string
	i := 0
	m.Ascend(func(key string, value resp.Frame) bool {
		i++
		prefix := fmt.Sprintf("%*d# %s => ", width, i, strconv.Quote(key))
		out = append(out, indent(prefix, textLines(value))...)
		return true
	})
	return out
}

// indent puts prefix before the first line and aligns the rest under it.
func indent(prefix string, lines []string) []string {
	pad := strings.Repeat(" ", len(prefix))
	out := make([]string, len(lines))
	for i, l := range lines {
		if i == 0 {
			out[i] = prefix + l
		} else {
			out[i] = pad + l
		}
	}
	return out
}
