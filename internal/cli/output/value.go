package output

import (
	"math"
	"strconv"

	"github.com/yndnr/simple-redis/internal/resp"
)

// ErrorValue is how error replies appear in structured output.
type ErrorValue struct {
	Error string `json:"error" yaml:"error"`
}

// Value converts a frame into plain Go values: nil, string, int64, bool,
// float64, []any, map[string]any or ErrorValue. Doubles that JSON cannot
// carry (NaN, infinities) become strings.
func Value(f resp.Frame) any {
	switch v := f.(type) {
	case nil, resp.Null, resp.NullBulkString, resp.NullArray:
		return nil
	case resp.SimpleString:
		return string(v)
	case resp.SimpleError:
		return ErrorValue{Error: string(v)}
	case resp.BulkError:
		return ErrorValue{Error: string(v)}
	case resp.Integer:
		return int64(v)
	case resp.BulkString:
		return string(v)
	case resp.Boolean:
		return bool(v)
	case resp.Double:
		x := float64(v)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return strconv.FormatFloat(x, 'g', -1, 64)
		}
		return x
	case resp.BigNumber:
		return string(v)
	case resp.Array:
		return values(v)
	case resp.Set:
		return values(v)
	case *resp.Map:
		out := make(map[string]any, v.Len())
		v.Ascend(func(key string, value resp.Frame) bool {
			out[key] = Value(value)
			return true
		})
		return out
	default:
		return nil
	}
}

func values(fs []resp.Frame) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		out[i] = Value(f)
	}
	return out
}
