package output

import (
	"encoding/json"
	"io"

	"github.com/yndnr/simple-redis/internal/resp"
)

// JSONFormatter formats replies as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, fr resp.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Value(fr))
}
