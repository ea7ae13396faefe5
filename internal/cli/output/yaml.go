package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/simple-redis/internal/resp"
)

// YAMLFormatter formats replies as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(w io.Writer, fr resp.Frame) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Value(fr)); err != nil {
		return err
	}
	return enc.Close()
}
