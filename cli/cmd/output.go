package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ligature/wander"
)

// Output formats for evaluated values.
const (
	outputWander = "wander"
	outputJSON   = "json"
	outputYAML   = "yaml"
)

// writeValue writes v to w in the named format followed by a newline.
func writeValue(ctx context.Context, w io.Writer, v wander.Value, format string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case outputJSON:
		data, err = json.Marshal(wander.ToNative(v))
	case outputYAML:
		data, err = yaml.MarshalContext(ctx, wander.ToNative(v))
		if err == nil && len(data) > 0 && data[len(data)-1] == '\n' {
			data = data[:len(data)-1]
		}
	default:
		data = []byte(v.String())
	}

	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", format))
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
