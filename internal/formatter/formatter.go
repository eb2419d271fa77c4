// Package formatter renders decoded JSON values for CLI output.
package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"
)

// ErrUnknownFormat indicates an unsupported output format name.
var ErrUnknownFormat = errors.New("format must be one of: json, yaml")

// Formatter encodes one value per call, streaming: values are written as
// they arrive, never collected.
type Formatter interface {
	Format(v any) error
}

// New returns the formatter for the given format name writing to w.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "json":
		return &jsonFormatter{w: w}, nil
	case "yaml":
		return &yamlFormatter{w: w}, nil
	default:
		return nil, fmt.Errorf("%w, got %q", ErrUnknownFormat, format)
	}
}

// jsonFormatter writes one compact JSON document per line.
type jsonFormatter struct {
	w io.Writer
}

func (f *jsonFormatter) Format(v any) error {
	payload, err := json.Marshal(jsonReady(v))
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	_, err = fmt.Fprintf(f.w, "%s\n", payload)
	return err
}

// jsonReady rewrites exact decimals as raw JSON numbers; encoding/json
// would otherwise render them quoted. *ijson.Object values marshal
// themselves correctly and pass through.
func jsonReady(v any) any {
	switch value := v.(type) {
	case decimal.Decimal:
		return json.RawMessage(value.String())
	case []any:
		out := make([]any, len(value))
		for i, member := range value {
			out[i] = jsonReady(member)
		}
		return out
	default:
		return v
	}
}

// yamlReady rewrites exact decimals so they render as unquoted YAML
// scalars; goccy would marshal them through their text marshaler as quoted
// strings. *ijson.Object values convert their own members and pass through.
func yamlReady(v any) any {
	switch value := v.(type) {
	case decimal.Decimal:
		return rawNumber(value.String())
	case []any:
		out := make([]any, len(value))
		for i, member := range value {
			out[i] = yamlReady(member)
		}
		return out
	default:
		return v
	}
}

// rawNumber is embedded verbatim as a YAML scalar.
type rawNumber string

func (n rawNumber) MarshalYAML() ([]byte, error) {
	return []byte(n), nil
}

// yamlFormatter writes a stream of YAML documents separated by "---".
type yamlFormatter struct {
	w io.Writer
}

func (f *yamlFormatter) Format(v any) error {
	payload, err := yaml.Marshal(yamlReady(v))
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}

	if _, err := io.WriteString(f.w, "---\n"); err != nil {
		return err
	}
	_, err = f.w.Write(payload)
	return err
}
