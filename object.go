package ijson

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"
)

// Object is a decoded JSON object. Unlike a plain Go map it preserves key
// insertion order, both when iterating and when re-serializing.
type Object struct {
	keys   []string
	values map[string]any
}

func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set binds key to value. Re-assigning an existing key keeps its original
// position.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// All iterates members in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON writes members in insertion order. Decimal numbers keep their
// exact unquoted form.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// appendJSON renders a decoded value back to JSON text. encoding/json alone
// would quote decimal.Decimal values and randomize Object member order.
func appendJSON(buf *bytes.Buffer, v any) error {
	switch value := v.(type) {
	case *Object:
		buf.WriteByte('{')
		for i, k := range value.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := appendJSON(buf, value.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, member := range value {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, member); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case decimal.Decimal:
		buf.WriteString(value.String())
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

// MarshalYAML writes members in insertion order, as a yaml.MapSlice.
func (o *Object) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(o.mapSlice())
}

func (o *Object) mapSlice() yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, len(o.keys))
	for _, k := range o.keys {
		ms = append(ms, yaml.MapItem{Key: k, Value: yamlValue(o.values[k])})
	}
	return ms
}

func yamlValue(v any) any {
	switch value := v.(type) {
	case *Object:
		return value.mapSlice()
	case []any:
		out := make([]any, len(value))
		for i, member := range value {
			out[i] = yamlValue(member)
		}
		return out
	case decimal.Decimal:
		return yamlNumber(value.String())
	default:
		return v
	}
}

// yamlNumber embeds an exact decimal literal as an unquoted YAML scalar.
// goccy would otherwise marshal decimal.Decimal through its text marshaler
// and quote it.
type yamlNumber string

func (n yamlNumber) MarshalYAML() ([]byte, error) {
	return []byte(n), nil
}
