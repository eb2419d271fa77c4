// Package extractor evaluates JSONPath expressions against fully decoded
// documents. It complements the streaming dotted-path extraction in the root
// package: richer queries (wildcards, slices, filters) run over a document
// that has already been built in memory.
package extractor

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/theory/jsonpath"

	"github.com/leukeleu/ijson"
)

var (
	// ErrExtraction indicates a failure during value extraction.
	ErrExtraction = errors.New("extraction error")

	// ErrInvalidInput indicates invalid input parameters.
	ErrInvalidInput = errors.New("invalid input")
)

// Select evaluates a JSONPath expression (e.g. "$.docs[*].meta") against a
// decoded document and returns every matching value in document order.
func Select(doc any, pathExpr string) ([]any, error) {
	if pathExpr == "" {
		return nil, fmt.Errorf("%w: JSONPath expression is empty", ErrInvalidInput)
	}

	path, err := jsonpath.Parse(pathExpr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrExtraction, pathExpr, err)
	}

	tr := &translator{objects: make(map[uintptr]*ijson.Object)}
	results := path.Select(tr.plain(doc))

	selected := make([]any, len(results))
	for i, r := range results {
		selected[i] = tr.restore(r)
	}
	return selected, nil
}

// translator rewrites *ijson.Object values as map[string]any so the
// JSONPath engine can traverse them, remembering which map came from which
// object so selected values can be mapped back with their key order intact.
type translator struct {
	objects map[uintptr]*ijson.Object
}

func (t *translator) plain(v any) any {
	switch value := v.(type) {
	case *ijson.Object:
		m := make(map[string]any, value.Len())
		for k, member := range value.All() {
			m[k] = t.plain(member)
		}
		t.objects[reflect.ValueOf(m).Pointer()] = value
		return m
	case []any:
		out := make([]any, len(value))
		for i, member := range value {
			out[i] = t.plain(member)
		}
		return out
	default:
		return v
	}
}

// restore swaps converted maps back for the ordered objects they came from.
func (t *translator) restore(v any) any {
	switch value := v.(type) {
	case map[string]any:
		if obj, ok := t.objects[reflect.ValueOf(value).Pointer()]; ok {
			return obj
		}
		return value
	case []any:
		out := make([]any, len(value))
		for i, member := range value {
			out[i] = t.restore(member)
		}
		return out
	default:
		return v
	}
}
