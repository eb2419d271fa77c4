package ijson

import (
	"io"
	"iter"
)

// Items yields one reconstructed value per maximal run of events located at
// prefix, in document order. Matching is exact, component by component; the
// only wildcard is the literal Wildcard marker for array elements. A prefix
// that never matches yields an empty sequence.
//
// When a container starts at the prefix, a private ObjectBuilder consumes
// every following event, path unchecked, until the container closes:
// containment is structural, not path-driven. A leaf scalar at the prefix
// is yielded directly.
func Items(pathed iter.Seq2[PathEvent, error], prefix string) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		var builder *ObjectBuilder

		for pe, err := range pathed {
			if err != nil {
				yield(nil, err)
				return
			}

			if builder != nil {
				builder.Apply(pe.Event)
				if builder.Complete() {
					if !yield(builder.Value(), nil) {
						return
					}
					builder = nil
				}
				continue
			}

			if pe.Path != prefix {
				continue
			}

			switch pe.Event.Kind {
			case StartMap, StartArray:
				builder = NewObjectBuilder()
				builder.Apply(pe.Event)
			case MapKey, EndMap, EndArray:
				// A key names the value that follows and an end closes a
				// sibling's container; neither is a value at the prefix.
			default:
				if !yield(pe.Event.Value, nil) {
					return
				}
			}
		}
	}
}

// ItemsAt parses r and yields the values located at prefix. It composes
// Parse, WithPaths and Items.
func ItemsAt(r io.Reader, prefix string, opts ...Option) iter.Seq2[any, error] {
	return Items(WithPaths(Parse(r, opts...)), prefix)
}
