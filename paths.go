package ijson

import (
	"iter"
	"strings"

	"github.com/leukeleu/ijson/internal/stack"
)

// WithPaths annotates each event with the dotted path at which it fired.
// The path stack mirrors the container stack: StartArray pushes the
// Wildcard component, MapKey overwrites the trailing component with the key
// name, EndMap and EndArray pop. The annotated sequence has the same
// cardinality and order as the wrapped one and introduces no new errors.
func WithPaths(events iter.Seq2[Event, error]) iter.Seq2[PathEvent, error] {
	return func(yield func(PathEvent, error) bool) {
		path := stack.New[string]()

		for ev, err := range events {
			if err != nil {
				yield(PathEvent{}, err)
				return
			}

			var prefix string
			switch ev.Kind {
			case MapKey:
				components := path.ToSlice()
				prefix = strings.Join(components[:len(components)-1], ".")
				*path.PeekRef() = ev.Value.(string)
			case StartMap:
				prefix = joinPath(path)
				path.Push("")
			case StartArray:
				prefix = joinPath(path)
				path.Push(Wildcard)
			case EndMap, EndArray:
				path.Pop()
				prefix = joinPath(path)
			default:
				prefix = joinPath(path)
			}

			if !yield(PathEvent{Path: prefix, Event: ev}, nil) {
				return
			}
		}
	}
}

func joinPath(path *stack.Stack[string]) string {
	return strings.Join(path.ToSlice(), ".")
}
