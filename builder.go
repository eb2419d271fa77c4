package ijson

import (
	"github.com/leukeleu/ijson/internal/stack"
)

// frame is a container under construction. obj is non-nil for mappings;
// key holds a mapping's pending key until its value arrives.
type frame struct {
	obj *Object
	arr []any
	key string
}

// ObjectBuilder reconstructs a native value from a sequence of events
// describing exactly one complete JSON value. Feed events through Apply;
// once Complete reports true, Value returns the result.
//
// Feeding a sequence that does not describe one complete value is a caller
// contract violation and panics rather than returning an error.
type ObjectBuilder struct {
	frames   *stack.Stack[frame]
	value    any
	complete bool
}

func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{frames: stack.New[frame]()}
}

// Apply incorporates the next event into the value under construction.
func (b *ObjectBuilder) Apply(e Event) {
	switch e.Kind {
	case StartMap:
		b.frames.Push(frame{obj: NewObject()})
	case StartArray:
		b.frames.Push(frame{arr: []any{}})
	case MapKey:
		b.frames.PeekRef().key = e.Value.(string)
	case EndMap, EndArray:
		f, _ := b.frames.Pop()
		if f.obj != nil {
			b.insert(f.obj)
		} else {
			b.insert(f.arr)
		}
	default:
		b.insert(e.Value)
	}
}

// insert places a finished value into the enclosing container, or records
// it as the final result when no container is open.
func (b *ObjectBuilder) insert(v any) {
	top := b.frames.PeekRef()
	if top == nil {
		b.value = v
		b.complete = true
		return
	}
	if top.obj != nil {
		top.obj.Set(top.key, v)
		return
	}
	top.arr = append(top.arr, v)
}

// Complete reports whether a full top-level value has been built.
func (b *ObjectBuilder) Complete() bool {
	return b.complete
}

// Value returns the reconstructed value. It is only meaningful once
// Complete reports true.
func (b *ObjectBuilder) Value() any {
	return b.value
}
