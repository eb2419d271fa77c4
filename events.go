package ijson

// EventKind classifies parse events.
type EventKind string

const (
	StartMap   EventKind = "start_map"
	MapKey     EventKind = "map_key"
	EndMap     EventKind = "end_map"
	StartArray EventKind = "start_array"
	EndArray   EventKind = "end_array"
	String     EventKind = "string"
	Number     EventKind = "number"
	Boolean    EventKind = "boolean"
	Null       EventKind = "null"
)

// Event is a single unit of parse output. Container start and end events
// carry no value. MapKey carries the key string; String, Number and Boolean
// carry the decoded scalar; Null carries nil.
type Event struct {
	Kind  EventKind
	Value any
}

// PathEvent is an event annotated with the dotted path at which it fired.
// A MapKey event's path is its parent container's path: it names the field
// that follows, not itself.
type PathEvent struct {
	Path  string
	Event Event
}

// Wildcard is the path component standing in for an array element.
const Wildcard = "item"
