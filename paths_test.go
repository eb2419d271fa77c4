package ijson

import (
	"errors"
	"strings"
	"testing"
)

func collectPathEvents(t *testing.T, input string) ([]PathEvent, error) {
	t.Helper()

	var events []PathEvent
	for pe, err := range WithPaths(Parse(strings.NewReader(input))) {
		if err != nil {
			return events, err
		}
		events = append(events, pe)
	}
	return events, nil
}

func TestWithPathsAttribution(t *testing.T) {
	events, err := collectPathEvents(t, `{"a": {"b": 1}, "c": [true]}`)
	if err != nil {
		t.Fatalf("WithPaths error = %v", err)
	}

	want := []struct {
		path string
		kind EventKind
	}{
		{"", StartMap},
		{"", MapKey},
		{"a", StartMap},
		{"a", MapKey},
		{"a.b", Number},
		{"a", EndMap},
		{"", MapKey},
		{"c", StartArray},
		{"c.item", Boolean},
		{"c", EndArray},
		{"", EndMap},
	}

	if len(events) != len(want) {
		t.Fatalf("len(events) = %d, want %d", len(events), len(want))
	}
	for i, w := range want {
		if events[i].Path != w.path || events[i].Event.Kind != w.kind {
			t.Errorf("event %d = (%q, %s), want (%q, %s)",
				i, events[i].Path, events[i].Event.Kind, w.path, w.kind)
		}
	}
}

func TestWithPathsCardinality(t *testing.T) {
	events, err := collectEvents(t, testDocument)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	pathed, err := collectPathEvents(t, testDocument)
	if err != nil {
		t.Fatalf("WithPaths error = %v", err)
	}

	if len(pathed) != len(events) {
		t.Fatalf("len(pathed) = %d, want %d", len(pathed), len(events))
	}
	for i := range events {
		if pathed[i].Event.Kind != events[i].Kind || !valuesEqual(pathed[i].Event.Value, events[i].Value) {
			t.Errorf("event %d altered by tagging: %v vs %v", i, pathed[i].Event, events[i])
		}
	}
}

func TestWithPathsDeepSelection(t *testing.T) {
	events, err := collectPathEvents(t, testDocument)
	if err != nil {
		t.Fatalf("WithPaths error = %v", err)
	}

	var got []any
	for _, pe := range events {
		if pe.Path == "docs.item.meta.item.item" {
			got = append(got, pe.Event.Value)
		}
	}

	if len(got) != 1 || !valuesEqual(got[0], int64(1)) {
		t.Errorf("values at docs.item.meta.item.item = %v, want [1]", got)
	}
}

func TestWithPathsPropagatesErrors(t *testing.T) {
	_, err := collectPathEvents(t, `{"a": `)
	if !errors.Is(err, ErrIncompleteJSON) {
		t.Errorf("error = %v, want ErrIncompleteJSON", err)
	}
}

func TestWithPathsScalarDocument(t *testing.T) {
	events, err := collectPathEvents(t, `"alone"`)
	if err != nil {
		t.Fatalf("WithPaths error = %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Path != "" || events[0].Event.Kind != String {
		t.Errorf("event = (%q, %s), want (\"\", string)", events[0].Path, events[0].Event.Kind)
	}
}
