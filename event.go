package sift

// An Event is the structured runtime event a condition is evaluated
// against, e.g. one decoded log record.  Nested objects are represented
// as nested map[string]any values, which is what encoding/json produces
// for NDJSON input.
type Event struct {
	fields map[string]any
}

func NewEvent(fields map[string]any) *Event {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Event{fields: fields}
}

// Lookup resolves a field path, descending through nested objects.  The
// second return is false when any step of the path is absent or when a
// non-leaf step is not an object.
func (e *Event) Lookup(path ...string) (any, bool) {
	var val any = e.fields
	for _, name := range path {
		obj, ok := val.(map[string]any)
		if !ok {
			return nil, false
		}
		if val, ok = obj[name]; !ok {
			return nil, false
		}
	}
	return val, true
}

func (e *Event) Has(path ...string) bool {
	_, ok := e.Lookup(path...)
	return ok
}
