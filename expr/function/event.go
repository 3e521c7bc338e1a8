package function

import (
	"strings"

	"github.com/driftlog/sift"
)

// has and field take the current event as an implicit first argument: the
// first formal parameter is TypeEvent, so the call node injects the
// context and the condition is written has("fields.app") rather than
// has(event, "fields.app").

func newHas() *Descriptor {
	return &Descriptor{
		Name: "has",
		Parameters: []Parameter{
			{Name: "event", Type: TypeEvent},
			{Name: "path", Type: TypeString},
		},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			ev, err := eventArg("has", args, 0)
			if err != nil {
				return nil, err
			}
			path, err := stringArg("has", args, 1)
			if err != nil {
				return nil, err
			}
			return ev.Has(strings.Split(path, ".")...), nil
		}),
	}
}

func newField() *Descriptor {
	return &Descriptor{
		Name: "field",
		Parameters: []Parameter{
			{Name: "event", Type: TypeEvent},
			{Name: "path", Type: TypeString},
			{Name: "default", Type: TypeAny, HasDefault: true, Default: nil},
		},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			ev, err := eventArg("field", args, 0)
			if err != nil {
				return nil, err
			}
			path, err := stringArg("field", args, 1)
			if err != nil {
				return nil, err
			}
			if v, ok := ev.Lookup(strings.Split(path, ".")...); ok {
				return v, nil
			}
			return args[2], nil
		}),
	}
}

func eventArg(fn string, args []any, i int) (*sift.Event, error) {
	ev, ok := args[i].(*sift.Event)
	if !ok {
		return nil, badArg(fn, "context argument is not an event")
	}
	return ev, nil
}
