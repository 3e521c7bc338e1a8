package function

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

func newNow() *Descriptor {
	return &Descriptor{
		Name: "now",
		Invoker: InvokerFunc(func(_ any, _ []any) (any, error) {
			return time.Now(), nil
		}),
	}
}

func newParseTime() *Descriptor {
	return &Descriptor{
		Name:       "parse_time",
		Parameters: []Parameter{{Name: "s", Type: TypeString}},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			s, err := stringArg("parse_time", args, 0)
			if err != nil {
				return nil, err
			}
			t, err := dateparse.ParseAny(s)
			if err != nil {
				return nil, fmt.Errorf("parse_time: %q: %w", s, err)
			}
			return t, nil
		}),
	}
}
