package function

import (
	"fmt"

	"github.com/alecthomas/units"
)

// parse_bytes turns a size string like "10MB" or "4GiB" into a byte
// count, for conditions on size-valued event fields.
func newParseBytes() *Descriptor {
	return &Descriptor{
		Name:       "parse_bytes",
		Parameters: []Parameter{{Name: "s", Type: TypeString}},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			s, err := stringArg("parse_bytes", args, 0)
			if err != nil {
				return nil, err
			}
			n, err := units.ParseStrictBytes(s)
			if err != nil {
				return nil, fmt.Errorf("parse_bytes: %q: %w", s, err)
			}
			return n, nil
		}),
	}
}
