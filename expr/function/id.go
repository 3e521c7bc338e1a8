package function

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

func newIsKSUID() *Descriptor {
	return &Descriptor{
		Name:       "is_ksuid",
		Parameters: []Parameter{{Name: "s", Type: TypeString}},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			s, err := stringArg("is_ksuid", args, 0)
			if err != nil {
				return nil, err
			}
			_, err = ksuid.Parse(s)
			return err == nil, nil
		}),
	}
}

// ksuid_time extracts the timestamp embedded in a KSUID, so conditions can
// route on the creation time of ksuid-keyed records.
func newKSUIDTime() *Descriptor {
	return &Descriptor{
		Name:       "ksuid_time",
		Parameters: []Parameter{{Name: "s", Type: TypeString}},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			s, err := stringArg("ksuid_time", args, 0)
			if err != nil {
				return nil, err
			}
			id, err := ksuid.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("ksuid_time: %q: %w", s, err)
			}
			return id.Time(), nil
		}),
	}
}
