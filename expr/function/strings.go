package function

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

func newContains() *Descriptor {
	return stringPredicate("contains", strings.Contains)
}

func newStartsWith() *Descriptor {
	return stringPredicate("starts_with", strings.HasPrefix)
}

func newEndsWith() *Descriptor {
	return stringPredicate("ends_with", strings.HasSuffix)
}

func stringPredicate(name string, pred func(s, sub string) bool) *Descriptor {
	return &Descriptor{
		Name: name,
		Parameters: []Parameter{
			{Name: "s", Type: TypeString},
			{Name: "substr", Type: TypeString},
		},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			s, err := stringArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			sub, err := stringArg(name, args, 1)
			if err != nil {
				return nil, err
			}
			return pred(s, sub), nil
		}),
	}
}

func newToLower() *Descriptor {
	return stringMap("to_lower", strings.ToLower)
}

func newToUpper() *Descriptor {
	return stringMap("to_upper", strings.ToUpper)
}

func stringMap(name string, fn func(string) string) *Descriptor {
	return &Descriptor{
		Name:       name,
		Parameters: []Parameter{{Name: "s", Type: TypeString}},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			s, err := stringArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			return fn(s), nil
		}),
	}
}

func newReplace() *Descriptor {
	return &Descriptor{
		Name: "replace",
		Parameters: []Parameter{
			{Name: "s", Type: TypeString},
			{Name: "old", Type: TypeString},
			{Name: "new", Type: TypeString},
		},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			s, err := stringArg("replace", args, 0)
			if err != nil {
				return nil, err
			}
			old, err := stringArg("replace", args, 1)
			if err != nil {
				return nil, err
			}
			new, err := stringArg("replace", args, 2)
			if err != nil {
				return nil, err
			}
			return strings.ReplaceAll(s, old, new), nil
		}),
	}
}

func newTrim() *Descriptor {
	return &Descriptor{
		Name: "trim",
		Parameters: []Parameter{
			{Name: "s", Type: TypeString},
			{Name: "cutset", Type: TypeString, HasDefault: true, Default: " \t\r\n"},
		},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			s, err := stringArg("trim", args, 0)
			if err != nil {
				return nil, err
			}
			cutset, err := stringArg("trim", args, 1)
			if err != nil {
				return nil, err
			}
			return strings.Trim(s, cutset), nil
		}),
	}
}

func newLevenshtein() *Descriptor {
	return &Descriptor{
		Name: "levenshtein",
		Parameters: []Parameter{
			{Name: "a", Type: TypeString},
			{Name: "b", Type: TypeString},
		},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			a, err := stringArg("levenshtein", args, 0)
			if err != nil {
				return nil, err
			}
			b, err := stringArg("levenshtein", args, 1)
			if err != nil {
				return nil, err
			}
			return levenshtein.ComputeDistance(a, b), nil
		}),
	}
}
