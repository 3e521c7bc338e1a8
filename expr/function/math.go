package function

import "math"

func newAbs() *Descriptor {
	return numberMap("abs", math.Abs)
}

func newCeil() *Descriptor {
	return numberMap("ceil", math.Ceil)
}

func newFloor() *Descriptor {
	return numberMap("floor", math.Floor)
}

func newSqrt() *Descriptor {
	return numberMap("sqrt", math.Sqrt)
}

func numberMap(name string, fn func(float64) float64) *Descriptor {
	return &Descriptor{
		Name:       name,
		Parameters: []Parameter{{Name: "x", Type: TypeNumber}},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			x, err := numberArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			return fn(x), nil
		}),
	}
}

func newPow() *Descriptor {
	return &Descriptor{
		Name: "pow",
		Parameters: []Parameter{
			{Name: "x", Type: TypeNumber},
			{Name: "y", Type: TypeNumber},
		},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			x, err := numberArg("pow", args, 0)
			if err != nil {
				return nil, err
			}
			y, err := numberArg("pow", args, 1)
			if err != nil {
				return nil, err
			}
			return math.Pow(x, y), nil
		}),
	}
}

func newRound() *Descriptor {
	return &Descriptor{
		Name: "round",
		Parameters: []Parameter{
			{Name: "x", Type: TypeNumber},
			{Name: "digits", Type: TypeNumber, HasDefault: true, Default: 0},
		},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			x, err := numberArg("round", args, 0)
			if err != nil {
				return nil, err
			}
			digits, err := numberArg("round", args, 1)
			if err != nil {
				return nil, err
			}
			shift := math.Pow(10, digits)
			return math.Round(x*shift) / shift, nil
		}),
	}
}

func newLen() *Descriptor {
	return &Descriptor{
		Name:       "len",
		Parameters: []Parameter{{Name: "v", Type: TypeAny}},
		Invoker: InvokerFunc(func(_ any, args []any) (any, error) {
			switch v := args[0].(type) {
			case string:
				return len(v), nil
			case []any:
				return len(v), nil
			case map[string]any:
				return len(v), nil
			}
			return nil, badArg("len", "argument must be a string, array, or object")
		}),
	}
}
