package function

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var (
	ErrBadArgument    = errors.New("bad argument")
	ErrNoSuchFunction = errors.New("no such function")
)

// Type identifies the value kind a parameter accepts.  TypeEvent is the
// context type: a function whose first parameter is TypeEvent receives the
// current event implicitly rather than as a syntactic argument.
type Type int

const (
	TypeAny Type = iota
	TypeEvent
	TypeString
	TypeNumber
	TypeBool
	TypeTime
)

type Parameter struct {
	Name       string
	Type       Type
	HasDefault bool
	Default    any
}

// A Descriptor is the static description of a bound function: its ordered
// parameter list and the invoker that executes it.  Descriptors are built
// once, by the registry, and shared by every call site that resolves to
// the same function.
type Descriptor struct {
	Name       string
	Parameters []Parameter
	Invoker    Invoker
}

// ContextInjected reports whether the first formal parameter is the
// context type.
func (d *Descriptor) ContextInjected() bool {
	return len(d.Parameters) > 0 && d.Parameters[0].Type == TypeEvent
}

// Required is the count of parameters that do not accept a default.
func (d *Descriptor) Required() int {
	var n int
	for _, p := range d.Parameters {
		if !p.HasDefault {
			n++
		}
	}
	return n
}

func (d *Descriptor) Total() int {
	return len(d.Parameters)
}

// An Invoker executes a bound function.  The target slot exists for
// functions bound to an instance; every builtin here is static and is
// invoked with a nil target.  Invokers must be safe for concurrent use.
type Invoker interface {
	Invoke(target any, args []any) (any, error)
}

type InvokerFunc func(target any, args []any) (any, error)

func (f InvokerFunc) Invoke(target any, args []any) (any, error) {
	return f(target, args)
}

// New looks up the builtin function with the given name.  narg is the call
// site's syntactic argument count, a hint for overload selection; no
// builtin is overloaded, so it is presently unused and arity is validated
// by the caller against the returned descriptor.
func New(name string, narg int) (*Descriptor, error) {
	switch name {
	case "contains":
		return newContains(), nil
	case "starts_with":
		return newStartsWith(), nil
	case "ends_with":
		return newEndsWith(), nil
	case "to_lower":
		return newToLower(), nil
	case "to_upper":
		return newToUpper(), nil
	case "replace":
		return newReplace(), nil
	case "trim":
		return newTrim(), nil
	case "levenshtein":
		return newLevenshtein(), nil
	case "abs":
		return newAbs(), nil
	case "ceil":
		return newCeil(), nil
	case "floor":
		return newFloor(), nil
	case "sqrt":
		return newSqrt(), nil
	case "pow":
		return newPow(), nil
	case "round":
		return newRound(), nil
	case "len":
		return newLen(), nil
	case "now":
		return newNow(), nil
	case "parse_time":
		return newParseTime(), nil
	case "has":
		return newHas(), nil
	case "field":
		return newField(), nil
	case "is_ksuid":
		return newIsKSUID(), nil
	case "ksuid_time":
		return newKSUIDTime(), nil
	case "parse_bytes":
		return newParseBytes(), nil
	}
	if s := closest(name); s != "" {
		return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrNoSuchFunction, name, s)
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSuchFunction, name)
}

var names = []string{
	"contains", "starts_with", "ends_with", "to_lower", "to_upper",
	"replace", "trim", "levenshtein",
	"abs", "ceil", "floor", "sqrt", "pow", "round", "len",
	"now", "parse_time",
	"has", "field",
	"is_ksuid", "ksuid_time",
	"parse_bytes",
}

// closest returns the known name with the smallest edit distance from
// name, or "" if nothing is close enough to be a plausible typo.
func closest(name string) string {
	const maxDistance = 3
	best, bestDist := "", maxDistance
	for _, n := range names {
		if d := levenshtein.ComputeDistance(name, n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

func badArg(fn, msg string) error {
	return fmt.Errorf("%s: %w: %s", fn, ErrBadArgument, msg)
}

func stringArg(fn string, args []any, i int) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", badArg(fn, fmt.Sprintf("argument %d must be a string", i+1))
	}
	return s, nil
}

func numberArg(fn string, args []any, i int) (float64, error) {
	switch v := args[i].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, badArg(fn, fmt.Sprintf("argument %d must be a number", i+1))
}
