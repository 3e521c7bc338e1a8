package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/driftlog/sift"
	"github.com/driftlog/sift/expr/function"
)

// ErrParse is the category of errors that make a condition expression
// invalid at compile time, as opposed to errors raised while evaluating a
// valid condition.  Parsers match it with errors.Is.
var ErrParse = errors.New("invalid condition expression")

// An ArityError reports a call site whose syntactic argument count cannot
// satisfy the bound function's parameter list.  It is raised during
// construction, never during evaluation, and belongs to the ErrParse
// category.
type ArityError struct {
	Name     string
	Required int
	Total    int
	Actual   int
}

func (e *ArityError) Error() string {
	if e.Required < e.Total {
		return fmt.Sprintf("%s(): requires between %d and %d parameters, but passed %d",
			e.Name, e.Required, e.Total, e.Actual)
	}
	return fmt.Sprintf("%s(): requires %d parameters, but passed %d",
		e.Name, e.Required, e.Actual)
}

func (e *ArityError) Unwrap() error {
	return ErrParse
}

// A Call invokes a bound function with arguments supplied by child
// expressions.  When the function's first parameter is the context type,
// the current event is injected as the first argument; parameters beyond
// the call site's arguments are filled from the declared defaults.  All
// validation happens in NewCall; a constructed Call is immutable and every
// evaluation builds a fresh argument buffer, so one Call may be evaluated
// concurrently against different events.
type Call struct {
	name             string
	contextInjected  bool
	exprs            []Evaluator
	invoker          function.Invoker
	trailingDefaults []any
}

// NewCall validates the call site's argument count against the
// descriptor and returns the bound call node.  name is used only for
// rendering and diagnostics.  The exprs slice is copied; the caller keeps
// no way to mutate the node afterward.
func NewCall(name string, d *function.Descriptor, exprs []Evaluator) (*Call, error) {
	contextInjected := d.ContextInjected()
	actual := len(exprs)
	if contextInjected {
		actual++
	}
	required, total := d.Required(), d.Total()
	if actual < required || actual > total {
		return nil, &ArityError{
			Name:     name,
			Required: required,
			Total:    total,
			Actual:   actual,
		}
	}
	var defaults []any
	if actual < total {
		defaults = make([]any, 0, total-actual)
		for _, p := range d.Parameters[actual:] {
			defaults = append(defaults, p.Default)
		}
	}
	owned := make([]Evaluator, len(exprs))
	copy(owned, exprs)
	return &Call{
		name:             name,
		contextInjected:  contextInjected,
		exprs:            owned,
		invoker:          d.Invoker,
		trailingDefaults: defaults,
	}, nil
}

func (c *Call) Eval(ev *sift.Event) (any, error) {
	offset := 0
	if c.contextInjected {
		offset = 1
	}
	args := make([]any, len(c.exprs)+offset+len(c.trailingDefaults))
	for i, e := range c.exprs {
		val, err := e.Eval(ev)
		if err != nil {
			return nil, err
		}
		args[i+offset] = val
	}
	if c.contextInjected {
		args[0] = ev
	}
	copy(args[len(c.exprs)+offset:], c.trailingDefaults)
	return c.invoker.Invoke(nil, args)
}

func (c *Call) Render() string {
	var b strings.Builder
	b.WriteString(c.name)
	b.WriteByte('(')
	for i, e := range c.exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Render())
	}
	b.WriteByte(')')
	return b.String()
}
