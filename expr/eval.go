package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/driftlog/sift"
)

var ErrIncompatibleTypes = errors.New("incompatible types")

// An Evaluator is one node of a compiled condition expression.  Eval runs
// the node against the current event; Render reproduces the node as
// condition-language text.  Evaluators are immutable once built and safe
// for concurrent evaluation.
type Evaluator interface {
	Eval(ev *sift.Event) (any, error)
	Render() string
}

type Literal struct {
	val any
}

func NewLiteral(val any) *Literal {
	return &Literal{val}
}

func (l *Literal) Eval(*sift.Event) (any, error) {
	return l.val, nil
}

func (l *Literal) Render() string {
	switch v := l.val.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return fmt.Sprintf("%v", l.val)
}

// A Field reads a dotted path out of the event.  A missing path evaluates
// to nil rather than an error; has() exists to test presence explicitly.
type Field struct {
	path []string
}

func NewField(path string) *Field {
	return &Field{path: strings.Split(path, ".")}
}

func (f *Field) Eval(ev *sift.Event) (any, error) {
	v, _ := ev.Lookup(f.path...)
	return v, nil
}

func (f *Field) Render() string {
	return strings.Join(f.path, ".")
}

type Not struct {
	expr Evaluator
}

func NewLogicalNot(e Evaluator) *Not {
	return &Not{e}
}

func (n *Not) Eval(ev *sift.Event) (any, error) {
	b, err := evalBool(n.expr, ev)
	if err != nil {
		return nil, err
	}
	return !b, nil
}

func (n *Not) Render() string {
	return "not " + n.expr.Render()
}

type And struct {
	lhs, rhs Evaluator
}

func NewLogicalAnd(lhs, rhs Evaluator) *And {
	return &And{lhs, rhs}
}

func (a *And) Eval(ev *sift.Event) (any, error) {
	lhs, err := evalBool(a.lhs, ev)
	if err != nil {
		return nil, err
	}
	if !lhs {
		return false, nil
	}
	return evalBoolValue(a.rhs, ev)
}

func (a *And) Render() string {
	return "(" + a.lhs.Render() + " and " + a.rhs.Render() + ")"
}

type Or struct {
	lhs, rhs Evaluator
}

func NewLogicalOr(lhs, rhs Evaluator) *Or {
	return &Or{lhs, rhs}
}

func (o *Or) Eval(ev *sift.Event) (any, error) {
	lhs, err := evalBool(o.lhs, ev)
	if err != nil {
		return nil, err
	}
	if lhs {
		return true, nil
	}
	return evalBoolValue(o.rhs, ev)
}

func (o *Or) Render() string {
	return "(" + o.lhs.Render() + " or " + o.rhs.Render() + ")"
}

func evalBool(e Evaluator, ev *sift.Event) (bool, error) {
	v, err := e.Eval(ev)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: %w: not a boolean", e.Render(), ErrIncompatibleTypes)
	}
	return b, nil
}

func evalBoolValue(e Evaluator, ev *sift.Event) (any, error) {
	b, err := evalBool(e, ev)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// A Compare evaluates one of the relational operators == != < <= > >=.
// Equality works across any pair of values; ordering requires two
// numbers, two strings, or two times.
type Compare struct {
	op       string
	lhs, rhs Evaluator
}

func NewCompare(op string, lhs, rhs Evaluator) *Compare {
	return &Compare{op, lhs, rhs}
}

func (c *Compare) Eval(ev *sift.Event) (any, error) {
	lhs, err := c.lhs.Eval(ev)
	if err != nil {
		return nil, err
	}
	rhs, err := c.rhs.Eval(ev)
	if err != nil {
		return nil, err
	}
	switch c.op {
	case "==":
		return equal(lhs, rhs), nil
	case "!=":
		return !equal(lhs, rhs), nil
	}
	cmp, err := order(lhs, rhs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Render(), err)
	}
	switch c.op {
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	return nil, fmt.Errorf("unknown comparison operator %q", c.op)
}

func (c *Compare) Render() string {
	return c.lhs.Render() + " " + c.op + " " + c.rhs.Render()
}

func equal(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	switch a.(type) {
	case nil, string, bool:
		return a == b
	}
	return false
}

func order(a, b any) (int, error) {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			}
			return 0, nil
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), nil
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			switch {
			case at.Before(bt):
				return -1, nil
			case at.After(bt):
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, ErrIncompatibleTypes
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
