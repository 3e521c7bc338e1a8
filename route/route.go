// Package route compiles destination routing rules and evaluates events
// against them.
package route

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/driftlog/sift"
	"github.com/driftlog/sift/compiler"
	"github.com/driftlog/sift/expr"
)

// A Rule routes events matching Condition to Destination.
type Rule struct {
	Destination string `yaml:"destination"`
	Condition   string `yaml:"condition"`
}

type Config struct {
	Routes []Rule `yaml:"routes"`
}

func ParseConfig(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parsing routes config: %w", err)
	}
	return &c, nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(b)
}

type route struct {
	destination string
	cond        expr.Evaluator
}

// A Table holds the compiled form of a rule set.  Compilation fails as a
// whole if any rule's condition is invalid; every bad rule is reported,
// not just the first.
type Table struct {
	routes []route
}

func NewTable(rules []Rule, logger *zap.Logger) (*Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var merr error
	routes := make([]route, 0, len(rules))
	for _, r := range rules {
		if r.Destination == "" {
			merr = multierr.Append(merr, errors.New("route with empty destination"))
			continue
		}
		cond, err := compiler.ParseWithLogger(r.Condition, logger)
		if err != nil {
			merr = multierr.Append(merr, fmt.Errorf("route %q: %w", r.Destination, err))
			continue
		}
		routes = append(routes, route{destination: r.Destination, cond: cond})
	}
	if merr != nil {
		return nil, merr
	}
	return &Table{routes: routes}, nil
}

// Destinations returns the destinations whose condition holds for the
// event, in rule order.
func (t *Table) Destinations(ev *sift.Event) ([]string, error) {
	var dests []string
	for _, r := range t.routes {
		val, err := r.cond.Eval(ev)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", r.destination, err)
		}
		match, ok := val.(bool)
		if !ok {
			return nil, fmt.Errorf("route %q: condition %s is not boolean", r.destination, r.cond.Render())
		}
		if match {
			dests = append(dests, r.destination)
		}
	}
	return dests, nil
}
