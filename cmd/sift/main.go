// Command sift routes NDJSON events read from stdin.
//
// With -rules, each event is evaluated against the routing table and
// written back out prefixed by the comma-separated destinations it
// matched.  With -c, a single condition is evaluated instead and each
// line is prefixed by the result.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/driftlog/sift"
	"github.com/driftlog/sift/compiler"
	"github.com/driftlog/sift/route"
)

const maxLineSize = 1024 * 1024

func main() {
	rulesPath := flag.String("rules", "", "path of routes yaml config file")
	condSrc := flag.String("c", "", "evaluate a single condition instead of routing")
	flag.Parse()
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sift: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	if err := run(*rulesPath, *condSrc, logger); err != nil {
		fmt.Fprintf(os.Stderr, "sift: %v\n", err)
		os.Exit(1)
	}
}

func run(rulesPath, condSrc string, logger *zap.Logger) error {
	var eval func(ev *sift.Event) (string, error)
	switch {
	case condSrc != "":
		cond, err := compiler.ParseWithLogger(condSrc, logger)
		if err != nil {
			return err
		}
		eval = func(ev *sift.Event) (string, error) {
			val, err := cond.Eval(ev)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%v", val), nil
		}
	case rulesPath != "":
		config, err := route.LoadConfig(rulesPath)
		if err != nil {
			return err
		}
		table, err := route.NewTable(config.Routes, logger)
		if err != nil {
			return err
		}
		eval = func(ev *sift.Event) (string, error) {
			dests, err := table.Destinations(ev)
			if err != nil {
				return "", err
			}
			if len(dests) == 0 {
				return "-", nil
			}
			return strings.Join(dests, ","), nil
		}
	default:
		return errors.New("either -rules or -c is required")
	}
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		var fields map[string]any
		if err := json.Unmarshal(line, &fields); err != nil {
			logger.Warn("skipping malformed event", zap.Error(err))
			continue
		}
		out, err := eval(sift.NewEvent(fields))
		if err != nil {
			logger.Warn("skipping event", zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", out, line)
	}
	return scanner.Err()
}
