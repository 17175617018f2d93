// Package metric implements block-similarity metric plug-ins: a registry
// keyed by metric name, selected by string at request time, with optional
// positional parameter parsing (`name:arg1:arg2`). The registry is closed
// by default; an unknown metric name is invalid-argument.
package metric

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/legumeinfo/gcv/internal/apperr"
)

// Func computes a similarity/distance score between two aligned family
// substrings.
type Func func(a, b []string) (float64, error)

type factory func(args []string) (Func, error)

var registry = map[string]factory{
	"levenshtein": newLevenshtein,
	"jaccard":     newJaccard,
}

// Parse resolves a metric spec of the form `name` or `name:arg1:arg2` into
// its canonical name and callable. Unknown names return invalid-argument.
func Parse(spec string) (name string, fn Func, err error) {
	parts := strings.Split(spec, ":")
	name = parts[0]

	build, ok := registry[name]
	if !ok {
		return "", nil, apperr.InvalidArgument("metric.Parse", fmt.Errorf("unknown metric %q", name))
	}

	fn, err = build(parts[1:])
	if err != nil {
		return "", nil, apperr.InvalidArgument("metric.Parse", fmt.Errorf("metric %q: %w", name, err))
	}
	return name, fn, nil
}

func newLevenshtein(args []string) (Func, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("takes no arguments, got %v", args)
	}
	return func(a, b []string) (float64, error) {
		return float64(Levenshtein(a, b)), nil
	}, nil
}

func newJaccard(args []string) (Func, error) {
	n := 1
	reversals := false
	multiset := false

	if len(args) > 0 && args[0] != "" {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("n argument: %w", err)
		}
		n = v
	}
	if len(args) > 1 && args[1] != "" {
		v, err := strconv.ParseBool(args[1])
		if err != nil {
			return nil, fmt.Errorf("reversals argument: %w", err)
		}
		reversals = v
	}
	if len(args) > 2 && args[2] != "" {
		v, err := strconv.ParseBool(args[2])
		if err != nil {
			return nil, fmt.Errorf("multiset argument: %w", err)
		}
		multiset = v
	}
	if len(args) > 3 {
		return nil, fmt.Errorf("takes at most 3 arguments, got %v", args)
	}

	return func(a, b []string) (float64, error) {
		return Jaccard(a, b, n, reversals, multiset), nil
	}, nil
}
