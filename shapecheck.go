// Package shapecheck orchestrates the whole static shape-checking pipeline: abstracting every
// function in a module concurrently, inlining each function's calls against the resulting
// summaries, and simplifying the final constraints.
package shapecheck

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.tfp.dev/shapecheck/callinline"
	"go.tfp.dev/shapecheck/config"
	"go.tfp.dev/shapecheck/diagnostic"
	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/transform"
)

// CheckModule abstracts every function in functions, resolves calls between them, and returns
// each function's simplified final constraints keyed by function name. A function the
// interpreter had to skip (an unrecognized terminator, or a control-flow graph that is
// non-reducible or still cyclic) is warned about through sink and simply absent from the result, rather than failing the
// whole call. A call cycle anywhere in the module is not recoverable this way - it aborts the
// whole CheckModule call with an error, since callinline.Inline has no finite result to offer for
// it.
func CheckModule(functions map[string]*ir.Function, tenv ir.TypeEnvironment, sink diagnostic.Sink) (map[string][]callinline.Constraint, error) {
	summaries := abstractAll(functions, tenv, sink)

	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make(map[string][]callinline.Constraint, len(names))
	for _, name := range names {
		summary, ok := summaries[name]
		if !ok {
			continue
		}
		inlined, err := callinline.Inline(name, summary.Constraints, summaries)
		if err != nil {
			return nil, err
		}
		result[name] = transform.Pipeline(inlined)
	}
	return result, nil
}

// abstractAll abstracts every function concurrently, bounded by
// config.OrchestratorConcurrencyLimit. Per-function abstraction only reads its own Function and
// the shared, read-only TypeEnvironment, so no synchronization is needed beyond guarding the
// shared result map.
func abstractAll(functions map[string]*ir.Function, tenv ir.TypeEnvironment, sink diagnostic.Sink) map[string]*interp.Summary {
	var (
		mu        sync.Mutex
		summaries = make(map[string]*interp.Summary, len(functions))
	)

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(config.OrchestratorConcurrencyLimit)

	for name, fn := range functions {
		name, fn := name, fn
		g.Go(func() error {
			summary := interp.Abstract(fn, tenv, sink, interp.TrivialInducesReducibleCFG, interp.IdentityUnloop)
			if summary == nil {
				return nil
			}
			mu.Lock()
			summaries[name] = summary
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // abstraction never returns an error of its own; skips are reported via sink

	return summaries
}
