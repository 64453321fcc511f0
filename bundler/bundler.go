package bundler

import (
	"fmt"

	"github.com/LegacyCodeHQ/unify/depgraph"
	"github.com/LegacyCodeHQ/unify/emit"
	"github.com/LegacyCodeHQ/unify/headers"
)

// Config carries the explicit pipeline inputs. There are no defaults and no
// global state; callers decide what to pass.
type Config struct {
	InputDirs  []string
	OutputPath string
}

// Result describes a successful bundle run.
type Result struct {
	// Order is the emission order, dependencies before dependents.
	Order []string
	// Hoisted holds the system includes emitted at the top of the bundle,
	// in first-seen order over Order.
	Hoisted []string
}

// Make runs the full pipeline: collect headers, parse their includes,
// resolve the emission order, hoist system includes, and write the single
// header. Stages run strictly in sequence; any failure aborts before the
// output file is touched.
func Make(cfg Config) (*Result, error) {
	if len(cfg.InputDirs) == 0 {
		return nil, fmt.Errorf("at least one input directory is required")
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}

	set, err := headers.Collect(cfg.InputDirs)
	if err != nil {
		return nil, err
	}

	edges, err := headers.ParseIncludes(set, nil)
	if err != nil {
		return nil, err
	}

	order, err := depgraph.Resolve(set, edges)
	if err != nil {
		return nil, err
	}

	hoisted := emit.HoistSystemIncludes(order, edges)

	if err := emit.Write(set, order, hoisted, cfg.OutputPath, nil); err != nil {
		return nil, err
	}

	return &Result{Order: order, Hoisted: hoisted}, nil
}
