package harness

import (
	"fmt"

	"github.com/montagehq/montage/internal/catalog"
	"github.com/montagehq/montage/internal/composition"
	"github.com/montagehq/montage/internal/testutil"
)

// Step is one named mutation in a scenario script.
type Step struct {
	Name  string
	Apply func(*composition.Store)
}

// Scenario is a scripted editing session. Name doubles as the golden
// file name.
type Scenario struct {
	Name  string
	Steps []Step
}

// Result holds the store and final snapshot of a scenario run.
type Result struct {
	Store    *composition.Store
	Snapshot Snapshot
}

// Run executes a scenario against a fresh store with sequential ids
// ("s-1", "s-2", ...) and the built-in catalog.
func Run(scenario *Scenario) (*Result, error) {
	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario has no name")
	}

	store := composition.New(catalog.Default(),
		composition.WithIDGenerator(testutil.NewSequentialIDGenerator("s")),
	)
	for _, step := range scenario.Steps {
		if step.Apply == nil {
			return nil, fmt.Errorf("scenario %q: step %q has no apply func", scenario.Name, step.Name)
		}
		step.Apply(store)
	}

	return &Result{Store: store, Snapshot: Capture(store)}, nil
}
