// Package cascade provides ordered selector strategy lists with
// first-success-wins evaluation.
//
// A cascade is the explicit form of "try selector A, then B, then C":
// strategies are probed in declaration order and evaluation stops at the
// first one the probe accepts. The target site's markup is assumed
// unstable, so every element lookup in the pipeline goes through a cascade
// of alternatives from most specific to most generic.
package cascade

import "fmt"

// Strategy is one candidate way to locate page elements.
type Strategy struct {
	Selector string // CSS selector handed to the probe
	Label    string // human label used in logs
}

// Cascade is an immutable ordered list of strategies.
type Cascade struct {
	strategies []Strategy
}

// New builds a cascade from strategies in priority order.
func New(strategies ...Strategy) Cascade {
	return Cascade{strategies: strategies}
}

// FromSelectors builds a cascade where each selector labels itself.
func FromSelectors(selectors ...string) Cascade {
	strategies := make([]Strategy, len(selectors))
	for i, sel := range selectors {
		strategies[i] = Strategy{Selector: sel, Label: sel}
	}
	return Cascade{strategies: strategies}
}

// Len returns the number of strategies.
func (c Cascade) Len() int {
	return len(c.strategies)
}

// Strategies returns the strategies in evaluation order.
func (c Cascade) Strategies() []Strategy {
	out := make([]Strategy, len(c.strategies))
	copy(out, c.strategies)
	return out
}

// Probe decides whether a strategy succeeds. A returned error counts as a
// miss for that strategy, not a failure of the whole cascade.
type Probe func(s Strategy) (bool, error)

// Resolve evaluates strategies in order and returns the first one the
// probe accepts. The boolean reports whether any strategy succeeded.
func (c Cascade) Resolve(probe Probe) (Strategy, bool) {
	for _, s := range c.strategies {
		ok, err := probe(s)
		if err != nil {
			continue
		}
		if ok {
			return s, true
		}
	}
	return Strategy{}, false
}

// String describes the cascade for diagnostics.
func (c Cascade) String() string {
	return fmt.Sprintf("cascade(%d strategies)", len(c.strategies))
}
