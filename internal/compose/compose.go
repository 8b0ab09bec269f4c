// Package compose resolves agent compositions: merging template baselines
// with explicit overrides, applying a scale factor, and validating the result.
package compose

import (
	"fmt"
	"math"

	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/errors"
)

// GlobalSoftCeiling is the advisory ceiling on the total agent count.
// Exceeding it warns but never blocks generation.
const GlobalSoftCeiling = 10000

// Composition maps agent kinds to instance counts.
type Composition map[agent.Kind]int

// Total returns the sum of all counts.
func (c Composition) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Clone returns an independent copy of the composition.
func (c Composition) Clone() Composition {
	out := make(Composition, len(c))
	for k, n := range c {
		out[k] = n
	}
	return out
}

// Warning is a non-fatal advisory about an unusual but valid composition.
// Kind is empty for warnings that apply to the whole composition.
type Warning struct {
	Kind agent.Kind
	Msg  string
}

// Merge layers explicit overrides on top of a base composition.
// An override replaces the base value for that kind entirely; kinds not
// mentioned keep the base value. Neither input is mutated.
func Merge(base, overrides Composition) Composition {
	merged := base.Clone()
	for kind, n := range overrides {
		merged[kind] = n
	}
	return merged
}

// Resolve merges base with overrides, applies the scale factor, and validates.
// Checks run in a fixed order, first failure wins:
//  1. scale <= 0                    E_INVALID_SCALE
//  2. unknown kind in the input     E_UNKNOWN_AGENT_KIND
//  3. any count < 0                 E_NEGATIVE_COUNT (names the kind)
//  4. merged total == 0             E_EMPTY_COMPOSITION
//  5. scaling drives total to 0     E_DEGENERATE_SCALE
//
// Soft-ceiling exceedance (per kind and global) produces advisory warnings
// only. The returned composition is new; inputs are never mutated.
func Resolve(base, overrides Composition, scale float64) (Composition, []Warning, error) {
	if scale <= 0 {
		return nil, nil, errors.New(errors.EInvalidScale,
			fmt.Sprintf("scale factor must be positive, got: %g", scale))
	}

	merged := Merge(base, overrides)

	for _, kind := range sortedKinds(merged) {
		if !agent.Known(kind) {
			return nil, nil, errors.NewWithDetails(errors.EUnknownAgentKind,
				fmt.Sprintf("unknown agent kind: %s", kind),
				map[string]string{"kind": string(kind)})
		}
		if merged[kind] < 0 {
			return nil, nil, errors.NewWithDetails(errors.ENegativeCount,
				fmt.Sprintf("%s count must be non-negative, got: %d", kind, merged[kind]),
				map[string]string{"kind": string(kind)})
		}
	}

	if merged.Total() == 0 {
		return nil, nil, errors.New(errors.EEmptyComposition,
			"composition has no agents; specify a template or at least one agent count")
	}

	scaled := scaleCounts(merged, scale)
	if scaled.Total() == 0 {
		return nil, nil, errors.New(errors.EDegenerateScale,
			fmt.Sprintf("scale factor %g rounds every agent count to zero", scale))
	}

	var warnings []Warning
	if scale > 10 {
		warnings = append(warnings, Warning{
			Msg: fmt.Sprintf("very large scale factor: %gx may impact simulation performance", scale),
		})
	} else if scale < 0.01 {
		warnings = append(warnings, Warning{
			Msg: fmt.Sprintf("very small scale factor: %gx leaves few agents", scale),
		})
	}
	for _, kind := range agent.Kinds() {
		n, ok := scaled[kind]
		if !ok {
			continue
		}
		spec, err := agent.SpecFor(kind)
		if err != nil {
			return nil, nil, err
		}
		if spec.SoftCeiling > 0 && n > spec.SoftCeiling {
			warnings = append(warnings, Warning{
				Kind: kind,
				Msg:  fmt.Sprintf("large %s count (%d) may impact simulation performance", kind, n),
			})
		}
	}
	if total := scaled.Total(); total > GlobalSoftCeiling {
		warnings = append(warnings, Warning{
			Msg: fmt.Sprintf("total agent count (%d) exceeds %d; expect long simulation runs", total, GlobalSoftCeiling),
		})
	}

	return scaled, warnings, nil
}

// scaleCounts multiplies every count by factor, rounding half up.
// Round-half-up is the documented rounding rule for scaling.
func scaleCounts(c Composition, factor float64) Composition {
	out := make(Composition, len(c))
	for kind, n := range c {
		out[kind] = int(math.Floor(float64(n)*factor + 0.5))
	}
	return out
}

// sortedKinds returns the composition's kinds in registry order, with any
// unknown kinds appended so they are still reported deterministically.
func sortedKinds(c Composition) []agent.Kind {
	out := make([]agent.Kind, 0, len(c))
	seen := make(map[agent.Kind]bool, len(c))
	for _, kind := range agent.Kinds() {
		if _, ok := c[kind]; ok {
			out = append(out, kind)
			seen[kind] = true
		}
	}
	var rest []agent.Kind
	for kind := range c {
		if !seen[kind] {
			rest = append(rest, kind)
		}
	}
	// stable order for unknown kinds
	for i := 0; i < len(rest); i++ {
		for j := i + 1; j < len(rest); j++ {
			if rest[j] < rest[i] {
				rest[i], rest[j] = rest[j], rest[i]
			}
		}
	}
	return append(out, rest...)
}
