// Package agent defines the supported agent kinds and their static metadata.
//
// The registry is read-only after process start; it is parsed once from the
// embedded configs/agents.yaml.
package agent

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/marketsim/abidesgen/configs"
	"github.com/marketsim/abidesgen/internal/errors"
)

// Kind identifies a supported agent kind.
type Kind string

// Supported agent kinds.
const (
	MarketMaker         Kind = "market-maker"
	AdaptiveMarketMaker Kind = "adaptive-market-maker"
	Momentum            Kind = "momentum"
	ZeroIntelligence    Kind = "zero-intelligence"
	Noise               Kind = "noise"
	Value               Kind = "value"
)

// Params holds per-kind instantiation parameters emitted into agent blocks.
// Zero values mean the parameter does not apply to the kind.
type Params struct {
	MinSize        int     `yaml:"min_size"`
	MaxSize        int     `yaml:"max_size"`
	MinOrderSize   int     `yaml:"min_order_size"`
	WindowSize     int     `yaml:"window_size"`
	NumTicks       int     `yaml:"num_ticks"`
	POV            float64 `yaml:"pov"`
	WakeFreq       string  `yaml:"wake_freq"`
	PoissonArrival bool    `yaml:"poisson_arrival"`
	Subscribe      bool    `yaml:"subscribe"`
}

// Spec is the static metadata for one agent kind.
type Spec struct {
	Kind        Kind   `yaml:"kind"`
	Display     string `yaml:"display"`
	Class       string `yaml:"class"`
	NamePrefix  string `yaml:"name_prefix"`
	Description string `yaml:"description"`
	SoftCeiling int    `yaml:"soft_ceiling"`
	Default     int    `yaml:"default"`
	Params      Params `yaml:"params"`
}

type registryFile struct {
	Kinds []Spec `yaml:"kinds"`
}

var (
	ordered []Kind
	specs   map[Kind]Spec
)

func init() {
	data, err := configs.Data.ReadFile("agents.yaml")
	if err != nil {
		panic(fmt.Sprintf("agent registry: read embedded agents.yaml: %v", err))
	}
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		panic(fmt.Sprintf("agent registry: parse agents.yaml: %v", err))
	}
	if len(file.Kinds) == 0 {
		panic("agent registry: agents.yaml defines no kinds")
	}

	specs = make(map[Kind]Spec, len(file.Kinds))
	ordered = make([]Kind, 0, len(file.Kinds))
	for _, spec := range file.Kinds {
		if spec.Kind == "" {
			panic("agent registry: entry with empty kind")
		}
		if _, dup := specs[spec.Kind]; dup {
			panic(fmt.Sprintf("agent registry: duplicate kind %q", spec.Kind))
		}
		specs[spec.Kind] = spec
		ordered = append(ordered, spec.Kind)
	}
}

// SpecFor returns the spec for kind.
// Returns E_UNKNOWN_AGENT_KIND for an unrecognized kind.
func SpecFor(kind Kind) (Spec, error) {
	spec, ok := specs[kind]
	if !ok {
		return Spec{}, errors.NewWithDetails(errors.EUnknownAgentKind,
			fmt.Sprintf("unknown agent kind: %s", kind),
			map[string]string{"kind": string(kind)})
	}
	return spec, nil
}

// Kinds returns all supported kinds in exchange instantiation order.
// The returned slice is a copy; callers may not mutate the registry.
func Kinds() []Kind {
	out := make([]Kind, len(ordered))
	copy(out, ordered)
	return out
}

// Known reports whether kind is a supported agent kind.
func Known(kind Kind) bool {
	_, ok := specs[kind]
	return ok
}
