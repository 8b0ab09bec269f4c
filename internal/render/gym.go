package render

import (
	"fmt"
	"strings"

	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/compose"
)

// writeGym emits the ABIDES-Gym export: the trading-agent composition (the
// exchange agent is excluded) plus timing/oracle references under a fixed
// shape consumed by RL harnesses without parsing the rest of the file.
func writeGym(b *strings.Builder, c compose.Composition) {
	b.WriteString(`
# ABIDES-Gym Integration
# This configuration is optimized for reinforcement learning environments

# Trading-agent composition (exchange agent excluded)
background_composition = {
`)
	for _, kind := range agent.Kinds() {
		if n := c[kind]; n > 0 {
			fmt.Fprintf(b, "    '%s': %d,\n", pyKey(kind), n)
		}
	}
	b.WriteString(`}

def create_background_config():
    """Create background configuration for ABIDES-Gym."""
    return {
        'start_time': kernel_start_time,
        'stop_time': kernel_stop_time,
        'agents': agents[1:],  # Exclude exchange agent (handled by Gym)
        'composition': background_composition,
        'agent_latency_model': latency_model,
        'default_computation_delay': default_computation_delay,
        'oracle': oracle,
        'stdout_log_level': 'INFO'
    }

# Export for ABIDES-Gym
background_config = create_background_config()

`)
}

// pyKey converts an agent kind into the snake_case key used in the gym export.
func pyKey(kind agent.Kind) string {
	return strings.ReplaceAll(string(kind), "-", "_")
}
